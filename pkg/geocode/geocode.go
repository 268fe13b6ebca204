/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package geocode resolves coordinates to place names through a reverse
// geocoding HTTP API
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dnote/tripnote/pkg/clock"
	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the reverse geocoding API used when none is configured
	DefaultEndpoint = "https://nominatim.openstreetmap.org/reverse"
	// DefaultTimeout is the timeout of a single lookup request
	DefaultTimeout = 10 * time.Second
	// DefaultMinInterval is the minimum spacing between two lookup requests
	DefaultMinInterval = time.Second

	// maxFailures is the number of consecutive failures that disables lookups
	maxFailures = 5
	// disabledFor is how long lookups stay disabled once maxFailures is reached
	disabledFor = 5 * time.Minute
)

// ErrDisabled is an error for a lookup attempted while lookups are disabled
// after repeated failures
var ErrDisabled = errors.New("reverse geocoding is temporarily disabled")

// Place is the result of a reverse lookup
type Place struct {
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Label returns a short human readable name for the place
func (p Place) Label() string {
	switch {
	case p.City != "" && p.Country != "":
		return fmt.Sprintf("%s, %s", p.City, p.Country)
	case p.Name != "":
		return p.Name
	case p.DisplayName != "":
		return p.DisplayName
	default:
		return fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude)
	}
}

// Params are the parameters of a client
type Params struct {
	Endpoint    string
	UserAgent   string
	Timeout     time.Duration
	MinInterval time.Duration
	Clock       clock.Clock
	HTTPClient  *http.Client
}

// Client is a reverse geocoding client. It caches results, spaces out its
// requests and stops issuing requests for a while after repeated failures.
type Client struct {
	endpoint   string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	clock      clock.Clock

	mu            sync.Mutex
	cache         map[string]Place
	failures      int
	disabledUntil time.Time
}

// New returns a new client
func New(p Params) *Client {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = "tripnote"
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	interval := p.MinInterval
	if interval == 0 {
		interval = DefaultMinInterval
	}
	c := p.Clock
	if c == nil {
		c = clock.New()
	}
	hc := p.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		endpoint:   endpoint,
		userAgent:  userAgent,
		timeout:    timeout,
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		clock:      c,
		cache:      map[string]Place{},
	}
}

// cacheKey rounds the coordinates to 4 decimal places, about 11 meters
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// response is the payload of the reverse geocoding API
type response struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
	Error string `json:"error"`
}

func (r response) toPlace(lat, lng float64) Place {
	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	if city == "" {
		city = r.Address.Village
	}

	return Place{
		Name:        r.Name,
		City:        city,
		Country:     r.Address.Country,
		CountryCode: r.Address.CountryCode,
		DisplayName: r.DisplayName,
		Latitude:    lat,
		Longitude:   lng,
	}
}

// Reverse returns the place at the given coordinates
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (Place, error) {
	key := cacheKey(lat, lng)

	c.mu.Lock()
	if p, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	if c.clock.Now().Before(c.disabledUntil) {
		c.mu.Unlock()
		return Place{}, ErrDisabled
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return Place{}, errors.Wrap(err, "waiting for the rate limiter")
	}

	p, err := c.fetch(ctx, lat, lng)
	if err != nil {
		c.recordFailure(err)
		return Place{}, err
	}

	c.mu.Lock()
	c.failures = 0
	c.cache[key] = p
	c.mu.Unlock()

	return p, nil
}

func (c *Client) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures++
	if c.failures < maxFailures {
		return
	}

	c.failures = 0
	c.disabledUntil = c.clock.Now().Add(disabledFor)

	log.WithFields(log.Fields{
		"until": c.disabledUntil.Format(time.RFC3339),
		"error": err.Error(),
	}).Warn("disabling reverse geocoding after repeated failures")
}

func (c *Client) fetch(ctx context.Context, lat, lng float64) (Place, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return Place{}, errors.Wrap(err, "constructing request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Place{}, errors.Wrap(err, "making request")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Place{}, errors.Errorf("unexpected status %d", res.StatusCode)
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return Place{}, errors.Wrap(err, "decoding response")
	}
	if body.Error != "" {
		return Place{}, errors.Errorf("lookup failed: %s", body.Error)
	}

	return body.toPlace(lat, lng), nil
}

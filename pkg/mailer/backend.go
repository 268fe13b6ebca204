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

package mailer

import (
	"github.com/dnote/tripnote/pkg/log"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// ErrSMTPNotConfigured is an error indicating that SMTP is not configured
var ErrSMTPNotConfigured = errors.New("SMTP is not configured")

// Backend is an interface for sending emails.
type Backend interface {
	Queue(subject, from string, to []string, contentType, body string) error
}

// EmailDialer is an interface for sending email messages
type EmailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// gomailDialer wraps gomail.Dialer to implement EmailDialer interface
type gomailDialer struct {
	*gomail.Dialer
}

// DefaultBackend is an implementation of the Backend
// that sends an email without queueing.
type DefaultBackend struct {
	Dialer  EmailDialer
	Enabled bool
}

// SMTPParams are the SMTP server settings
type SMTPParams struct {
	Host     string
	Port     int
	Username string
	Password string
}

// IsConfigured reports whether every setting needed to dial is present
func (p SMTPParams) IsConfigured() bool {
	return p.Host != "" && p.Port != 0 && p.Username != "" && p.Password != ""
}

// NewDefaultBackend creates a default backend
func NewDefaultBackend(p SMTPParams) (*DefaultBackend, error) {
	if !p.IsConfigured() {
		return nil, ErrSMTPNotConfigured
	}

	d := gomail.NewDialer(p.Host, p.Port, p.Username, p.Password)

	return &DefaultBackend{
		Dialer:  &gomailDialer{Dialer: d},
		Enabled: true,
	}, nil
}

// Queue is an implementation of Backend.Queue.
// It sends the email immediately via SMTP.
func (b *DefaultBackend) Queue(subject, from string, to []string, contentType, body string) error {
	if !b.Enabled {
		log.WithFields(log.Fields{
			"subject": subject,
		}).Debug("email backend disabled. not sending")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody(contentType, body)

	if err := b.Dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "dialing and sending email")
	}

	return nil
}

// StdoutBackend is an implementation of the Backend
// that prints emails instead of sending them.
type StdoutBackend struct{}

// NewStdoutBackend creates a stdout backend
func NewStdoutBackend() *StdoutBackend {
	return &StdoutBackend{}
}

// Queue is an implementation of Backend.Queue.
// It logs the email instead of sending it.
func (b *StdoutBackend) Queue(subject, from string, to []string, contentType, body string) error {
	log.WithFields(log.Fields{
		"subject": subject,
		"to":      to,
		"from":    from,
		"body":    body,
	}).Info("Email (not sent, using StdoutBackend)")

	return nil
}

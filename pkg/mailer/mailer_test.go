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
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestAllTemplatesInitialized(t *testing.T) {
	tmpl := NewTemplates()

	emailTypes := []string{
		EmailTypeShareLink,
		EmailTypeCollaboratorInvite,
	}

	for _, emailType := range emailTypes {
		t.Run(emailType, func(t *testing.T) {
			_, err := tmpl.get(emailType, EmailKindText)
			if err != nil {
				t.Errorf("template %s not initialized: %v", emailType, err)
			}
		})
	}
}

func TestExecute_unknownTemplate(t *testing.T) {
	tmpl := NewTemplates()

	if _, _, err := tmpl.Execute("password_reset", EmailKindText, nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestShareLinkEmail(t *testing.T) {
	testCases := []struct {
		data     ShareLinkTmplData
		expected []string
		absent   []string
	}{
		{
			data: ShareLinkTmplData{
				SenderName: "alice",
				TripTitle:  "Lisbon",
				ShareURL:   "tripnote://share/abc123",
			},
			expected: []string{"alice", "Lisbon", "tripnote://share/abc123", "You can view the trip."},
			absent:   []string{"expires"},
		},
		{
			data: ShareLinkTmplData{
				SenderName:    "bob",
				TripTitle:     "Kyoto",
				ShareURL:      "tripnote://share/xyz789",
				Collaborative: true,
				ExpiresAt:     "2024-05-01",
			},
			expected: []string{"bob", "Kyoto", "tripnote://share/xyz789", "edit it", "expires on 2024-05-01"},
		},
	}

	tmpl := NewTemplates()

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("trip %s", tc.data.TripTitle), func(t *testing.T) {
			subject, body, err := tmpl.Execute(EmailTypeShareLink, EmailKindText, tc.data)
			if err != nil {
				t.Fatal(errors.Wrap(err, "executing"))
			}

			if subject != "A trip was shared with you" {
				t.Errorf("expected subject 'A trip was shared with you', got '%s'", subject)
			}
			for _, s := range tc.expected {
				if !strings.Contains(body, s) {
					t.Errorf("email body did not contain %s", s)
				}
			}
			for _, s := range tc.absent {
				if strings.Contains(body, s) {
					t.Errorf("email body should not contain %s", s)
				}
			}
		})
	}
}

func TestCollaboratorInviteEmail(t *testing.T) {
	tmpl := NewTemplates()

	dat := CollaboratorInviteTmplData{
		SenderName:   "alice",
		TripTitle:    "Lisbon",
		InvitationID: 42,
		Role:         "editor",
	}
	subject, body, err := tmpl.Execute(EmailTypeCollaboratorInvite, EmailKindText, dat)
	if err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	if subject != "You were invited to a trip" {
		t.Errorf("unexpected subject '%s'", subject)
	}
	for _, s := range []string{"alice", "Lisbon", "editor", "tripnote trip accept 42"} {
		if !strings.Contains(body, s) {
			t.Errorf("email body did not contain %s", s)
		}
	}
}

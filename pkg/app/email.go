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

package app

import (
	"time"

	"github.com/dnote/tripnote/pkg/database"
	"github.com/dnote/tripnote/pkg/mailer"
	"github.com/dnote/tripnote/pkg/token"
	"github.com/pkg/errors"
)

var defaultSender = "noreply@tripnote.app"

// ErrInvalidSMTPConfig is an error for an email that could not be sent
// because SMTP is not configured
var ErrInvalidSMTPConfig = errors.New("SMTP is not configured")

func senderName(u *database.User) string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}

	return u.Username
}

func (a *App) sendEmail(templateType string, to []string, data interface{}) error {
	subject, body, err := a.EmailTemplates.Execute(templateType, mailer.EmailKindText, data)
	if err != nil {
		return errors.Wrap(err, "executing template")
	}

	if err := a.EmailBackend.Queue(subject, a.EmailFrom, to, mailer.EmailKindText, body); err != nil {
		if errors.Cause(err) == mailer.ErrSMTPNotConfigured {
			return ErrInvalidSMTPConfig
		}

		return errors.Wrap(err, "queueing email")
	}

	return nil
}

// SendShareLink emails the deep link of the share with the given token to
// the recipient on behalf of the sender
func (a *App) SendShareLink(senderID int, tok, recipient string) error {
	if err := validateEmail(recipient); err != nil {
		return err
	}

	share, err := a.GetTripShareByToken(tok)
	if err != nil {
		return errors.Wrap(err, "finding share")
	}
	if share == nil {
		return ErrNotFound
	}
	trip, err := a.GetTripByID(share.TripID)
	if err != nil {
		return errors.Wrap(err, "finding trip")
	}
	if trip == nil {
		return ErrNotFound
	}
	sender, err := a.GetUserByID(senderID)
	if err != nil {
		return errors.Wrap(err, "finding sender")
	}
	if sender == nil {
		return ErrNotFound
	}

	data := mailer.ShareLinkTmplData{
		SenderName:    senderName(sender),
		TripTitle:     trip.Title,
		ShareURL:      token.ShareURL(a.DeepLinkScheme, share.ShareToken),
		Collaborative: share.ShareType == database.ShareTypeCollaborative,
	}
	if share.ExpiresAt != nil {
		data.ExpiresAt = time.UnixMilli(*share.ExpiresAt).UTC().Format("2006-01-02")
	}

	if err := a.sendEmail(mailer.EmailTypeShareLink, []string{recipient}, data); err != nil {
		return errors.Wrapf(err, "sending share link to %s", recipient)
	}

	return nil
}

// SendCollaboratorInvite emails the invited user of the given collaboration
func (a *App) SendCollaboratorInvite(collaboratorID int) error {
	var c database.TripCollaborator
	ok, err := findByID(a.DB, &c, collaboratorID)
	if err != nil {
		return newStorageError("finding collaborator", err)
	}
	if !ok {
		return ErrNotFound
	}

	invitee, err := a.GetUserByID(c.UserID)
	if err != nil {
		return errors.Wrap(err, "finding invitee")
	}
	inviter, err := a.GetUserByID(c.InvitedBy)
	if err != nil {
		return errors.Wrap(err, "finding inviter")
	}
	trip, err := a.GetTripByID(c.TripID)
	if err != nil {
		return errors.Wrap(err, "finding trip")
	}
	if invitee == nil || inviter == nil || trip == nil {
		return ErrNotFound
	}

	data := mailer.CollaboratorInviteTmplData{
		SenderName:   senderName(inviter),
		TripTitle:    trip.Title,
		InvitationID: c.ID,
		Role:         c.Role,
	}

	if err := a.sendEmail(mailer.EmailTypeCollaboratorInvite, []string{invitee.Email}, data); err != nil {
		return errors.Wrapf(err, "sending invitation to %s", invitee.Email)
	}

	return nil
}

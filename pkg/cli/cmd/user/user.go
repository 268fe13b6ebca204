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

package user

import (
	"github.com/dnote/tripnote/pkg/app"
	"github.com/dnote/tripnote/pkg/cli/context"
	"github.com/dnote/tripnote/pkg/cli/infra"
	"github.com/dnote/tripnote/pkg/cli/log"
	"github.com/dnote/tripnote/pkg/cli/output"
	"github.com/dnote/tripnote/pkg/cli/session"
	"github.com/dnote/tripnote/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Create an account and log in
  tripnote user register --username alice --email alice@example.com

  * Log in
  tripnote user login --email alice@example.com

  * Change the country and remove the mobile number
  tripnote user update --country PT --clear-mobile`

// NewCmd returns a new user command
func NewCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Short:   "Manage accounts",
		Example: example,
	}

	cmd.AddCommand(newRegisterCmd(ctx))
	cmd.AddCommand(newLoginCmd(ctx))
	cmd.AddCommand(newLogoutCmd(ctx))
	cmd.AddCommand(newWhoamiCmd(ctx))
	cmd.AddCommand(newUpdateCmd(ctx))
	cmd.AddCommand(newPasswdCmd(ctx))
	cmd.AddCommand(newDeleteCmd(ctx))

	return cmd
}

// getPassword returns the value of the --password flag, or prompts for it
func getPassword(cmd *cobra.Command, message string) (string, error) {
	p, err := infra.StringPtr(cmd, "password")
	if err != nil {
		return "", err
	}
	if p != nil {
		return *p, nil
	}

	var password string
	if err := ui.PromptPassword(message, &password); err != nil {
		return "", errors.Wrap(err, "getting password input")
	}

	return password, nil
}

func newRegisterCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in to it",
		Args:  cobra.NoArgs,
		RunE:  newRegisterRun(ctx),
	}

	f := cmd.Flags()
	f.String("username", "", "the username")
	f.String("email", "", "the email address")
	f.String("password", "", "the password (prompted if omitted)")
	f.String("first-name", "", "the first name")
	f.String("last-name", "", "the last name")
	f.String("country", "", "the country")

	return cmd
}

func newRegisterRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		username, _ := f.GetString("username")
		email, _ := f.GetString("email")

		if email == "" {
			if err := ui.PromptInput("email", &email); err != nil {
				return errors.Wrap(err, "getting email input")
			}
		}
		if username == "" {
			if err := ui.PromptInput("username", &username); err != nil {
				return errors.Wrap(err, "getting username input")
			}
		}
		password, err := getPassword(cmd, "password")
		if err != nil {
			return err
		}

		p := app.UserParams{
			Username: username,
			Email:    email,
			Password: password,
		}
		if p.FirstName, err = infra.StringPtr(cmd, "first-name"); err != nil {
			return err
		}
		if p.LastName, err = infra.StringPtr(cmd, "last-name"); err != nil {
			return err
		}
		if p.Country, err = infra.StringPtr(cmd, "country"); err != nil {
			return err
		}

		id, err := ctx.App.InsertUser(p)
		if err != nil {
			return errors.Wrap(err, "creating the account")
		}
		if err := session.Login(ctx, id); err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Successf("registered and logged in as %s\n", email)

		return nil
	}
}

func newLoginCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an account",
		Args:  cobra.NoArgs,
		RunE:  newLoginRun(ctx),
	}

	f := cmd.Flags()
	f.String("email", "", "the email address (prompted if omitted)")
	f.String("password", "", "the password (prompted if omitted)")

	return cmd
}

func newLoginRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			if err := ui.PromptInput("email", &email); err != nil {
				return errors.Wrap(err, "getting email input")
			}
		}
		password, err := getPassword(cmd, "password")
		if err != nil {
			return err
		}

		user, err := ctx.App.Authenticate(email, password)
		if errors.Cause(err) == app.ErrLoginInvalid {
			return app.ErrLoginInvalid
		} else if err != nil {
			return errors.Wrap(err, "authenticating")
		}

		if err := session.Login(ctx, user.ID); err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Successf("logged in as %s\n", user.Email)

		return nil
	}
}

func newLogoutCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := session.Logout(ctx)
			if err == session.ErrNotLoggedIn {
				log.Error("not logged in\n")
				return nil
			} else if err != nil {
				return errors.Wrap(err, "logging out")
			}

			log.Success("logged out\n")

			return nil
		},
	}
}

func newWhoamiCmd(ctx context.TripnoteCtx) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := session.User(ctx)
			if err != nil {
				return err
			}

			output.UserInfo(*user)

			return nil
		},
	}
}

func newUpdateCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the profile of the logged in account",
		Args:  cobra.NoArgs,
		RunE:  newUpdateRun(ctx),
	}

	f := cmd.Flags()
	f.String("username", "", "a new username")
	f.String("email", "", "a new email address")
	f.String("first-name", "", "a new first name")
	f.String("last-name", "", "a new last name")
	f.String("mobile", "", "a new mobile number")
	f.String("birth-date", "", "a new birth date (YYYY-MM-DD)")
	f.String("avatar", "", "a new avatar uri")
	f.String("country", "", "a new country")
	for _, name := range []string{"first-name", "last-name", "mobile", "birth-date", "avatar", "country"} {
		infra.AddClearFlag(cmd, name)
	}

	return cmd
}

func getUserPatch(cmd *cobra.Command) (app.UserPatch, error) {
	var p app.UserPatch
	var err error

	if p.Username, err = infra.StringPtr(cmd, "username"); err != nil {
		return p, err
	}
	if p.Email, err = infra.StringPtr(cmd, "email"); err != nil {
		return p, err
	}
	if p.FirstName, err = infra.NullableString(cmd, "first-name"); err != nil {
		return p, err
	}
	if p.LastName, err = infra.NullableString(cmd, "last-name"); err != nil {
		return p, err
	}
	if p.Mobile, err = infra.NullableString(cmd, "mobile"); err != nil {
		return p, err
	}
	if p.BirthDate, err = infra.NullableDate(cmd, "birth-date"); err != nil {
		return p, err
	}
	if p.Avatar, err = infra.NullableString(cmd, "avatar"); err != nil {
		return p, err
	}
	if p.Country, err = infra.NullableString(cmd, "country"); err != nil {
		return p, err
	}

	return p, nil
}

func newUpdateRun(ctx context.TripnoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		userID, err := session.UserID(ctx)
		if err != nil {
			return err
		}

		p, err := getUserPatch(cmd)
		if err != nil {
			return errors.Wrap(err, "reading flags")
		}

		if err := ctx.App.UpdateUserProfile(userID, p); err != nil {
			return errors.Wrap(err, "updating the profile")
		}

		user, err := ctx.App.GetUserByID(userID)
		if err != nil {
			return errors.Wrap(err, "finding the user")
		}

		log.Success("updated the profile\n")
		output.UserInfo(*user)

		return nil
	}
}

func newPasswdCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := session.UserID(ctx)
			if err != nil {
				return err
			}

			password, err := getPassword(cmd, "new password")
			if err != nil {
				return err
			}

			if err := ctx.App.UpdatePassword(userID, password); err != nil {
				return errors.Wrap(err, "updating the password")
			}

			log.Success("changed the password\n")

			return nil
		},
	}

	cmd.Flags().String("password", "", "the new password (prompted if omitted)")

	return cmd
}

func newDeleteCmd(ctx context.TripnoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the logged in account and every trip it owns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := session.User(ctx)
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := ui.Confirm("delete the account and all of its trips?", false)
				if err != nil {
					return errors.Wrap(err, "getting confirmation")
				}
				if !ok {
					log.Warnf("aborted by user\n")
					return nil
				}
			}

			if err := ctx.App.DeleteUser(user.ID); err != nil {
				return errors.Wrap(err, "deleting the account")
			}
			if err := session.Logout(ctx); err != nil {
				return errors.Wrap(err, "logging out")
			}

			log.Successf("deleted %s\n", user.Email)

			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation")

	return cmd
}

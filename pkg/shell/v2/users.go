// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package v2

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/harbor"
	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/networking"
	"github.com/stacklok/harbor-cli/pkg/shell"
)

var userColumns = []string{"user_id", "username", "is_admin", "email", "realname", "comment"}

var userListCmd = shell.Command{
	Name:  "user-list",
	Short: "Get registered users of Harbor.",
	Flags: []shell.Flag{sortByFlag("user_id")},
	Run:   runUserList,
}

var userShowCmd = shell.Command{
	Name:      "user-show",
	ArgsUsage: "<user>",
	Short:     "Get a user's profile.",
	Args:      exactlyOneArg,
	Run:       runUserShow,
}

var userCreateCmd = shell.Command{
	Name:  "user-create",
	Short: "Creates a new user account.",
	Flags: []shell.Flag{
		{Name: "username", Usage: "Unique name of the new user."},
		{Name: "password", Usage: "Password of the new user."},
		{Name: "email", Usage: "Email of the new user."},
		{Name: "realname", Usage: "Real name of the new user."},
		{Name: "comment", Usage: "Comment of the new user."},
	},
	Run: runUserCreate,
}

var userDeleteCmd = shell.Command{
	Name:      "user-delete",
	ArgsUsage: "<user>",
	Short:     "Mark a registered user as removed.",
	Args:      exactlyOneArg,
	Run:       runUserDelete,
}

var whoamiCmd = shell.Command{
	Name:  "whoami",
	Short: "Get current user info.",
	Flags: []shell.Flag{
		{Name: "detail", Shorthand: "d", Kind: shell.FlagBool, Usage: "show detail info."},
	},
	Run: runWhoami,
}

// runUserList fetches the listing and the built-in administrator, which the
// listing leaves out, at the same time.
func runUserList(ctx context.Context, env *shell.Env, _ []string) error {
	var (
		users []harbor.User
		admin *harbor.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = env.Client.ListUsers(gctx)
		if networking.IsHTTPError(err, http.StatusForbidden) {
			return errors.NewCommandError("only administrators can list users", err)
		}
		return err
	})
	g.Go(func() error {
		u, err := env.Client.GetUser(gctx, harbor.AdminUserID)
		if err != nil {
			logger.Debugf("skipping administrator account: %v", err)
			return nil
		}
		admin = &u
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if admin != nil && !containsUser(users, admin.UserID) {
		users = append(users, *admin)
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			formatInt(u.UserID),
			u.Username,
			strconv.FormatBool(u.SysadminFlag),
			u.Email,
			u.Realname,
			u.Comment,
		})
	}
	return shell.PrintList(env.Out, userColumns, rows, env.String("sortby"))
}

func containsUser(users []harbor.User, id int64) bool {
	for _, u := range users {
		if u.UserID == id {
			return true
		}
	}
	return false
}

func runUserShow(ctx context.Context, env *shell.Env, args []string) error {
	user, err := env.Client.FindUser(ctx, args[0])
	if networking.IsHTTPError(err, http.StatusNotFound) {
		return errors.NewCommandError(fmt.Sprintf("User '%s' not found.", args[0]), err)
	}
	if err != nil {
		return err
	}
	return shell.PrintDict(env.Out, userFields(user))
}

func runUserCreate(ctx context.Context, env *shell.Env, _ []string) error {
	user := harbor.UserCreate{
		Username: env.String("username"),
		Password: env.String("password"),
		Email:    env.String("email"),
		Realname: env.String("realname"),
		Comment:  env.String("comment"),
	}
	for _, required := range []string{"username", "password", "email"} {
		if env.String(required) == "" {
			return errors.NewInvalidArgumentError(fmt.Sprintf("the --%s flag is required", required), nil)
		}
	}

	err := env.Client.CreateUser(ctx, user)
	if networking.IsHTTPError(err, http.StatusConflict) {
		return errors.NewCommandError(fmt.Sprintf("User '%s' already exists.", user.Username), err)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Create user '%s' successfully.\n", user.Username)
	return err
}

func runUserDelete(ctx context.Context, env *shell.Env, args []string) error {
	user, err := env.Client.FindUser(ctx, args[0])
	if networking.IsHTTPError(err, http.StatusNotFound) {
		return errors.NewCommandError(fmt.Sprintf("User '%s' not found.", args[0]), err)
	}
	if err != nil {
		return err
	}
	if err := env.Client.DeleteUser(ctx, user.UserID); err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Delete user '%s' successfully.\n", args[0])
	return err
}

func runWhoami(ctx context.Context, env *shell.Env, _ []string) error {
	user, err := env.Client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if env.Bool("detail") {
		return shell.PrintDict(env.Out, userFields(user))
	}
	_, err = fmt.Fprintln(env.Out, user.Username)
	return err
}

func userFields(u harbor.User) map[string]string {
	return map[string]string{
		"user_id":       formatInt(u.UserID),
		"username":      u.Username,
		"email":         u.Email,
		"realname":      u.Realname,
		"comment":       u.Comment,
		"sysadmin_flag": strconv.FormatBool(u.SysadminFlag),
		"creation_time": shell.FormatTime(u.CreationTime),
	}
}

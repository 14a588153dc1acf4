// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package v2

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/harbor"
	"github.com/stacklok/harbor-cli/pkg/networking"
	"github.com/stacklok/harbor-cli/pkg/shell"
)

var projectColumns = []string{
	"project_id", "name", "owner_id", "current_user_role_id", "repo_count", "creation_time", "public",
}

var projectListCmd = shell.Command{
	Name:  "project-list",
	Short: "List projects.",
	Flags: []shell.Flag{sortByFlag("project_id")},
	Run:   runProjectList,
}

// projectListFilteredCmd replaces project-list from 2.4 on, where the
// server filters by name and visibility.
var projectListFilteredCmd = shell.Command{
	Name:  "project-list",
	Short: "List projects, optionally filtered by name or visibility.",
	Flags: []shell.Flag{
		sortByFlag("project_id"),
		{Name: "name", Usage: "Only list projects whose name contains this value."},
		{Name: "public", Usage: "Only list public (true) or private (false) projects."},
		{Name: "page-size", Kind: shell.FlagInt, Default: "0", Usage: "Number of projects per page, 0 for the server default."},
	},
	Run: runProjectListFiltered,
}

var projectShowCmd = shell.Command{
	Name:      "project-show",
	ArgsUsage: "<project>",
	Short:     "Show specific project detail information.",
	Args:      exactlyOneArg,
	Run:       runProjectShow,
}

var projectCreateCmd = shell.Command{
	Name:      "project-create",
	ArgsUsage: "<name>",
	Short:     "Create a new project.",
	Args:      exactlyOneArg,
	Flags: []shell.Flag{
		{Name: "is-public", Default: "true", Usage: "Make project accessible to the public."},
		{
			Name:  "storage-limit",
			Kind:  shell.FlagInt,
			Usage: "Storage quota of the project in bytes, -1 for unlimited.",
			Floor: "2.1",
		},
	},
	Run: runProjectCreate,
}

var projectDeleteCmd = shell.Command{
	Name:      "project-delete",
	ArgsUsage: "<project>",
	Short:     "Delete project by id or name.",
	Args:      exactlyOneArg,
	Run:       runProjectDelete,
}

func runProjectList(ctx context.Context, env *shell.Env, _ []string) error {
	projects, err := env.Client.ListProjects(ctx, harbor.ProjectListOptions{})
	if err != nil {
		return err
	}
	return printProjects(env, projects)
}

func runProjectListFiltered(ctx context.Context, env *shell.Env, _ []string) error {
	opts := harbor.ProjectListOptions{
		Name:     env.String("name"),
		PageSize: env.Int("page-size"),
	}
	if env.Changed("public") {
		public, err := strconv.ParseBool(env.String("public"))
		if err != nil {
			return errors.NewInvalidArgumentError(
				fmt.Sprintf("--public must be true or false, got '%s'", env.String("public")), err)
		}
		opts.Public = &public
	}

	projects, err := env.Client.ListProjects(ctx, opts)
	if err != nil {
		return err
	}
	return printProjects(env, projects)
}

func printProjects(env *shell.Env, projects []harbor.Project) error {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			formatInt(p.ProjectID),
			p.Name,
			formatInt(p.OwnerID),
			formatInt(p.CurrentUserRoleID),
			formatInt(p.RepoCount),
			shell.FormatTime(p.CreationTime),
			strconv.FormatBool(p.IsPublic()),
		})
	}
	return shell.PrintList(env.Out, projectColumns, rows, env.String("sortby"))
}

func runProjectShow(ctx context.Context, env *shell.Env, args []string) error {
	project, err := env.Client.GetProject(ctx, args[0])
	if networking.IsHTTPError(err, http.StatusNotFound) {
		return errors.NewCommandError(fmt.Sprintf("Project '%s' not found", args[0]), err)
	}
	if err != nil {
		return err
	}
	return shell.PrintDict(env.Out, map[string]string{
		"project_id":           formatInt(project.ProjectID),
		"name":                 project.Name,
		"owner_id":             formatInt(project.OwnerID),
		"owner_name":           project.OwnerName,
		"current_user_role_id": formatInt(project.CurrentUserRoleID),
		"repo_count":           formatInt(project.RepoCount),
		"creation_time":        shell.FormatTime(project.CreationTime),
		"public":               strconv.FormatBool(project.IsPublic()),
	})
}

func runProjectCreate(ctx context.Context, env *shell.Env, args []string) error {
	public, err := strconv.ParseBool(env.String("is-public"))
	if err != nil {
		return errors.NewInvalidArgumentError(
			fmt.Sprintf("--is-public must be true or false, got '%s'", env.String("is-public")), err)
	}

	project := harbor.ProjectCreate{
		ProjectName: args[0],
		Metadata:    harbor.ProjectMetadata{Public: strconv.FormatBool(public)},
	}
	if env.Changed("storage-limit") {
		limit := int64(env.Int("storage-limit"))
		project.StorageLimit = &limit
	}

	err = env.Client.CreateProject(ctx, project)
	if networking.IsHTTPError(err, http.StatusConflict) {
		return errors.NewCommandError(fmt.Sprintf("Project name '%s' already exists.", args[0]), err)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Create project '%s' successfully.\n", args[0])
	return err
}

func runProjectDelete(ctx context.Context, env *shell.Env, args []string) error {
	err := env.Client.DeleteProject(ctx, args[0])
	if networking.IsHTTPError(err, http.StatusNotFound) {
		return errors.NewCommandError(fmt.Sprintf("Project '%s' not found.", args[0]), err)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Delete project '%s' successfully.\n", args[0])
	return err
}

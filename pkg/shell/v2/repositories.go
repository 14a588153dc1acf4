// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package v2

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/shell"
)

var repositoryListCmd = shell.Command{
	Name:  "list",
	Short: "Get repositories of a project.",
	Flags: []shell.Flag{
		{Name: "project-id", Shorthand: "p", Usage: "ID or name of project, defaults to the configured project."},
		sortByFlag("name"),
	},
	Run: runRepositoryList,
}

var searchCmd = shell.Command{
	Name:      "search",
	ArgsUsage: "<query>",
	Short:     "Search for projects and repositories.",
	Args:      exactlyOneArg,
	Run:       runSearch,
}

func runRepositoryList(ctx context.Context, env *shell.Env, _ []string) error {
	project := env.String("project-id")
	if project == "" {
		project = env.Client.Project()
	}
	if project == "" {
		return errors.NewCommandError("no project given, use --project-id or configure a default project", nil)
	}

	repos, err := env.Client.ListRepositories(ctx, project)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		rows = append(rows, []string{
			r.Name,
			formatInt(r.ProjectID),
			formatInt(r.ArtifactCount),
			formatInt(r.PullCount),
			shell.FormatTime(r.UpdateTime),
		})
	}
	columns := []string{"name", "project_id", "artifact_count", "pull_count", "update_time"}
	return shell.PrintList(env.Out, columns, rows, env.String("sortby"))
}

func runSearch(ctx context.Context, env *shell.Env, args []string) error {
	result, err := env.Client.Search(ctx, args[0])
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(env.Out, "Find %d Projects: \n", len(result.Project)); err != nil {
		return err
	}
	projectRows := make([][]string, 0, len(result.Project))
	for _, p := range result.Project {
		projectRows = append(projectRows, []string{
			formatInt(p.ProjectID),
			p.Name,
			strconv.FormatBool(p.IsPublic()),
			formatInt(p.RepoCount),
			shell.FormatTime(p.CreationTime),
		})
	}
	hitColumns := []string{"project_id", "name", "public", "repo_count", "creation_time"}
	if err := shell.PrintList(env.Out, hitColumns, projectRows, "project_id"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(env.Out, "\nFind %d Repositories: \n", len(result.Repository)); err != nil {
		return err
	}
	repoRows := make([][]string, 0, len(result.Repository))
	for _, r := range result.Repository {
		repoRows = append(repoRows, []string{
			r.RepositoryName,
			r.ProjectName,
			formatInt(r.ProjectID),
			strconv.FormatBool(r.ProjectPublic),
		})
	}
	repoColumns := []string{"repository_name", "project_name", "project_id", "project_public"}
	return shell.PrintList(env.Out, repoColumns, repoRows, "repository_name")
}

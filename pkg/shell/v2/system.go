// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package v2

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/networking"
	"github.com/stacklok/harbor-cli/pkg/shell"
)

var usageCmd = shell.Command{
	Name:  "usage",
	Short: "Get projects number and repositories number relevant to the user.",
	Run:   runUsage,
}

var infoCmd = shell.Command{
	Name:  "info",
	Short: "Get general system info.",
	Run:   runInfo,
}

var quotaListCmd = shell.Command{
	Name:  "quota-list",
	Short: "List the storage quotas of projects.",
	Flags: []shell.Flag{sortByFlag("id")},
	Run:   runQuotaList,
}

var robotListCmd = shell.Command{
	Name:  "robot-list",
	Short: "List robot accounts.",
	Flags: []shell.Flag{
		{Name: "project", Usage: "Only list the robot accounts of this project.", Floor: "2.3"},
		sortByFlag("id"),
	},
	Run: runRobotList,
}

func runUsage(ctx context.Context, env *shell.Env, _ []string) error {
	stats, err := env.Client.Statistics(ctx)
	if err != nil {
		return err
	}
	return shell.PrintDict(env.Out, map[string]string{
		"private_project_count":     formatInt(stats.PrivateProjectCount),
		"private_repo_count":        formatInt(stats.PrivateRepoCount),
		"public_project_count":      formatInt(stats.PublicProjectCount),
		"public_repo_count":         formatInt(stats.PublicRepoCount),
		"total_project_count":       formatInt(stats.TotalProjectCount),
		"total_repo_count":          formatInt(stats.TotalRepoCount),
		"total_storage_consumption": formatInt(stats.TotalStorageConsumption),
	})
}

func runInfo(ctx context.Context, env *shell.Env, _ []string) error {
	info, err := env.Client.SystemInfo(ctx)
	if err != nil {
		return err
	}

	fields := map[string]string{
		"harbor_version":               info.HarborVersion,
		"auth_mode":                    info.AuthMode,
		"registry_url":                 info.RegistryURL,
		"external_url":                 info.ExternalURL,
		"project_creation_restriction": info.ProjectCreationRole,
		"self_registration":            strconv.FormatBool(info.SelfRegistration),
		"read_only":                    strconv.FormatBool(info.ReadOnly),
		"has_ca_root":                  strconv.FormatBool(info.HasCACert),
	}

	volumes, err := env.Client.SystemVolumes(ctx)
	switch {
	case networking.IsHTTPError(err, http.StatusForbidden):
		// Only administrators can read the volumes.
		logger.Debug("not allowed to read storage volumes")
	case err != nil:
		return err
	case len(volumes.Storage) > 0:
		fields["disk_total"] = strconv.FormatUint(volumes.Storage[0].Total, 10)
		fields["disk_free"] = strconv.FormatUint(volumes.Storage[0].Free, 10)
	}
	return shell.PrintDict(env.Out, fields)
}

func runQuotaList(ctx context.Context, env *shell.Env, _ []string) error {
	quotas, err := env.Client.ListQuotas(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(quotas))
	for _, q := range quotas {
		rows = append(rows, []string{
			formatInt(q.ID),
			q.Ref.Name,
			q.Ref.OwnerName,
			formatLimit(q.Hard["storage"]),
			formatInt(q.Used["storage"]),
		})
	}
	columns := []string{"id", "project", "owner", "storage_hard", "storage_used"}
	return shell.PrintList(env.Out, columns, rows, env.String("sortby"))
}

// formatLimit renders a quota limit; -1 means unlimited.
func formatLimit(limit int64) string {
	if limit < 0 {
		return "unlimited"
	}
	return formatInt(limit)
}

func runRobotList(ctx context.Context, env *shell.Env, _ []string) error {
	robots, err := env.Client.ListRobots(ctx, env.String("project"))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(robots))
	for _, r := range robots {
		rows = append(rows, []string{
			formatInt(r.ID),
			r.Name,
			r.Level,
			strconv.FormatBool(r.Disable),
			formatExpiry(r.ExpiresAt),
			r.Description,
		})
	}
	columns := []string{"id", "name", "level", "disabled", "expires_at", "description"}
	return shell.PrintList(env.Out, columns, rows, env.String("sortby"))
}

// formatExpiry renders a unix timestamp; -1 means the account never expires.
func formatExpiry(ts int64) string {
	if ts < 0 {
		return "never"
	}
	return shell.FormatTime(time.Unix(ts, 0))
}

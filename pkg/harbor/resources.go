// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package harbor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stacklok/harbor-cli/pkg/networking"
)

// AdminUserID is the id of the built-in administrator account.
const AdminUserID int64 = 1

// ListUsers returns the registered users. The built-in administrator is not
// part of the listing.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.Get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns the user with the given id.
func (c *Client) GetUser(ctx context.Context, id int64) (User, error) {
	var user User
	err := c.Get(ctx, "/users/"+strconv.FormatInt(id, 10), nil, &user)
	return user, err
}

// CurrentUser returns the account the client authenticates as.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	err := c.Get(ctx, "/users/current", nil, &user)
	return user, err
}

// FindUser resolves a user by numeric id or by exact username.
func (c *Client) FindUser(ctx context.Context, key string) (User, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return c.GetUser(ctx, id)
	}

	var matches []User
	if err := c.Get(ctx, "/users/search", url.Values{"username": {key}}, &matches); err != nil {
		return User{}, err
	}
	for _, u := range matches {
		if u.Username == key {
			return c.GetUser(ctx, u.UserID)
		}
	}
	return User{}, networking.NewHTTPError(http.StatusNotFound, c.BaseURL(), fmt.Sprintf("user '%s' not found", key))
}

// CreateUser registers a new account. Only administrators may call it
// when self registration is off.
func (c *Client) CreateUser(ctx context.Context, user UserCreate) error {
	return c.Post(ctx, "/users", user)
}

// DeleteUser marks the user with the given id as removed.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Delete(ctx, "/users/"+strconv.FormatInt(id, 10))
}

// ProjectListOptions filters ListProjects.
type ProjectListOptions struct {
	Name     string
	Public   *bool
	Page     int
	PageSize int
}

func (o ProjectListOptions) values() url.Values {
	q := url.Values{}
	if o.Name != "" {
		q.Set("name", o.Name)
	}
	if o.Public != nil {
		q.Set("public", strconv.FormatBool(*o.Public))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return q
}

// ListProjects returns the projects visible to the user.
func (c *Client) ListProjects(ctx context.Context, opts ProjectListOptions) ([]Project, error) {
	var projects []Project
	if err := c.Get(ctx, "/projects", opts.values(), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a project by name or id.
func (c *Client) GetProject(ctx context.Context, nameOrID string) (Project, error) {
	var project Project
	err := c.Get(ctx, "/projects/"+url.PathEscape(nameOrID), nil, &project)
	return project, err
}

// CreateProject creates a project. The server answers 409 when the name is
// taken.
func (c *Client) CreateProject(ctx context.Context, project ProjectCreate) error {
	return c.Post(ctx, "/projects", project)
}

// DeleteProject deletes a project by name or id. The project must not hold
// repositories.
func (c *Client) DeleteProject(ctx context.Context, nameOrID string) error {
	return c.Delete(ctx, "/projects/"+url.PathEscape(nameOrID))
}

// ListRepositories returns the repositories of a project.
func (c *Client) ListRepositories(ctx context.Context, project string) ([]Repository, error) {
	var repos []Repository
	if err := c.Get(ctx, "/projects/"+url.PathEscape(project)+"/repositories", nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Search looks up projects and repositories by name.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	var result SearchResult
	err := c.Get(ctx, "/search", url.Values{"q": {query}}, &result)
	return result, err
}

// Statistics returns the project and repository counters of the user.
func (c *Client) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	err := c.Get(ctx, "/statistics", nil, &stats)
	return stats, err
}

// SystemInfo returns the general server configuration.
func (c *Client) SystemInfo(ctx context.Context) (SystemInfo, error) {
	var info SystemInfo
	err := c.Get(ctx, "/systeminfo", nil, &info)
	return info, err
}

// SystemVolumes returns the storage capacity of the server. Only
// administrators may call it.
func (c *Client) SystemVolumes(ctx context.Context) (SystemVolumes, error) {
	var volumes SystemVolumes
	err := c.Get(ctx, "/systeminfo/volumes", nil, &volumes)
	return volumes, err
}

// ListQuotas returns the project quotas.
func (c *Client) ListQuotas(ctx context.Context) ([]Quota, error) {
	var quotas []Quota
	if err := c.Get(ctx, "/quotas", nil, &quotas); err != nil {
		return nil, err
	}
	return quotas, nil
}

// ListRobots returns the robot accounts, all of them when project is empty
// and those of one project otherwise.
func (c *Client) ListRobots(ctx context.Context, project string) ([]Robot, error) {
	path := "/robots"
	if project != "" {
		path = "/projects/" + url.PathEscape(project) + "/robots"
	}
	var robots []Robot
	if err := c.Get(ctx, path, nil, &robots); err != nil {
		return nil, err
	}
	return robots, nil
}

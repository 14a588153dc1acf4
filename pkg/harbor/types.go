// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package harbor

import "time"

// User is a registered Harbor account.
type User struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Realname     string    `json:"realname"`
	Comment      string    `json:"comment"`
	SysadminFlag bool      `json:"sysadmin_flag"`
	CreationTime time.Time `json:"creation_time"`
}

// UserCreate is the body of a user creation request.
type UserCreate struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Realname string `json:"realname,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// ProjectCreate is the body of a project creation request. StorageLimit is
// in bytes, -1 for unlimited; nil leaves the server default.
type ProjectCreate struct {
	ProjectName  string          `json:"project_name"`
	Metadata     ProjectMetadata `json:"metadata"`
	StorageLimit *int64          `json:"storage_limit,omitempty"`
}

// ProjectMetadata holds the string-valued project settings.
type ProjectMetadata struct {
	Public string `json:"public"`
}

// Project is a Harbor project.
type Project struct {
	ProjectID         int64           `json:"project_id"`
	Name              string          `json:"name"`
	OwnerID           int64           `json:"owner_id"`
	OwnerName         string          `json:"owner_name"`
	CurrentUserRoleID int64           `json:"current_user_role_id"`
	RepoCount         int64           `json:"repo_count"`
	CreationTime      time.Time       `json:"creation_time"`
	Metadata          ProjectMetadata `json:"metadata"`
}

// IsPublic reports whether anonymous users may pull from the project.
func (p Project) IsPublic() bool {
	return p.Metadata.Public == "true"
}

// Repository is an image repository inside a project.
type Repository struct {
	ID            int64     `json:"id"`
	ProjectID     int64     `json:"project_id"`
	Name          string    `json:"name"`
	ArtifactCount int64     `json:"artifact_count"`
	PullCount     int64     `json:"pull_count"`
	UpdateTime    time.Time `json:"update_time"`
}

// SearchRepository is a repository hit of a search.
type SearchRepository struct {
	RepositoryName string `json:"repository_name"`
	ProjectName    string `json:"project_name"`
	ProjectID      int64  `json:"project_id"`
	ProjectPublic  bool   `json:"project_public"`
	ArtifactCount  int64  `json:"artifact_count"`
	PullCount      int64  `json:"pull_count"`
}

// SearchResult groups the projects and repositories matching a query.
type SearchResult struct {
	Project    []Project          `json:"project"`
	Repository []SearchRepository `json:"repository"`
}

// Statistics counts the projects and repositories visible to the user.
type Statistics struct {
	PrivateProjectCount     int64 `json:"private_project_count"`
	PrivateRepoCount        int64 `json:"private_repo_count"`
	PublicProjectCount      int64 `json:"public_project_count"`
	PublicRepoCount         int64 `json:"public_repo_count"`
	TotalProjectCount       int64 `json:"total_project_count"`
	TotalRepoCount          int64 `json:"total_repo_count"`
	TotalStorageConsumption int64 `json:"total_storage_consumption"`
}

// SystemInfo is the general server configuration.
type SystemInfo struct {
	HarborVersion       string `json:"harbor_version"`
	AuthMode            string `json:"auth_mode"`
	RegistryURL         string `json:"registry_url"`
	ExternalURL         string `json:"external_url"`
	ProjectCreationRole string `json:"project_creation_restriction"`
	SelfRegistration    bool   `json:"self_registration"`
	ReadOnly            bool   `json:"read_only"`
	HasCACert           bool   `json:"has_ca_root"`
}

// StorageVolume is the capacity of one storage backend in bytes.
type StorageVolume struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
}

// SystemVolumes lists the storage backends of the server. Admin only.
type SystemVolumes struct {
	Storage []StorageVolume `json:"storage"`
}

// QuotaRef identifies the object a quota applies to.
type QuotaRef struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"owner_name"`
}

// Quota is the storage limit and usage of a project.
type Quota struct {
	ID           int64            `json:"id"`
	Ref          QuotaRef         `json:"ref"`
	Hard         map[string]int64 `json:"hard"`
	Used         map[string]int64 `json:"used"`
	CreationTime time.Time        `json:"creation_time"`
	UpdateTime   time.Time        `json:"update_time"`
}

// Robot is a robot account.
type Robot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Disable     bool   `json:"disable"`
	ExpiresAt   int64  `json:"expires_at"`
}

package github

import "strings"

// User represents a GitHub user. Optional fields are nil when absent
// from the response.
type User struct {
	ID          int64   `json:"id"`
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio,omitempty"`
	Name        *string `json:"name,omitempty"`
	PublicRepos *int    `json:"public_repos,omitempty"`
	Followers   *int    `json:"followers,omitempty"`
	Following   *int    `json:"following,omitempty"`
}

// DisplayName returns the user's name, falling back to the login
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Login
}

// Owner is the reduced user reference embedded in a repository
type Owner struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

// Repository represents a GitHub repository
type Repository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        *string `json:"full_name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Language        *string `json:"language,omitempty"`
	Visibility      string  `json:"visibility"`
	StargazersCount *int    `json:"stargazers_count,omitempty"`
	ForksCount      *int    `json:"forks_count,omitempty"`
	WatchersCount   *int    `json:"watchers_count,omitempty"`
	OpenIssuesCount *int    `json:"open_issues_count,omitempty"`
	Owner           *Owner  `json:"owner,omitempty"`
}

// OwnerLogin returns the owner login, falling back to the prefix of the full name
func (r *Repository) OwnerLogin() string {
	if r.Owner != nil && r.Owner.Login != "" {
		return r.Owner.Login
	}
	if r.FullName != nil {
		if owner, _, ok := strings.Cut(*r.FullName, "/"); ok {
			return owner
		}
	}
	return ""
}

// Stars returns the stargazer count, or 0 when absent
func (r *Repository) Stars() int {
	return deref(r.StargazersCount)
}

// Forks returns the fork count, or 0 when absent
func (r *Repository) Forks() int {
	return deref(r.ForksCount)
}

// SearchResponse is one page of search results
type SearchResponse[T any] struct {
	TotalCount int `json:"total_count"`
	// IncompleteResults is set when the server's search timed out internally
	IncompleteResults bool `json:"incomplete_results"`
	Items             []T  `json:"items"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

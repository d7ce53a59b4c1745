package github

import (
	"context"
)

// API defines the interface for GitHub operations
type API interface {
	// FetchUser retrieves a single user by login
	FetchUser(ctx context.Context, username string) (*User, error)

	// FetchRepos retrieves the public repositories of a user
	FetchRepos(ctx context.Context, username string) ([]Repository, error)

	// FetchFollowers retrieves the followers of a user
	FetchFollowers(ctx context.Context, username string) ([]User, error)

	// SearchPopularRepositories retrieves one page of repositories sorted by stars
	SearchPopularRepositories(ctx context.Context, page, perPage int) (*SearchResponse[Repository], error)
}

var _ API = (*Client)(nil)

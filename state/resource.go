package state

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/ghscout/github"
)

// Snapshot is a view of a Resource. Data is a copy of the top-level value
// (the struct or slice); optional fields inside it are shared and must be
// treated as read-only.
type Snapshot[T any] struct {
	// Data is the last successfully fetched value; zero until Loaded
	Data         T
	Loaded       bool
	IsLoading    bool
	ErrorMessage string
	Status       Status
}

// HasError reports whether the last fetch failed
func (s Snapshot[T]) HasError() bool {
	return s.ErrorMessage != ""
}

// FetchFunc retrieves the value held by a Resource
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource holds the data, loading flag and error message for one
// single-call concern. At most one fetch runs at a time.
type Resource[T any] struct {
	name   string
	logger zerolog.Logger
	// clone copies data into snapshots; nil shares it
	clone func(T) T

	mu           sync.Mutex
	data         T
	loaded       bool
	isLoading    bool
	errorMessage string

	observers observers[Snapshot[T]]
}

// NewResource creates an empty Resource. name is used in log output.
func NewResource[T any](name string, logger zerolog.Logger) *Resource[T] {
	return &Resource[T]{
		name:   name,
		logger: logger.With().Str("container", name).Logger(),
	}
}

// Load runs fetch and stores its result. A failed fetch sets the error
// message and keeps the previous data. Load returns false without doing
// anything when a fetch is already in flight.
func (r *Resource[T]) Load(ctx context.Context, fetch FetchFunc[T]) bool {
	r.mu.Lock()
	if r.isLoading {
		r.mu.Unlock()
		r.logger.Debug().Msg("Fetch already in flight, skipping")
		return false
	}
	r.isLoading = true
	r.errorMessage = ""
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.observers.notify(snap)

	value, err := fetch(ctx)

	r.mu.Lock()
	if err != nil {
		r.errorMessage = ErrorMessage(err)
		r.logger.Warn().
			Err(err).
			Stringer("kind", github.KindOf(err)).
			Msg("Fetch failed")
	} else {
		r.data = value
		r.loaded = true
		r.errorMessage = ""
	}
	r.isLoading = false
	snap = r.snapshotLocked()
	r.mu.Unlock()
	r.observers.notify(snap)

	return true
}

// ClearError removes the error message without touching data or loading state
func (r *Resource[T]) ClearError() {
	r.mu.Lock()
	if r.errorMessage == "" {
		r.mu.Unlock()
		return
	}
	r.errorMessage = ""
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.observers.notify(snap)
}

// Snapshot returns the current state
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change.
func (r *Resource[T]) Subscribe(fn func(Snapshot[T])) (unsubscribe func()) {
	return r.observers.subscribe(fn)
}

func (r *Resource[T]) snapshotLocked() Snapshot[T] {
	data := r.data
	if r.clone != nil {
		data = r.clone(data)
	}
	return Snapshot[T]{
		Data:         data,
		Loaded:       r.loaded,
		IsLoading:    r.isLoading,
		ErrorMessage: r.errorMessage,
		Status:       deriveStatus(r.isLoading, r.errorMessage, r.loaded),
	}
}

// UserProfile holds a single user looked up by login
type UserProfile struct {
	*Resource[*github.User]
	api github.API
}

// NewUserProfile creates a UserProfile backed by api
func NewUserProfile(api github.API, logger zerolog.Logger) *UserProfile {
	r := NewResource[*github.User]("user_profile", logger)
	r.clone = cloneUser
	return &UserProfile{Resource: r, api: api}
}

// Fetch loads the user with the given login
func (p *UserProfile) Fetch(ctx context.Context, username string) bool {
	return p.Load(ctx, func(ctx context.Context) (*github.User, error) {
		return p.api.FetchUser(ctx, username)
	})
}

// RepositoryList holds the repositories of one user
type RepositoryList struct {
	*Resource[[]github.Repository]
	api github.API
}

// NewRepositoryList creates a RepositoryList backed by api
func NewRepositoryList(api github.API, logger zerolog.Logger) *RepositoryList {
	r := NewResource[[]github.Repository]("repository_list", logger)
	r.clone = slices.Clone[[]github.Repository, github.Repository]
	return &RepositoryList{Resource: r, api: api}
}

// Fetch loads the repositories of the given login
func (l *RepositoryList) Fetch(ctx context.Context, username string) bool {
	return l.Load(ctx, func(ctx context.Context) ([]github.Repository, error) {
		return l.api.FetchRepos(ctx, username)
	})
}

// FollowerList holds the followers of one user
type FollowerList struct {
	*Resource[[]github.User]
	api github.API
}

// NewFollowerList creates a FollowerList backed by api
func NewFollowerList(api github.API, logger zerolog.Logger) *FollowerList {
	r := NewResource[[]github.User]("follower_list", logger)
	r.clone = slices.Clone[[]github.User, github.User]
	return &FollowerList{Resource: r, api: api}
}

// Fetch loads the followers of the given login
func (l *FollowerList) Fetch(ctx context.Context, username string) bool {
	return l.Load(ctx, func(ctx context.Context) ([]github.User, error) {
		return l.api.FetchFollowers(ctx, username)
	})
}

func cloneUser(u *github.User) *github.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

package state

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/ghscout/github"
)

// PageSize is the number of repositories requested per page
const PageSize = 30

// PopularSnapshot is an immutable view of a PopularRepositories session
type PopularSnapshot struct {
	CurrentPage int
	// Items holds every loaded page in page order, then server order
	Items             []github.Repository
	HasMorePages      bool
	TotalCount        int
	IncompleteResults bool
	IsLoading         bool
	ErrorMessage      string
	Status            Status
}

// HasError reports whether the last fetch failed
func (s PopularSnapshot) HasError() bool {
	return s.ErrorMessage != ""
}

// PopularRepositories accumulates pages of the popular repositories search
type PopularRepositories struct {
	api    github.API
	logger zerolog.Logger

	mu                sync.Mutex
	currentPage       int
	items             []github.Repository
	hasMorePages      bool
	totalCount        int
	incompleteResults bool
	loaded            bool
	isLoading         bool
	errorMessage      string

	// session is bumped by Refresh; a fetch started in an older session
	// discards its result
	session uint64
	// idle is closed when the in-flight fetch completes
	idle chan struct{}

	observers observers[PopularSnapshot]
}

// NewPopularRepositories creates an empty browsing session backed by api
func NewPopularRepositories(api github.API, logger zerolog.Logger) *PopularRepositories {
	return &PopularRepositories{
		api:          api,
		logger:       logger.With().Str("container", "popular_repositories").Logger(),
		currentPage:  1,
		hasMorePages: true,
	}
}

// FetchPopularRepositories loads the given page. Page 1 replaces the
// accumulated items and later pages are appended. A failed fetch keeps the
// items and current page as they were, and a nil response counts as an
// empty page. Returns false without doing anything
// when a fetch is already in flight.
func (p *PopularRepositories) FetchPopularRepositories(ctx context.Context, page int) bool {
	if page < 1 {
		page = 1
	}

	p.mu.Lock()
	if p.isLoading {
		p.mu.Unlock()
		p.logger.Debug().Int("page", page).Msg("Fetch already in flight, skipping")
		return false
	}
	p.isLoading = true
	p.errorMessage = ""
	p.idle = make(chan struct{})
	session := p.session
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.observers.notify(snap)

	resp, err := p.api.SearchPopularRepositories(ctx, page, PageSize)
	if err == nil && resp == nil {
		resp = &github.SearchResponse[github.Repository]{}
	}

	p.mu.Lock()
	switch {
	case session != p.session:
		p.logger.Debug().Int("page", page).Msg("Discarding result from before refresh")
	case err != nil:
		p.errorMessage = ErrorMessage(err)
		p.logger.Warn().
			Err(err).
			Int("page", page).
			Stringer("kind", github.KindOf(err)).
			Msg("Failed to fetch popular repositories")
		p.hasMorePages = len(p.items) < p.totalCount
	default:
		if page == 1 {
			p.items = slices.Clone(resp.Items)
		} else {
			p.items = append(p.items, resp.Items...)
		}
		p.currentPage = page
		p.totalCount = resp.TotalCount
		p.incompleteResults = resp.IncompleteResults
		p.hasMorePages = len(p.items) < p.totalCount
		p.loaded = true

		p.logger.Debug().
			Int("page", page).
			Int("count", len(resp.Items)).
			Int("accumulated", len(p.items)).
			Int("total", p.totalCount).
			Bool("has_more", p.hasMorePages).
			Msg("Loaded popular repositories page")
	}
	p.isLoading = false
	close(p.idle)
	snap = p.snapshotLocked()
	p.mu.Unlock()
	p.observers.notify(snap)

	return true
}

// LoadNextPage fetches the page after the current one. It does nothing when
// there are no more pages or a fetch is in flight.
func (p *PopularRepositories) LoadNextPage(ctx context.Context) bool {
	p.mu.Lock()
	if !p.hasMorePages || p.isLoading {
		p.mu.Unlock()
		return false
	}
	next := p.currentPage + 1
	p.mu.Unlock()

	return p.FetchPopularRepositories(ctx, next)
}

// Refresh discards the session and loads page 1 again. A fetch already in
// flight is left to finish, its result is discarded, and page 1 is loaded
// once it completes. Returns false if ctx ends before page 1 could start.
func (p *PopularRepositories) Refresh(ctx context.Context) bool {
	p.mu.Lock()
	p.session++
	p.currentPage = 1
	p.hasMorePages = true
	p.items = nil
	p.totalCount = 0
	p.incompleteResults = false
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.observers.notify(snap)

	for {
		if p.FetchPopularRepositories(ctx, 1) {
			return true
		}

		p.mu.Lock()
		idle, loading := p.idle, p.isLoading
		p.mu.Unlock()
		if !loading {
			continue
		}

		select {
		case <-idle:
		case <-ctx.Done():
			return false
		}
	}
}

// ClearError removes the error message without touching anything else
func (p *PopularRepositories) ClearError() {
	p.mu.Lock()
	if p.errorMessage == "" {
		p.mu.Unlock()
		return
	}
	p.errorMessage = ""
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.observers.notify(snap)
}

// Snapshot returns the current state
func (p *PopularRepositories) Snapshot() PopularSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change.
func (p *PopularRepositories) Subscribe(fn func(PopularSnapshot)) (unsubscribe func()) {
	return p.observers.subscribe(fn)
}

func (p *PopularRepositories) snapshotLocked() PopularSnapshot {
	return PopularSnapshot{
		CurrentPage:       p.currentPage,
		Items:             slices.Clone(p.items),
		HasMorePages:      p.hasMorePages,
		TotalCount:        p.totalCount,
		IncompleteResults: p.incompleteResults,
		IsLoading:         p.isLoading,
		ErrorMessage:      p.errorMessage,
		Status:            deriveStatus(p.isLoading, p.errorMessage, p.loaded),
	}
}

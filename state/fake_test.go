package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/s0up4200/ghscout/github"
)

// fakeAPI implements github.API for testing
type fakeAPI struct {
	mu sync.Mutex

	user      *github.User
	userErr   error
	repos     []github.Repository
	reposErr  error
	followers []github.User
	follErr   error

	pages     map[int]*github.SearchResponse[github.Repository]
	searchErr map[int]error

	// When block is non-nil every call signals started and then waits on block
	block   chan struct{}
	started chan struct{}

	// Track calls for verification
	userCalls     int
	reposCalls    int
	followerCalls int
	searchPages   []int
	searchPerPage []int
}

func (f *fakeAPI) wait(ctx context.Context) error {
	f.mu.Lock()
	block, started := f.block, f.started
	f.mu.Unlock()

	if block == nil {
		return nil
	}
	if started != nil {
		started <- struct{}{}
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) FetchUser(ctx context.Context, username string) (*github.User, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.userErr
}

func (f *fakeAPI) FetchRepos(ctx context.Context, username string) ([]github.Repository, error) {
	f.mu.Lock()
	f.reposCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repos, f.reposErr
}

func (f *fakeAPI) FetchFollowers(ctx context.Context, username string) ([]github.User, error) {
	f.mu.Lock()
	f.followerCalls++
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.followers, f.follErr
}

func (f *fakeAPI) SearchPopularRepositories(ctx context.Context, page, perPage int) (*github.SearchResponse[github.Repository], error) {
	f.mu.Lock()
	f.searchPages = append(f.searchPages, page)
	f.searchPerPage = append(f.searchPerPage, perPage)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.searchErr[page]; err != nil {
		return nil, err
	}
	resp, ok := f.pages[page]
	if !ok {
		return nil, &github.APIError{Kind: github.KindInvalidResponse, StatusCode: 422}
	}
	return resp, nil
}

func (f *fakeAPI) setPage(page int, resp *github.SearchResponse[github.Repository]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pages == nil {
		f.pages = make(map[int]*github.SearchResponse[github.Repository])
	}
	f.pages[page] = resp
}

func (f *fakeAPI) failPage(page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr == nil {
		f.searchErr = make(map[int]error)
	}
	f.searchErr[page] = err
}

func (f *fakeAPI) blockCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = make(chan struct{})
	f.started = make(chan struct{}, 8)
}

func (f *fakeAPI) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.block)
}

func (f *fakeAPI) searchCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.searchPages...)
}

// makeRepos returns n repositories with sequential IDs starting at first
func makeRepos(first, n int) []github.Repository {
	repos := make([]github.Repository, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		repos = append(repos, github.Repository{
			ID:         int64(id),
			Name:       fmt.Sprintf("repo-%d", id),
			Visibility: "public",
		})
	}
	return repos
}

func searchPage(total, first, n int) *github.SearchResponse[github.Repository] {
	return &github.SearchResponse[github.Repository]{
		TotalCount: total,
		Items:      makeRepos(first, n),
	}
}

func repoIDs(repos []github.Repository) []int64 {
	ids := make([]int64, 0, len(repos))
	for _, r := range repos {
		ids = append(ids, r.ID)
	}
	return ids
}

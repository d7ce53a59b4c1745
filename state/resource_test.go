package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/ghscout/github"
)

func intPtr(v int) *int { return &v }

func TestUserProfile_NotFound(t *testing.T) {
	api := &fakeAPI{userErr: &github.APIError{Kind: github.KindNotFound, StatusCode: 404}}
	profile := NewUserProfile(api, zerolog.Nop())

	require.True(t, profile.Fetch(context.Background(), "ghost"))
	snap := profile.Snapshot()

	assert.Nil(t, snap.Data)
	assert.False(t, snap.Loaded)
	assert.Equal(t, "User or resource not found", snap.ErrorMessage)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, StatusErrored, snap.Status)
}

func TestUserProfile_Success(t *testing.T) {
	api := &fakeAPI{user: &github.User{ID: 1, Login: "octocat", AvatarURL: "u", Followers: intPtr(100), Following: intPtr(50)}}
	profile := NewUserProfile(api, zerolog.Nop())

	profile.Fetch(context.Background(), "octocat")
	snap := profile.Snapshot()

	require.NotNil(t, snap.Data)
	assert.Equal(t, "octocat", snap.Data.Login)
	assert.True(t, snap.Loaded)
	assert.Empty(t, snap.ErrorMessage)
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Equal(t, 1, api.userCalls)
}

func TestUserProfile_FailureKeepsPreviousData(t *testing.T) {
	api := &fakeAPI{user: &github.User{ID: 1, Login: "octocat"}}
	profile := NewUserProfile(api, zerolog.Nop())
	ctx := context.Background()

	profile.Fetch(ctx, "octocat")

	api.mu.Lock()
	api.user = nil
	api.userErr = &github.APIError{Kind: github.KindNetwork, Err: errors.New("dial tcp: i/o timeout")}
	api.mu.Unlock()

	profile.Fetch(ctx, "octocat")
	snap := profile.Snapshot()

	require.NotNil(t, snap.Data)
	assert.Equal(t, "octocat", snap.Data.Login)
	assert.Equal(t, "dial tcp: i/o timeout", snap.ErrorMessage)
	assert.Equal(t, StatusErrored, snap.Status)
}

func TestResource_ClearError(t *testing.T) {
	api := &fakeAPI{repos: makeRepos(1, 3)}
	list := NewRepositoryList(api, zerolog.Nop())
	ctx := context.Background()

	list.Fetch(ctx, "octocat")

	api.mu.Lock()
	api.reposErr = errors.New("boom")
	api.mu.Unlock()
	list.Fetch(ctx, "octocat")
	require.Equal(t, FallbackMessage, list.Snapshot().ErrorMessage)

	list.ClearError()
	snap := list.Snapshot()
	assert.Empty(t, snap.ErrorMessage)
	assert.Len(t, snap.Data, 3)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, StatusLoaded, snap.Status)
}

func TestResource_InFlightGuard(t *testing.T) {
	api := &fakeAPI{followers: []github.User{{ID: 2, Login: "hubot"}}}
	api.blockCalls()
	followers := NewFollowerList(api, zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		followers.Fetch(ctx, "octocat")
	}()
	<-api.started

	assert.True(t, followers.Snapshot().IsLoading)
	assert.False(t, followers.Fetch(ctx, "octocat"))

	api.release()
	wg.Wait()

	snap := followers.Snapshot()
	assert.False(t, snap.IsLoading)
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "hubot", snap.Data[0].Login)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, 1, api.followerCalls)
}

func TestResource_CancelledFetch(t *testing.T) {
	api := &fakeAPI{}
	api.blockCalls()
	profile := NewUserProfile(api, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		profile.Fetch(ctx, "octocat")
	}()
	<-api.started
	cancel()
	<-done

	snap := profile.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Equal(t, FallbackMessage, snap.ErrorMessage)
}

func TestResource_Observers(t *testing.T) {
	api := &fakeAPI{repos: makeRepos(1, 2)}
	list := NewRepositoryList(api, zerolog.Nop())

	var statuses []Status
	unsubscribe := list.Subscribe(func(s Snapshot[[]github.Repository]) {
		statuses = append(statuses, s.Status)
		if s.Status == StatusLoaded {
			assert.Len(t, s.Data, 2)
			assert.False(t, s.IsLoading)
		}
	})
	defer unsubscribe()

	list.Fetch(context.Background(), "octocat")
	assert.Equal(t, []Status{StatusLoading, StatusLoaded}, statuses)
}

func TestResource_ClearErrorWhileLoading(t *testing.T) {
	api := &fakeAPI{userErr: &github.APIError{Kind: github.KindNotFound, StatusCode: 404}}
	profile := NewUserProfile(api, zerolog.Nop())
	ctx := context.Background()

	profile.Fetch(ctx, "ghost")
	require.True(t, profile.Snapshot().HasError())

	api.mu.Lock()
	api.userErr = nil
	api.user = &github.User{ID: 1, Login: "octocat"}
	api.mu.Unlock()
	api.blockCalls()

	done := make(chan struct{})
	go func() {
		defer close(done)
		profile.Fetch(ctx, "octocat")
	}()
	<-api.started

	var notified int
	unsubscribe := profile.Subscribe(func(Snapshot[*github.User]) { notified++ })
	profile.ClearError()
	assert.Equal(t, 0, notified)
	assert.True(t, profile.Snapshot().IsLoading)
	unsubscribe()

	api.release()
	<-done

	snap := profile.Snapshot()
	assert.Equal(t, StatusLoaded, snap.Status)
	assert.Equal(t, "octocat", snap.Data.Login)
}

func TestResource_SnapshotIsolation(t *testing.T) {
	api := &fakeAPI{
		user:  &github.User{ID: 1, Login: "octocat"},
		repos: makeRepos(1, 2),
	}
	ctx := context.Background()

	profile := NewUserProfile(api, zerolog.Nop())
	profile.Fetch(ctx, "octocat")
	snap := profile.Snapshot()
	snap.Data.Login = "changed"
	assert.Equal(t, "octocat", profile.Snapshot().Data.Login)

	repos := NewRepositoryList(api, zerolog.Nop())
	repos.Subscribe(func(s Snapshot[[]github.Repository]) {
		if len(s.Data) > 0 {
			s.Data[0].Name = "changed"
		}
	})
	repos.Fetch(ctx, "octocat")
	assert.Equal(t, "repo-1", repos.Snapshot().Data[0].Name)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "taxonomy", err: &github.APIError{Kind: github.KindInvalidData}, expected: "Invalid data"},
		{name: "wrapped taxonomy", err: errors.Join(errors.New("ctx"), &github.APIError{Kind: github.KindForbidden}), expected: "Access forbidden"},
		{name: "network", err: &github.APIError{Kind: github.KindNetwork, Err: errors.New("no route to host")}, expected: "no route to host"},
		{name: "unknown", err: context.DeadlineExceeded, expected: FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusIdle, "IDLE"},
		{StatusLoading, "LOADING"},
		{StatusLoaded, "LOADED"},
		{StatusErrored, "ERRORED"},
		{Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

package github

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRoundTrip(t *testing.T) {
	t.Run("all optional fields present", func(t *testing.T) {
		input := `{
			"id": 42,
			"name": "hello-world",
			"full_name": "octocat/hello-world",
			"description": "My first repository",
			"language": "Go",
			"visibility": "public",
			"stargazers_count": 1500,
			"forks_count": 200,
			"watchers_count": 1500,
			"open_issues_count": 7,
			"owner": {"login": "octocat", "id": 1, "avatar_url": "https://example.com/a.png"}
		}`

		var repo Repository
		require.NoError(t, json.Unmarshal([]byte(input), &repo))

		output, err := json.Marshal(repo)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(output))
	})

	t.Run("all optional fields absent", func(t *testing.T) {
		var repo Repository
		require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"bare","visibility":"private"}`), &repo))

		assert.Equal(t, int64(7), repo.ID)
		assert.Equal(t, "bare", repo.Name)
		assert.Equal(t, "private", repo.Visibility)
		assert.Nil(t, repo.FullName)
		assert.Nil(t, repo.Description)
		assert.Nil(t, repo.Language)
		assert.Nil(t, repo.StargazersCount)
		assert.Nil(t, repo.ForksCount)
		assert.Nil(t, repo.WatchersCount)
		assert.Nil(t, repo.OpenIssuesCount)
		assert.Nil(t, repo.Owner)
	})

	t.Run("null optionals decode as absent", func(t *testing.T) {
		var repo Repository
		require.NoError(t, json.Unmarshal([]byte(`{"id":8,"name":"n","visibility":"public","description":null,"language":null}`), &repo))
		assert.Nil(t, repo.Description)
		assert.Nil(t, repo.Language)
	})
}

func TestUserDisplayName(t *testing.T) {
	name := "The Octocat"
	empty := ""

	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{name: "name available", user: User{Login: "octocat", Name: &name}, expected: "The Octocat"},
		{name: "name absent", user: User{Login: "octocat"}, expected: "octocat"},
		{name: "name empty", user: User{Login: "octocat", Name: &empty}, expected: "octocat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.DisplayName())
		})
	}
}

func TestRepositoryOwnerLogin(t *testing.T) {
	fullName := "hubot/scripts"

	assert.Equal(t, "octocat", (&Repository{Owner: &Owner{Login: "octocat"}, FullName: &fullName}).OwnerLogin())
	assert.Equal(t, "hubot", (&Repository{FullName: &fullName}).OwnerLogin())
	assert.Equal(t, "", (&Repository{Name: "orphan"}).OwnerLogin())
}

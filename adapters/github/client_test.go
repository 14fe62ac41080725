package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/api/internal/application/service"
)

func TestListRepos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"devconnect","html_url":"https://github.com/octocat/devconnect","description":"demo","stargazers_count":42,"watchers_count":42,"forks_count":7},
			{"name":"dotfiles","html_url":"https://github.com/octocat/dotfiles","stargazers_count":1}
		]`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	repos, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	require.Len(t, repos, 2)
	assert.Equal(t, "devconnect", repos[0].Name)
	assert.Equal(t, 42, repos[0].Stars)
	assert.Equal(t, 7, repos[0].Forks)
	assert.Equal(t, "https://github.com/octocat/dotfiles", repos[1].HTMLURL)
}

func TestListRepos_UserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.ListRepos(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, service.ErrGithubUserNotFound)
}

func TestListRepos_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.ListRepos(context.Background(), "octocat")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrGithubUserNotFound)
}

func TestListRepos_EscapesUsername(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.ListRepos(context.Background(), "weird/name")
	require.NoError(t, err)
	assert.Equal(t, "/users/weird%2Fname/repos", gotPath)
}

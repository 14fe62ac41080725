package service

import (
	"context"
	"errors"
)

var ErrGithubUserNotFound = errors.New("github user not found")

type GithubRepo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// GithubGateway lists a user's newest public repositories.
type GithubGateway interface {
	ListRepos(ctx context.Context, username string) ([]GithubRepo, error)
}

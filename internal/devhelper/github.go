package devhelper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ObiAU/contentagents/internal/models"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

var ErrGitHubDisabled = errors.New("GITHUB_TOKEN not set")

type GitHubClient struct {
	gh *gh.Client
}

// NewGitHubClient returns a client authenticated with token, or a disabled
// client when token is empty.
func NewGitHubClient(ctx context.Context, token string, timeout time.Duration) *GitHubClient {
	if token == "" {
		return &GitHubClient{}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout
	return &GitHubClient{gh: gh.NewClient(tc)}
}

func (c *GitHubClient) Enabled() bool {
	return c != nil && c.gh != nil
}

// WithBaseURL points the client at a GitHub Enterprise or test server.
func (c *GitHubClient) WithBaseURL(base string) (*GitHubClient, error) {
	if !c.Enabled() {
		return c, nil
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	c.gh.BaseURL = u
	return c, nil
}

// FetchIssue loads issue number from repo, given as "owner/name".
func (c *GitHubClient) FetchIssue(ctx context.Context, repo string, number int) (models.Issue, error) {
	if !c.Enabled() {
		return models.Issue{}, ErrGitHubDisabled
	}

	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return models.Issue{}, fmt.Errorf("repo must be owner/name, got %q", repo)
	}

	issue, _, err := c.gh.Issues.Get(ctx, owner, name, number)
	if err != nil {
		return models.Issue{}, fmt.Errorf("get issue %s#%d: %w", repo, number, err)
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	return models.Issue{
		Repo:   repo,
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		Labels: labels,
		Author: issue.GetUser().GetLogin(),
	}, nil
}

// LoadIssue reads an issue payload from a YAML or JSON file. JSON parses as
// YAML, so one decoder serves both.
func LoadIssue(path string) (models.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Issue{}, fmt.Errorf("read issue file: %w", err)
	}

	var issue models.Issue
	if err := yaml.Unmarshal(data, &issue); err != nil {
		return models.Issue{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if issue.Title == "" && issue.Body == "" {
		return models.Issue{}, fmt.Errorf("%s has neither title nor body", filepath.Base(path))
	}
	return issue, nil
}

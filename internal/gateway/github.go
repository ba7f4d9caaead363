// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client library.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/profile-cards/internal/domain"
)

const (
	// reposPerPage is the page size for the repository listing. Pagination
	// stops on the first page shorter than this.
	reposPerPage = 100

	requestTimeout = 30 * time.Second
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) (*domain.User, error)
	FetchOwnedRepos(ctx context.Context, login string) ([]domain.RepoInfo, error)
	FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	CountCommitsOn(ctx context.Context, login string, day time.Time) (int, error)
	CountPRsSince(ctx context.Context, login string, since time.Time) (int, error)
	CountIssuesSince(ctx context.Context, login string, since time.Time) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is carried as a static oauth2 source layered over a rate limit
// waiter, so secondary rate limits sleep instead of failing the run.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// FetchUser looks up the target user's public profile.
func (g *GitHubGateway) FetchUser(ctx context.Context, login string) (*domain.User, error) {
	g.logger.Printf("Fetching profile for %s...", login)
	u, _, err := g.client.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", login, err)
	}
	return &domain.User{
		Login:       u.GetLogin(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
	}, nil
}

// FetchOwnedRepos lists every repository owned by the user, newest pushed
// first, walking pages of 100 until a short or empty page.
func (g *GitHubGateway) FetchOwnedRepos(ctx context.Context, login string) ([]domain.RepoInfo, error) {
	g.logger.Printf("Fetching owned repositories for %s...", login)
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "pushed",
		ListOptions: github.ListOptions{PerPage: reposPerPage, Page: 1},
	}
	var repos []domain.RepoInfo
	for {
		page, _, err := g.client.Repositories.ListByUser(ctx, login, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %q: %w", login, err)
		}
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			owner := r.GetOwner().GetLogin()
			if owner == "" {
				owner = login
			}
			repos = append(repos, domain.RepoInfo{
				Owner:         owner,
				Name:          r.GetName(),
				Stars:         r.GetStargazersCount(),
				LanguagesURL:  r.GetLanguagesURL(),
				DefaultBranch: r.GetDefaultBranch(),
			})
		}
		if len(page) < reposPerPage {
			break
		}
		opts.Page++
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Completed fetching repositories: %d total.", len(repos))
	return repos, nil
}

// FetchLanguages returns the bytes-of-code-per-language map for one repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	langs, _, err := g.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s/%s: %w", owner, repo, err)
	}
	return langs, nil
}

// CountCommitsOn returns the number of commits authored by the user on a
// single UTC calendar day, as reported by commit search.
func (g *GitHubGateway) CountCommitsOn(ctx context.Context, login string, day time.Time) (int, error) {
	query := fmt.Sprintf("author:%s committer-date:%s", login, day.UTC().Format("2006-01-02"))
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.client.Search.Commits(ctx, query, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search commits for %q: %w", query, err)
	}
	return result.GetTotal(), nil
}

// CountPRsSince returns the number of pull requests authored by the user
// and created on or after the given date.
func (g *GitHubGateway) CountPRsSince(ctx context.Context, login string, since time.Time) (int, error) {
	query := fmt.Sprintf("author:%s type:pr created:>=%s", login, since.UTC().Format("2006-01-02"))
	return g.searchIssueTotal(ctx, query)
}

// CountIssuesSince returns the number of issues authored by the user and
// created on or after the given date.
func (g *GitHubGateway) CountIssuesSince(ctx context.Context, login string, since time.Time) (int, error) {
	query := fmt.Sprintf("author:%s type:issue created:>=%s", login, since.UTC().Format("2006-01-02"))
	return g.searchIssueTotal(ctx, query)
}

func (g *GitHubGateway) searchIssueTotal(ctx context.Context, query string) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.client.Search.Issues(ctx, query, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to search issues for %q: %w", query, err)
	}
	return result.GetTotal(), nil
}

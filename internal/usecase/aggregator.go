// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/profile-cards/internal/domain"
	"github.com/naka-gawa/profile-cards/internal/gateway"
)

// windowDays is the number of calendar days covered by the activity card:
// today plus the 30 days before it.
const windowDays = 31

// Aggregator is the use case for assembling a user's profile and activity
// stats. It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher   gateway.Fetcher
	logger    *log.Logger
	langLimit int
}

// NewAggregator creates a new Aggregator instance. langLimit bounds the
// ranked top-language list.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, langLimit int) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		logger:    logger,
		langLimit: langLimit,
	}
}

// Aggregate runs the profile and activity pipelines. The two pipelines are
// independent, so they run concurrently; the calls inside each one stay
// strictly sequential. An error from either pipeline aborts the run.
func (a *Aggregator) Aggregate(ctx context.Context, login string, now time.Time) (*domain.UserStats, *domain.ActivityStats, error) {
	a.logger.Println("Usecase: Starting data aggregation...")

	var stats *domain.UserStats
	var activity *domain.ActivityStats

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		stats, err = a.Profile(egCtx, login)
		return err
	})

	eg.Go(func() error {
		var err error
		activity, err = a.Activity(egCtx, login, now)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	a.logger.Println("Usecase: Aggregation complete.")
	return stats, activity, nil
}

// Profile fetches the user's profile and every owned repository, sums the
// star counts, and ranks languages by total bytes across all repos.
//
// The user lookup and repository listing are critical: their errors
// propagate. A single repository's language fetch failing only drops that
// repository's contribution.
func (a *Aggregator) Profile(ctx context.Context, login string) (*domain.UserStats, error) {
	user, err := a.fetcher.FetchUser(ctx, login)
	if err != nil {
		return nil, err
	}

	repos, err := a.fetcher.FetchOwnedRepos(ctx, login)
	if err != nil {
		return nil, err
	}

	totalStars := 0
	langBytes := make(map[string]int)
	for _, repo := range repos {
		totalStars += repo.Stars
		if repo.LanguagesURL == "" {
			continue
		}
		langs, err := a.fetcher.FetchLanguages(ctx, repo.Owner, repo.Name)
		if err != nil {
			a.logger.Printf("  Skipping languages for %s/%s: %v", repo.Owner, repo.Name, err)
			continue
		}
		for lang, b := range langs {
			if b > 0 {
				langBytes[lang] += b
			}
		}
	}

	return &domain.UserStats{
		Login:        user.Login,
		PublicRepos:  user.PublicRepos,
		Followers:    user.Followers,
		TotalStars:   totalStars,
		TopLanguages: rankLanguages(langBytes, a.langLimit),
	}, nil
}

// Activity builds the 31-day commit trend ending on now's UTC calendar day,
// plus the 30-day PR and issue totals. Every call in this pipeline is
// best-effort: a failure records a degraded zero and the run continues.
func (a *Aggregator) Activity(ctx context.Context, login string, now time.Time) (*domain.ActivityStats, error) {
	start := startOfWindow(now)

	days := make([]domain.DayCount, windowDays)
	for i := range days {
		day := start.AddDate(0, 0, i)
		count := domain.Count{}
		n, err := a.fetcher.CountCommitsOn(ctx, login, day)
		if err != nil {
			a.logger.Printf("  Commit search degraded for %s: %v", day.Format("2006-01-02"), err)
			count.Degraded = true
		} else {
			count.Value = n
		}
		days[i] = domain.DayCount{Date: day, Commits: count}
	}

	prs := domain.Count{}
	if n, err := a.fetcher.CountPRsSince(ctx, login, start); err != nil {
		a.logger.Printf("  PR search degraded: %v", err)
		prs.Degraded = true
	} else {
		prs.Value = n
	}

	issues := domain.Count{}
	if n, err := a.fetcher.CountIssuesSince(ctx, login, start); err != nil {
		a.logger.Printf("  Issue search degraded: %v", err)
		issues.Degraded = true
	} else {
		issues.Value = n
	}

	return &domain.ActivityStats{
		Days:          days,
		CreatedPRs:    prs,
		CreatedIssues: issues,
	}, nil
}

// startOfWindow truncates now to its UTC calendar day and steps back 30
// days, so the window spans 31 contiguous days ending today.
func startOfWindow(now time.Time) time.Time {
	t := now.UTC()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(windowDays - 1))
}

// rankLanguages turns the accumulated byte map into a list sorted by
// descending byte count, truncated to limit. Ties break by name so the
// output is stable across runs.
func rankLanguages(langBytes map[string]int, limit int) []domain.LanguageBytes {
	ranked := make([]domain.LanguageBytes, 0, len(langBytes))
	for lang, b := range langBytes {
		ranked = append(ranked, domain.LanguageBytes{Name: lang, Bytes: b})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bytes != ranked[j].Bytes {
			return ranked[i].Bytes > ranked[j].Bytes
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// User holds the profile fields we read from the GitHub users endpoint.
type User struct {
	Login       string
	PublicRepos int
	Followers   int
}

// RepoInfo describes one owned repository as returned by the repo listing.
// It is transient: built per page, consumed by aggregation, then discarded.
type RepoInfo struct {
	Owner         string
	Name          string
	Stars         int
	LanguagesURL  string
	DefaultBranch string
}

// LanguageBytes is one (language, total bytes) pair in the ranked list.
type LanguageBytes struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// UserStats is the aggregated profile record rendered on the stats and
// languages cards. TopLanguages is sorted by descending byte count and
// holds at most the configured limit.
type UserStats struct {
	Login        string          `json:"login"`
	PublicRepos  int             `json:"public_repos"`
	Followers    int             `json:"followers"`
	TotalStars   int             `json:"total_stars"`
	TopLanguages []LanguageBytes `json:"top_languages"`
}

// Count is a fetched total that distinguishes "really zero" from
// "the call failed and we substituted zero".
type Count struct {
	Value    int  `json:"value"`
	Degraded bool `json:"degraded,omitempty"`
}

// DayCount is the commit total for a single UTC calendar day.
type DayCount struct {
	Date    time.Time `json:"date"`
	Commits Count     `json:"commits"`
}

// ActivityStats covers the 31-day window ending today (UTC): one entry
// per calendar day in ascending order with no gaps, plus the PR and
// issue totals for the last 30 days.
type ActivityStats struct {
	Days          []DayCount `json:"days"`
	CreatedPRs    Count      `json:"created_prs"`
	CreatedIssues Count      `json:"created_issues"`
}

package render

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/profile-cards/internal/domain"
)

var testNow = time.Date(2026, 8, 23, 15, 4, 0, 0, time.UTC)

// requireWellFormed walks the whole document through an XML decoder.
func requireWellFormed(t *testing.T, svg []byte) {
	t.Helper()
	decoder := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, "rendered SVG must be well-formed")
	}
}

func testActivity(commits []int, prs, issues int) domain.ActivityStats {
	start := time.Date(2026, 7, 24, 0, 0, 0, 0, time.UTC)
	days := make([]domain.DayCount, 31)
	for i := range days {
		count := domain.Count{}
		if i < len(commits) {
			count.Value = commits[i]
		}
		days[i] = domain.DayCount{Date: start.AddDate(0, 0, i), Commits: count}
	}
	return domain.ActivityStats{
		Days:          days,
		CreatedPRs:    domain.Count{Value: prs},
		CreatedIssues: domain.Count{Value: issues},
	}
}

func TestStatsCard(t *testing.T) {
	stats := domain.UserStats{
		Login:       "any-user",
		PublicRepos: 42,
		Followers:   7,
		TotalStars:  128,
	}

	svg, err := StatsCard(stats, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	out := string(svg)
	assert.Contains(t, out, `aria-label="GitHub stats for any-user"`)
	assert.Contains(t, out, "Stats · any-user")
	assert.Contains(t, out, ">42<")
	assert.Contains(t, out, ">128<")
	assert.Contains(t, out, ">7<")
	assert.Contains(t, out, "Updated: 2026-08-23 15:04 UTC")
}

func TestStatsCard_EscapesLogin(t *testing.T) {
	stats := domain.UserStats{Login: `ev<il&"user"'s>`}

	svg, err := StatsCard(stats, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	out := string(svg)
	assert.Contains(t, out, "ev&lt;il&amp;&quot;user&quot;&#39;s&gt;")
	assert.NotContains(t, out, `ev<il`)
}

func TestLanguagesCard(t *testing.T) {
	stats := domain.UserStats{
		Login: "any-user",
		TopLanguages: []domain.LanguageBytes{
			{Name: "Go", Bytes: 1500},
			{Name: "Rust", Bytes: 1000},
			{Name: "C++", Bytes: 500},
		},
	}

	svg, err := LanguagesCard(stats, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	out := string(svg)
	assert.Contains(t, out, ">Go<")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "16.7%")
	assert.Contains(t, out, ">C++<")

	goIdx := strings.Index(out, ">Go<")
	rustIdx := strings.Index(out, ">Rust<")
	assert.Less(t, goIdx, rustIdx, "rows keep the ranked order")
}

func TestLanguagesCard_TruncatesToEightRows(t *testing.T) {
	langs := make([]domain.LanguageBytes, 12)
	for i := range langs {
		langs[i] = domain.LanguageBytes{Name: string(rune('A' + i)), Bytes: 1200 - i*100}
	}

	svg, err := LanguagesCard(domain.UserStats{Login: "any-user", TopLanguages: langs}, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	assert.Equal(t, 8, strings.Count(string(svg), `class="barbg"`))
}

func TestLanguagesCard_EmptyLanguages(t *testing.T) {
	svg, err := LanguagesCard(domain.UserStats{Login: "any-user"}, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)
	assert.Zero(t, strings.Count(string(svg), `class="barbg"`))
}

func TestActivityCard(t *testing.T) {
	commits := make([]int, 31)
	commits[30] = 8
	activity := testActivity(commits, 5, 2)

	svg, err := ActivityCard("any-user", activity, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	out := string(svg)
	assert.Contains(t, out, `aria-label="Recent activity for any-user"`)
	assert.Equal(t, 31, strings.Count(out, `rx="4"`), "one heat cell per day")
	assert.Contains(t, out, "PRs created")
	assert.Contains(t, out, "Issues created")
	assert.Contains(t, out, ">5<")
	assert.Contains(t, out, ">2<")
	assert.Contains(t, out, "avg 0.3", "mean of 8 commits over 31 days")
	// The busiest day gets the hottest color; quiet days the base color.
	assert.Contains(t, out, heatColors[4])
	assert.Contains(t, out, heatColors[0])
}

func TestActivityCard_AllZeroDays(t *testing.T) {
	activity := testActivity(nil, 0, 0)

	svg, err := ActivityCard("any-user", activity, testNow)
	require.NoError(t, err)
	requireWellFormed(t, svg)

	out := string(svg)
	assert.Equal(t, 31, strings.Count(out, `rx="4"`))
	// With no commits every cell falls back to the base color.
	assert.Equal(t, 31, strings.Count(out, heatColors[0]))
	assert.Contains(t, out, "avg 0.0")
}

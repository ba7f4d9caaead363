// Package render formats aggregated stats as static SVG cards. It does no
// network or file I/O; callers decide where the bytes go.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/profile-cards/internal/domain"
)

//go:embed templates/*.svg.tmpl
var templateFS embed.FS

// escaper covers the five characters that matter inside SVG text nodes
// and attributes. Login and language names are the only user-controlled
// strings that reach the markup.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var cardTmpl = template.Must(
	template.New("cards").
		Funcs(template.FuncMap{
			"escape": escaper.Replace,
		}).
		ParseFS(templateFS, "templates/*.svg.tmpl"),
)

// palette is shared across all three cards; rows and pills pick from it
// by index.
var palette = [...]string{
	"#22c55e", // green
	"#3b82f6", // blue
	"#a855f7", // purple
	"#f97316", // orange
	"#eab308", // yellow
	"#ef4444", // red
	"#14b8a6", // teal
	"#f43f5e", // pink
	"#60a5fa", // light blue
	"#34d399", // mint
}

// heatColors maps commit intensity (0..1 scaled to index 0..4) to a cell
// fill, darkest first.
var heatColors = [...]string{"#1f2937", "#22c55e", "#3b82f6", "#a855f7", "#f97316"}

const (
	statsCardWidth  = 420
	statsCardHeight = 220

	langsCardWidth  = 880
	langsCardHeight = 320
	langsShown      = 8 // rows that fit the card, regardless of the aggregation limit

	activityCardWidth  = 420
	activityCardHeight = 220

	updatedLayout = "2006-01-02 15:04 UTC"
)

// Frame carries the fields every card's outer chrome needs.
type Frame struct {
	Width    int
	Height   int
	FrameW   int
	FrameH   int
	FooterY  int
	Title    string
	Subtitle string
	Updated  string
}

func newFrame(width, height int, title, subtitle string, now time.Time) Frame {
	return Frame{
		Width:    width,
		Height:   height,
		FrameW:   width - 20,
		FrameH:   height - 20,
		FooterY:  height - 24,
		Title:    title,
		Subtitle: subtitle,
		Updated:  now.UTC().Format(updatedLayout),
	}
}

type metricPill struct {
	X      int
	DotX   int
	LabelX int
	Label  string
	Value  int
	Color  string
}

type statsViewModel struct {
	Frame
	Login       string
	AccentColor string
	AccentW     int
	Pills       []metricPill
}

// StatsCard renders the compact profile card: public repos, total stars,
// followers.
func StatsCard(s domain.UserStats, now time.Time) ([]byte, error) {
	pill := func(x int, label string, value int, color string) metricPill {
		return metricPill{X: x, DotX: x + 18, LabelX: x + 32, Label: label, Value: value, Color: color}
	}
	vm := statsViewModel{
		Frame:       newFrame(statsCardWidth, statsCardHeight, "Stats · "+s.Login, "Generated locally via GitHub Actions", now),
		Login:       s.Login,
		AccentColor: palette[1],
		AccentW:     statsCardWidth - 48,
		Pills: []metricPill{
			pill(24, "Public repos", s.PublicRepos, palette[0]),
			pill(150, "Stars", s.TotalStars, palette[3]),
			pill(276, "Followers", s.Followers, palette[2]),
		},
	}
	return execute("stats.svg.tmpl", vm)
}

type langRow struct {
	Y     int
	DotY  int
	Name  string
	Pct   string
	BarX  int
	BarY  int
	BarW  int
	FillW int
	Color string
}

type langsViewModel struct {
	Frame
	Login       string
	AccentColor string
	AccentW     int
	RuleW       int
	Rows        []langRow
}

// LanguagesCard renders the top-language table with share percentages and
// usage bars. At most eight rows are shown.
func LanguagesCard(s domain.UserStats, now time.Time) ([]byte, error) {
	langs := s.TopLanguages
	if len(langs) > langsShown {
		langs = langs[:langsShown]
	}
	total := 0
	for _, l := range langs {
		total += l.Bytes
	}
	if total == 0 {
		total = 1
	}

	const (
		startY = 132
		rowH   = 26
		barX   = 360
		barW   = 496
	)
	rows := make([]langRow, 0, len(langs))
	for i, l := range langs {
		y := startY + i*rowH
		fillW := barW * l.Bytes / total
		if fillW < 2 {
			fillW = 2
		}
		rows = append(rows, langRow{
			Y:     y,
			DotY:  y - 4,
			Name:  l.Name,
			Pct:   fmt.Sprintf("%.1f%%", float64(l.Bytes)/float64(total)*100),
			BarX:  barX,
			BarY:  y - 14,
			BarW:  barW,
			FillW: fillW,
			Color: palette[i%len(palette)],
		})
	}

	vm := langsViewModel{
		Frame:       newFrame(langsCardWidth, langsCardHeight, "Top Languages", "Top languages by bytes (summed across repos)", now),
		Login:       s.Login,
		AccentColor: palette[6],
		AccentW:     langsCardWidth - 48,
		RuleW:       langsCardWidth - 48,
		Rows:        rows,
	}
	return execute("languages.svg.tmpl", vm)
}

type heatCell struct {
	X     int
	Y     int
	W     int
	H     int
	Color string
}

type smallPill struct {
	Y      int
	DotY   int
	TextY  int
	NumY   int
	W      int
	NumX   int
	Label  string
	Value  int
	Color  string
}

type activityViewModel struct {
	Frame
	Login       string
	AccentColor string
	AccentW     int
	TrendLabel  string
	Cells       []heatCell
	Pills       []smallPill
}

// ActivityCard renders the 31-day commit heat bar plus the 30-day PR and
// issue totals. Degraded counts render the same as genuine zeros.
func ActivityCard(login string, a domain.ActivityStats, now time.Time) ([]byte, error) {
	counts := make([]float64, len(a.Days))
	for i, d := range a.Days {
		counts[i] = float64(d.Commits.Value)
	}
	mx, err := stats.Max(counts)
	if err != nil || mx <= 0 {
		mx = 1
	}
	mean, err := stats.Mean(counts)
	if err != nil {
		mean = 0
	}

	const (
		x0  = 24
		y0  = 98
		h   = 32
		gap = 2
	)
	wTotal := activityCardWidth - 48
	n := len(a.Days)
	cellW := 2
	if n > 0 {
		if w := (wTotal - gap*(n-1)) / n; w > cellW {
			cellW = w
		}
	}
	cells := make([]heatCell, 0, n)
	x := x0
	for _, d := range a.Days {
		intensity := float64(d.Commits.Value) / mx
		idx := int(math.Round(intensity * 4))
		if idx > 4 {
			idx = 4
		}
		cells = append(cells, heatCell{X: x, Y: y0, W: cellW, H: h, Color: heatColors[idx]})
		x += cellW + gap
	}

	pill := func(y int, label string, value int, color string) smallPill {
		return smallPill{
			Y: y, DotY: y + 22, TextY: y + 26, NumY: y + 28,
			W: activityCardWidth - 48, NumX: activityCardWidth - 40,
			Label: label, Value: value, Color: color,
		}
	}

	vm := activityViewModel{
		Frame:       newFrame(activityCardWidth, activityCardHeight, "Activity (last 30 days)", "Commits trend + PRs/Issues created", now),
		Login:       login,
		AccentColor: palette[4],
		AccentW:     activityCardWidth - 48,
		TrendLabel:  fmt.Sprintf("Commits/day · avg %.1f", mean),
		Cells:       cells,
		Pills: []smallPill{
			pill(140, "PRs created", a.CreatedPRs.Value, palette[1]),
			pill(190, "Issues created", a.CreatedIssues.Value, palette[3]),
		},
	}
	return execute("activity.svg.tmpl", vm)
}

func execute(name string, vm any) ([]byte, error) {
	var buf bytes.Buffer
	if err := cardTmpl.ExecuteTemplate(&buf, name, vm); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Package templates provides display helpers and the server-rendered
// overview page.
package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/bongona/FlowLandSteward/internal/model"
)

// FormatClock formats t as HH:MM:SS in the server's local zone.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// FormatShortClock formats t as HH:MM in the server's local zone.
func FormatShortClock(t time.Time) string {
	return t.Local().Format("15:04")
}

// FormatHour returns the local hour of t as "15h".
func FormatHour(t time.Time) string {
	return fmt.Sprintf("%dh", t.Local().Hour())
}

// FormatLongDate formats t as "January 2, 2006", or fallback when t is nil.
func FormatLongDate(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Local().Format("January 2, 2006")
}

// FormatDaysAgo returns whole days elapsed since t as "N days ago", or
// "Never" when t is nil.
func FormatDaysAgo(t *time.Time, now time.Time) string {
	if t == nil {
		return "Never"
	}
	days := int(now.Sub(*t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("%d days ago", days)
}

// FormatAge returns a coarse relative age such as "3 minutes ago".
func FormatAge(t time.Time, now time.Time) string {
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return plural(int(age.Minutes()), "minute") + " ago"
	case age < 24*time.Hour:
		return plural(int(age.Hours()), "hour") + " ago"
	default:
		return plural(int(age.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatDuration formats a duration into human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// AgentTag is the upper-case label shown next to log lines.
func AgentTag(a *model.Agent) string {
	if a == nil {
		return "SYSTEM"
	}
	if a.Kind != "" && a.Kind != model.KindOther {
		return strings.ToUpper(string(a.Kind))
	}
	words := strings.Fields(a.Name)
	if len(words) == 0 {
		return "SYSTEM"
	}
	return strings.ToUpper(words[0])
}

// AgentColor is the accent color for an agent kind.
func AgentColor(a *model.Agent) string {
	if a == nil {
		return "gray"
	}
	switch a.Kind {
	case model.KindIntegrityWatcher:
		return "green"
	case model.KindTributeSteward:
		return "blue"
	case model.KindReflexologist:
		return "purple"
	default:
		return "yellow"
	}
}

// StatusColor maps an agent status to its badge color.
func StatusColor(s model.AgentStatus) string {
	switch s {
	case model.AgentActive:
		return "green"
	case model.AgentMetering:
		return "blue"
	case model.AgentDormant:
		return "purple"
	default:
		return "gray"
	}
}

// ModeColor maps a tribute mode to its card color.
func ModeColor(m model.TributeMode) string {
	switch m {
	case model.ModeSymbolic:
		return "yellow"
	case model.ModeDonation:
		return "green"
	case model.ModeRoyalty:
		return "purple"
	default:
		return "red"
	}
}

// ProgressBarWidth returns a width percentage clamped to 0-100.
func ProgressBarWidth(pct int) int {
	return min(max(pct, 0), 100)
}

// ProgressBarClass returns CSS class based on usage percentage.
func ProgressBarClass(pct int) string {
	if pct >= 90 {
		return "bar-critical"
	}
	if pct >= 75 {
		return "bar-warning"
	}
	return "bar-ok"
}

// SparklinePolyline returns SVG polyline points for the operation counts of
// metrics, normalized to a width x height viewBox.
func SparklinePolyline(metrics []*model.SystemMetric, width, height float64) string {
	if len(metrics) == 0 {
		return ""
	}

	minVal, maxVal := metrics[0].OperationsCount, metrics[0].OperationsCount
	for _, m := range metrics[1:] {
		minVal = min(minVal, m.OperationsCount)
		maxVal = max(maxVal, m.OperationsCount)
	}
	valRange := float64(maxVal - minVal)
	if valRange == 0 {
		valRange = 1 // avoid division by zero for flat lines
	}

	var b strings.Builder
	for i, m := range metrics {
		if i > 0 {
			b.WriteByte(' ')
		}
		x := width / 2
		if len(metrics) > 1 {
			x = float64(i) / float64(len(metrics)-1) * width
		}
		y := height - float64(m.OperationsCount-minVal)/valRange*height // invert Y for SVG
		fmt.Fprintf(&b, "%.1f,%.1f", x, y)
	}
	return b.String()
}

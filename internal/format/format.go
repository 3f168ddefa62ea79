// Package format holds the pure display formatters shared by every view:
// currency/percent/multiple tiering, relative time, file sizes, and the
// backend-status to pipeline-stage mapping.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Display options set once at startup from the ui config section.
var (
	symbol     = "$"
	dateLayout = "Jan 2, 2006"
	location   *time.Location
)

// Configure overrides the shared display options. Empty or nil arguments keep
// the defaults. Call it once before any rendering; it is not safe to call
// concurrently with the formatters.
func Configure(currencySymbol, layout string, loc *time.Location) {
	if currencySymbol != "" {
		symbol = currencySymbol
	}
	if layout != "" {
		dateLayout = layout
	}
	if loc != nil {
		location = loc
	}
}

// Currency renders an amount with M/K tiering: $1.2B, $45.2M, $350K, $950.
func Currency(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s%.1fB", symbol, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", symbol, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s%.0fK", symbol, v/1_000)
	default:
		return fmt.Sprintf("%s%.0f", symbol, v)
	}
}

// CurrencyOrNA renders a nullable dollar amount, N/A when absent or zero.
func CurrencyOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return Currency(*v)
}

// Percent renders a decimal fraction as display points to one decimal place:
// 0.245 -> "24.5%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// PercentOrNA renders a nullable decimal fraction, N/A when absent or zero.
func PercentOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return Percent(*v)
}

// Multiple renders an equity multiple: 1.85 -> "1.85x".
func Multiple(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// MultipleOrNA renders a nullable equity multiple, N/A when absent or zero.
func MultipleOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return Multiple(*v)
}

// ParseCurrency converts a formatted currency string back to a number via
// suffix multiplier (M, K). Malformed or empty input parses to zero.
func ParseCurrency(s string) float64 {
	cleaned := strings.TrimSpace(strings.NewReplacer(symbol, "", "$", "", ",", "").Replace(s))
	if cleaned == "" {
		return 0
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(cleaned, "B"):
		mult = 1_000_000_000
		cleaned = cleaned[:len(cleaned)-1]
	case strings.HasSuffix(cleaned, "M"):
		mult = 1_000_000
		cleaned = cleaned[:len(cleaned)-1]
	case strings.HasSuffix(cleaned, "K"):
		mult = 1_000
		cleaned = cleaned[:len(cleaned)-1]
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n * mult
}

// ParsePercent converts a formatted percentage back to display points:
// "24.5%" -> 24.5. Malformed input parses to zero.
func ParsePercent(s string) float64 {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// RelativeTime renders how long ago t was relative to now.
func RelativeTime(t, now time.Time) string {
	hours := int(now.Sub(t).Hours())
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 7 {
		return plural(days, "day")
	}
	if days < 30 {
		return plural(days/7, "week")
	}
	if days < 365 {
		return plural(days/30, "month")
	}
	return Date(t)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Date renders an absolute date in the configured layout and timezone.
func Date(t time.Time) string {
	if location != nil {
		t = t.In(location)
	}
	return t.Format(dateLayout)
}

// FileSize renders a byte count as B/KB/MB.
func FileSize(bytes int64) string {
	switch {
	case bytes <= 0:
		return "Unknown"
	case bytes >= 1048576:
		return fmt.Sprintf("%.1f MB", float64(bytes)/1048576)
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// The six pipeline stage labels, in lifecycle order.
const (
	StageReceived     = "Received"
	StageUnderReview  = "Under Review"
	StageDueDiligence = "Due Diligence"
	StageTermSheet    = "Term Sheet"
	StageCommitted    = "Committed"
	StagePassed       = "Passed"
)

var statusToStage = map[string]string{
	"received":      StageReceived,
	"inbox":         StageReceived,
	"pending":       StageReceived,
	"screening":     StageReceived,
	"under_review":  StageUnderReview,
	"due_diligence": StageDueDiligence,
	"term_sheet":    StageTermSheet,
	"committed":     StageCommitted,
	"passed":        StagePassed,
}

// StatusToStage maps a backend lifecycle code to its display stage. Unknown or
// empty codes map to Received.
func StatusToStage(status string) string {
	if stage, ok := statusToStage[status]; ok {
		return stage
	}
	return StageReceived
}

// Stages lists the display labels in lifecycle order.
func Stages() []string {
	return []string{StageReceived, StageUnderReview, StageDueDiligence, StageTermSheet, StageCommitted, StagePassed}
}

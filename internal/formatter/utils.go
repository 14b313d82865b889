package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// getCategoryEmoji returns the indicator for a record category
func getCategoryEmoji(category common.Category) string {
	switch category {
	case common.CategoryResume:
		return emoji.GetEmoji("resume")
	case common.CategoryInterview:
		return emoji.GetEmoji("interview")
	case common.CategoryChat:
		return emoji.GetEmoji("chat")
	case common.CategoryBias:
		return emoji.GetEmoji("bias")
	default:
		return emoji.GetEmoji("help")
	}
}

// getScoreEmoji maps a 0-100 score to a traffic-light indicator
func getScoreEmoji(score float64) string {
	switch {
	case score >= 75:
		return emoji.GetEmoji("success")
	case score >= 50:
		return emoji.GetEmoji("warning")
	default:
		return emoji.GetEmoji("error")
	}
}

// createScoreBar renders a 0-100 score as an ASCII bar using go-termfmt
func createScoreBar(score float64, opts *termfmt.TerminalOptions) string {
	fraction := score / 100
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return termfmt.CreateConfidenceBar(fraction, opts)
}

// formatTimestamp formats record times, hiding zero values
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

// truncate shortens text for single-line contexts
func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	if len(s) > limit {
		return s[:limit-3] + "..."
	}
	return s
}

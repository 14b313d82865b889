package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/monitor"
)

// Report bundles everything one render pass may show: analysis records
// grouped by category, optional archive entries and optional client
// statistics. Commands fill in only the sections they produce.
type Report struct {
	GeneratedAt time.Time
	User        *common.User
	Resumes     []common.ResumeAnalysis
	Interviews  []common.InterviewAnalysis
	Chats       []common.ChatSummary
	Biases      []common.BiasDetection
	History     []history.Entry
	Stats       *monitor.Report
}

// RecordCount returns the number of analysis records in the report
func (r *Report) RecordCount() int {
	return len(r.Resumes) + len(r.Interviews) + len(r.Chats) + len(r.Biases)
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// New returns the formatter for the named output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "terminal", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

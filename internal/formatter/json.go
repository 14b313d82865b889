package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/monitor"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &jsonOutput{
		Summary:    createSummary(report),
		Resumes:    report.Resumes,
		Interviews: report.Interviews,
		Chats:      report.Chats,
		Biases:     report.Biases,
		History:    report.History,
		Stats:      report.Stats,
	}

	return json.MarshalIndent(output, "", "  ")
}

type jsonOutput struct {
	Summary    *summaryOutput             `json:"summary"`
	Resumes    []common.ResumeAnalysis    `json:"resume_matches,omitempty"`
	Interviews []common.InterviewAnalysis `json:"interview_analyses,omitempty"`
	Chats      []common.ChatSummary       `json:"chat_summaries,omitempty"`
	Biases     []common.BiasDetection     `json:"bias_reports,omitempty"`
	History    []history.Entry            `json:"history,omitempty"`
	Stats      *monitor.Report            `json:"stats,omitempty"`
}

type summaryOutput struct {
	GeneratedAt    time.Time `json:"generated_at"`
	Recruiter      string    `json:"recruiter,omitempty"`
	ResumeCount    int       `json:"resume_count"`
	InterviewCount int       `json:"interview_count"`
	ChatCount      int       `json:"chat_count"`
	BiasCount      int       `json:"bias_count"`
}

func createSummary(report *Report) *summaryOutput {
	summary := &summaryOutput{
		GeneratedAt:    report.GeneratedAt,
		ResumeCount:    len(report.Resumes),
		InterviewCount: len(report.Interviews),
		ChatCount:      len(report.Chats),
		BiasCount:      len(report.Biases),
	}
	if summary.GeneratedAt.IsZero() {
		summary.GeneratedAt = time.Now()
	}
	if report.User != nil {
		summary.Recruiter = report.User.Name
	}
	return summary
}

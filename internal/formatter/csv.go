package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// csvFormatter formats analysis records as flat CSV rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Category",
		"ID",
		"Subject",
		"Score",
		"Summary",
		"Model",
		"Created At",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	writeRow := func(record []string) error {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	}

	for _, resume := range report.Resumes {
		subject := resume.CandidateName
		if subject == "" {
			subject = resume.FileName
		}
		if err := writeRow([]string{
			"resume", resume.ID, subject,
			formatCSVScore(resume.MatchScore),
			truncate(resume.Summary, 100),
			resume.Model,
			formatCSVTime(resume.CreatedAt),
		}); err != nil {
			return nil, err
		}
	}

	for _, iv := range report.Interviews {
		if err := writeRow([]string{
			"interview", iv.ID, iv.InterviewID,
			formatCSVScore(iv.OverallScore),
			truncate(iv.Summary, 100),
			iv.Model,
			formatCSVTime(iv.CreatedAt),
		}); err != nil {
			return nil, err
		}
	}

	for _, chat := range report.Chats {
		if err := writeRow([]string{
			"chat", chat.ID, strconv.Itoa(chat.MessageCount) + " messages",
			"",
			truncate(chat.Summary, 100),
			chat.Model,
			formatCSVTime(chat.CreatedAt),
		}); err != nil {
			return nil, err
		}
	}

	for _, bias := range report.Biases {
		if err := writeRow([]string{
			"bias", bias.ID, bias.JobID,
			formatCSVScore(bias.Score),
			truncate(bias.Report, 100),
			bias.Model,
			formatCSVTime(bias.CreatedAt),
		}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func formatCSVScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

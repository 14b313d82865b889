package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/monitor"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Recruiting Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, report)
	f.writeSummaryTable(&b, report)

	if len(report.Resumes) > 0 {
		f.writeResumeSections(&b, report.Resumes)
	}
	if len(report.Interviews) > 0 {
		f.writeInterviewSections(&b, report.Interviews)
	}
	if len(report.Chats) > 0 {
		f.writeChatSections(&b, report.Chats)
	}
	if len(report.Biases) > 0 {
		f.writeBiasSections(&b, report.Biases)
	}
	if len(report.History) > 0 {
		f.writeHistoryTable(&b, report.History)
	}
	if report.Stats != nil {
		f.writeStatsTable(&b, report.Stats)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by TalentTrack*\n")

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, report *Report) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")

	if len(report.Resumes) > 0 {
		b.WriteString("- [Resume Matches](#resume-matches)\n")
	}
	if len(report.Interviews) > 0 {
		b.WriteString("- [Interview Analyses](#interview-analyses)\n")
	}
	if len(report.Chats) > 0 {
		b.WriteString("- [Chat Summaries](#chat-summaries)\n")
	}
	if len(report.Biases) > 0 {
		b.WriteString("- [Bias Reports](#bias-reports)\n")
	}
	if len(report.History) > 0 {
		b.WriteString("- [Recent Activity](#recent-activity)\n")
	}
	if report.Stats != nil {
		b.WriteString("- [Client Statistics](#client-statistics)\n")
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *Report) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	if report.User != nil && report.User.Name != "" {
		fmt.Fprintf(b, "| Recruiter | %s |\n", report.User.Name)
	}
	fmt.Fprintf(b, "| Resume Matches | %s |\n", formatNumber(len(report.Resumes)))
	fmt.Fprintf(b, "| Interview Analyses | %s |\n", formatNumber(len(report.Interviews)))
	fmt.Fprintf(b, "| Chat Summaries | %s |\n", formatNumber(len(report.Chats)))
	fmt.Fprintf(b, "| Bias Reports | %s |\n", formatNumber(len(report.Biases)))
	if report.Stats != nil {
		fmt.Fprintf(b, "| Success Rate | %.0f%% |\n", report.Stats.SuccessRate()*100)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeResumeSections(b *strings.Builder, resumes []common.ResumeAnalysis) {
	b.WriteString("## Resume Matches\n\n")

	for _, resume := range resumes {
		fmt.Fprintf(b, "### %s %s\n\n", getCategoryEmoji(common.CategoryResume), resume.Headline())

		if !resume.CreatedAt.IsZero() {
			fmt.Fprintf(b, "Analyzed: %s\n\n", formatTimestamp(resume.CreatedAt))
		}
		if resume.SkillsScore > 0 || resume.ExpScore > 0 {
			fmt.Fprintf(b, "**Scores**: match %.0f%% | skills %.0f%% | experience %.0f%%\n\n",
				resume.MatchScore, resume.SkillsScore, resume.ExpScore)
		}
		if resume.Summary != "" {
			fmt.Fprintf(b, "%s\n\n", resume.Summary)
		}
		writeMarkdownList(b, "Strengths", resume.Strengths)
		writeMarkdownList(b, "Gaps", resume.Gaps)
		writeMarkdownList(b, "Suggestions", resume.Suggestions)
	}
}

func (f *markdownFormatter) writeInterviewSections(b *strings.Builder, interviews []common.InterviewAnalysis) {
	b.WriteString("## Interview Analyses\n\n")

	for _, iv := range interviews {
		fmt.Fprintf(b, "### %s %s\n\n", getCategoryEmoji(common.CategoryInterview), iv.Headline())

		if iv.TechScore > 0 || iv.CommScore > 0 {
			fmt.Fprintf(b, "**Scores**: overall %.0f%% | technical %.0f%% | communication %.0f%%\n\n",
				iv.OverallScore, iv.TechScore, iv.CommScore)
		}
		if iv.Summary != "" {
			fmt.Fprintf(b, "%s\n\n", iv.Summary)
		}
		writeMarkdownList(b, "Strengths", iv.Strengths)
		writeMarkdownList(b, "Concerns", iv.Concerns)
		writeMarkdownList(b, "Suggestions", iv.Suggestions)
	}
}

func (f *markdownFormatter) writeChatSections(b *strings.Builder, chats []common.ChatSummary) {
	b.WriteString("## Chat Summaries\n\n")

	for _, chat := range chats {
		fmt.Fprintf(b, "### %s %s\n\n", getCategoryEmoji(common.CategoryChat), chat.Headline())
		fmt.Fprintf(b, "%s\n\n", chat.Summary)
		writeMarkdownList(b, "Key Points", chat.KeyPoints)
		writeMarkdownList(b, "Action Items", chat.ActionItems)
	}
}

func (f *markdownFormatter) writeBiasSections(b *strings.Builder, biases []common.BiasDetection) {
	b.WriteString("## Bias Reports\n\n")

	for _, bias := range biases {
		fmt.Fprintf(b, "### %s %s\n\n", getCategoryEmoji(common.CategoryBias), bias.Headline())

		if bias.Report != "" {
			fmt.Fprintf(b, "%s\n\n", bias.Report)
		}

		if len(bias.FlaggedTerms) > 0 {
			b.WriteString("| Term | Category | Severity | Suggestion |\n")
			b.WriteString("|------|----------|----------|------------|\n")
			for _, term := range bias.FlaggedTerms {
				fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
					term.Term, term.Category, term.Severity, term.Suggestion)
			}
			b.WriteString("\n")
		}
		writeMarkdownList(b, "Suggestions", bias.Suggestions)
	}
}

func (f *markdownFormatter) writeHistoryTable(b *strings.Builder, entries []history.Entry) {
	b.WriteString("## Recent Activity\n\n")

	b.WriteString("| Time | Category | Result |\n")
	b.WriteString("|------|----------|--------|\n")
	for _, entry := range entries {
		fmt.Fprintf(b, "| %s | %s | %s |\n",
			formatTimestamp(entry.CreatedAt), entry.Category, entry.Headline)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeStatsTable(b *strings.Builder, stats *monitor.Report) {
	b.WriteString("## Client Statistics\n\n")

	fmt.Fprintf(b, "**Uptime**: %s | **Calls**: %d | **Failures**: %d\n\n",
		stats.Uptime.Round(time.Second), stats.TotalCalls, stats.TotalFailures)

	b.WriteString("| Operation | Calls | Failures | Avg | Min | Max |\n")
	b.WriteString("|-----------|-------|----------|-----|-----|-----|\n")
	for _, op := range stats.Operations {
		fmt.Fprintf(b, "| %s | %d | %d | %s | %s | %s |\n",
			op.Operation, op.Count, op.Failures,
			op.AvgTime.Round(time.Millisecond),
			op.MinTime.Round(time.Millisecond),
			op.MaxTime.Round(time.Millisecond))
	}
	b.WriteString("\n")
}

// writeMarkdownList writes a titled bullet list, skipping empty lists
func writeMarkdownList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/monitor"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, report)
	f.writeOverview(&b, report)

	if len(report.Resumes) > 0 {
		f.writeResumeRanking(&b, report.Resumes)
	}
	if len(report.Interviews) > 0 {
		f.writeInterviews(&b, report.Interviews)
	}
	if len(report.Chats) > 0 {
		f.writeChatSummaries(&b, report.Chats)
	}
	if len(report.Biases) > 0 {
		f.writeBiasReports(&b, report.Biases)
	}
	if len(report.History) > 0 {
		f.writeHistory(&b, report.History)
	}
	if report.Stats != nil {
		f.writeStats(&b, report.Stats)
	}

	return []byte(b.String()), nil
}

// writeHeader writes a box-drawn header
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := "Recruiting Workspace"
	if report.User != nil && report.User.Name != "" {
		header = fmt.Sprintf("Recruiting Workspace · %s", report.User.Name)
	}
	headerLen := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeOverview writes per-category record counts as a tree
func (f *terminalFormatter) writeOverview(b *strings.Builder, report *Report) {
	symbol := emoji.GetEmoji("statistics")
	b.WriteString(symbol + " Overview\n")

	items := []termfmt.TreeItem{
		{Label: "Resume Matches", Value: formatNumber(len(report.Resumes))},
		{Label: "Interview Analyses", Value: formatNumber(len(report.Interviews))},
		{Label: "Chat Summaries", Value: formatNumber(len(report.Chats))},
		{Label: "Bias Reports", Value: formatNumber(len(report.Biases)), Last: report.Stats == nil},
	}
	if report.Stats != nil {
		items = append(items, termfmt.TreeItem{
			Label: "Success Rate",
			Value: fmt.Sprintf("%.0f%%", report.Stats.SuccessRate()*100),
			Last:  true,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeResumeRanking writes resume matches ranked by score
func (f *terminalFormatter) writeResumeRanking(b *strings.Builder, resumes []common.ResumeAnalysis) {
	symbol := emoji.GetEmoji("resume")
	b.WriteString(symbol + " Resume Matches\n")

	ranked := make([]common.ResumeAnalysis, len(resumes))
	copy(ranked, resumes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	items := make([]termfmt.TreeItem, 0, len(ranked))
	for i, resume := range ranked {
		bar := createScoreBar(resume.MatchScore, f.opts)

		var children []termfmt.TreeItem
		if resume.Summary != "" {
			children = append(children, termfmt.TreeItem{Label: truncate(resume.Summary, 100)})
		}
		if len(resume.Strengths) > 0 {
			children = append(children, termfmt.TreeItem{
				Label: "Strengths",
				Value: truncate(strings.Join(resume.Strengths, ", "), 80),
			})
		}
		if len(resume.Gaps) > 0 {
			children = append(children, termfmt.TreeItem{
				Label: "Gaps",
				Value: truncate(strings.Join(resume.Gaps, ", "), 80),
			})
		}

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s", getScoreEmoji(resume.MatchScore), resume.Headline()),
			Value:    bar,
			Children: children,
			Last:     i == len(ranked)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeInterviews writes interview analyses with score breakdowns
func (f *terminalFormatter) writeInterviews(b *strings.Builder, interviews []common.InterviewAnalysis) {
	symbol := emoji.GetEmoji("interview")
	b.WriteString(symbol + " Interview Analyses\n")

	items := make([]termfmt.TreeItem, 0, len(interviews))
	for i, iv := range interviews {
		var children []termfmt.TreeItem
		if iv.Summary != "" {
			children = append(children, termfmt.TreeItem{Label: truncate(iv.Summary, 100)})
		}
		if iv.TechScore > 0 || iv.CommScore > 0 {
			children = append(children, termfmt.TreeItem{
				Label: "Breakdown",
				Value: fmt.Sprintf("technical %.0f%% · communication %.0f%%", iv.TechScore, iv.CommScore),
			})
		}
		if len(iv.Concerns) > 0 {
			children = append(children, termfmt.TreeItem{
				Label: "Concerns",
				Value: truncate(strings.Join(iv.Concerns, ", "), 80),
			})
		}

		items = append(items, termfmt.TreeItem{
			Label:    fmt.Sprintf("%s %s", getScoreEmoji(iv.OverallScore), iv.Headline()),
			Value:    createScoreBar(iv.OverallScore, f.opts),
			Children: children,
			Last:     i == len(interviews)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeChatSummaries writes summarized conversations
func (f *terminalFormatter) writeChatSummaries(b *strings.Builder, chats []common.ChatSummary) {
	symbol := emoji.GetEmoji("chat")
	b.WriteString(symbol + " Chat Summaries\n")

	items := make([]termfmt.TreeItem, 0, len(chats))
	for i, chat := range chats {
		var children []termfmt.TreeItem
		children = append(children, termfmt.TreeItem{Label: truncate(chat.Summary, 120)})
		for _, point := range chat.KeyPoints {
			children = append(children, termfmt.TreeItem{Label: "• " + truncate(point, 100)})
		}
		if len(chat.ActionItems) > 0 {
			children = append(children, termfmt.TreeItem{
				Label: "Action Items",
				Value: truncate(strings.Join(chat.ActionItems, "; "), 100),
			})
		}

		items = append(items, termfmt.TreeItem{
			Label:    chat.Headline(),
			Value:    formatTimestamp(chat.CreatedAt),
			Children: children,
			Last:     i == len(chats)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeBiasReports writes bias findings with flagged terms
func (f *terminalFormatter) writeBiasReports(b *strings.Builder, biases []common.BiasDetection) {
	symbol := emoji.GetEmoji("bias")
	b.WriteString(symbol + " Bias Reports\n")

	items := make([]termfmt.TreeItem, 0, len(biases))
	for i, bias := range biases {
		var children []termfmt.TreeItem
		if bias.Report != "" {
			children = append(children, termfmt.TreeItem{Label: truncate(bias.Report, 120)})
		}
		for _, term := range bias.FlaggedTerms {
			label := fmt.Sprintf("%q", term.Term)
			value := term.Suggestion
			if term.Category != "" {
				label = fmt.Sprintf("%q (%s)", term.Term, term.Category)
			}
			children = append(children, termfmt.TreeItem{Label: label, Value: truncate(value, 60)})
		}

		items = append(items, termfmt.TreeItem{
			Label:    bias.Headline(),
			Value:    createScoreBar(bias.Score, f.opts),
			Children: children,
			Last:     i == len(biases)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeHistory writes recent archive entries, newest first
func (f *terminalFormatter) writeHistory(b *strings.Builder, entries []history.Entry) {
	symbol := emoji.GetEmoji("history")
	b.WriteString(symbol + " Recent Activity\n")

	maxEntries := 10
	if len(entries) < maxEntries {
		maxEntries = len(entries)
	}

	for i := 0; i < maxEntries; i++ {
		entry := entries[i]
		connector := "├─"
		if i == maxEntries-1 {
			connector = "└─"
		}
		fmt.Fprintf(b, "%s %s %s  %s\n",
			connector, getCategoryEmoji(entry.Category),
			formatTimestamp(entry.CreatedAt), entry.Headline)
	}
	b.WriteString("\n")
}

// writeStats writes per-operation client statistics
func (f *terminalFormatter) writeStats(b *strings.Builder, stats *monitor.Report) {
	symbol := emoji.GetEmoji("statistics")
	b.WriteString(symbol + " Client Statistics\n")

	items := make([]termfmt.TreeItem, 0, len(stats.Operations)+1)
	items = append(items, termfmt.TreeItem{
		Label: "Total Calls",
		Value: fmt.Sprintf("%d (%d failed)", stats.TotalCalls, stats.TotalFailures),
	})
	for i, op := range stats.Operations {
		items = append(items, termfmt.TreeItem{
			Label: op.Operation,
			Value: fmt.Sprintf("%d calls · avg %s", op.Count, op.AvgTime.Round(time.Millisecond)),
			Last:  i == len(stats.Operations)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")
}

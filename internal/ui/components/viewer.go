package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DetailSection is one titled block of a record detail screen
type DetailSection struct {
	Title string
	Lines []string
}

// DetailViewer renders a record as a stack of titled sections
type DetailViewer struct {
	Title    string
	Width    int
	Height   int
	sections []DetailSection
}

// NewDetailViewer creates a new detail viewer
func NewDetailViewer(title string, width, height int) *DetailViewer {
	return &DetailViewer{
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// AddSection appends a section to the viewer
func (d *DetailViewer) AddSection(section DetailSection) {
	d.sections = append(d.sections, section)
}

// Clear removes all sections
func (d *DetailViewer) Clear() {
	d.sections = nil
}

// Render renders the detail viewer
func (d *DetailViewer) Render() string {
	headerColor := lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	borderColor := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	titleStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(headerColor)
	bodyStyle := lipgloss.NewStyle().Foreground(bodyColor)

	var content []string
	content = append(content, titleStyle.Render(d.Title), "")

	for _, section := range d.sections {
		content = append(content, d.renderSection(section, sectionStyle, bodyStyle)...)
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(d.Width)

	return border.Render(strings.Join(content, "\n"))
}

func (d *DetailViewer) renderSection(section DetailSection, sectionStyle, bodyStyle lipgloss.Style) []string {
	lines := []string{sectionStyle.Render(section.Title)}

	for _, line := range section.Lines {
		if line == "" {
			continue
		}
		for _, wrapped := range wrapText(line, d.Width-8) {
			lines = append(lines, bodyStyle.Render("  "+wrapped))
		}
	}

	lines = append(lines, "")
	return lines
}

// wrapText wraps a line on word boundaries
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	current := ""

	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

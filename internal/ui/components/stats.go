package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title  string
	Value  string
	Status string // "success", "warning", "error", "info"
	Icon   string
	Width  int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value string) *StatsCard {
	return &StatsCard{
		Title:  title,
		Value:  value,
		Status: "info",
		Width:  18,
	}
}

// NewCountCard creates a card showing an integer count
func NewCountCard(title string, count int) *StatsCard {
	return NewStatsCard(title, strconv.Itoa(count))
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	successColor := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor := lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	borderColor := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	var valueStyle lipgloss.Style
	switch s.Status {
	case "success":
		valueStyle = lipgloss.NewStyle().Foreground(successColor)
	case "warning":
		valueStyle = lipgloss.NewStyle().Foreground(warningColor)
	case "error":
		valueStyle = lipgloss.NewStyle().Foreground(errorColor)
	case "info":
		valueStyle = lipgloss.NewStyle().Foreground(infoColor)
	default:
		valueStyle = lipgloss.NewStyle().Foreground(bodyColor)
	}

	titleStyle := lipgloss.NewStyle().Foreground(bodyColor)

	value := s.Value
	if s.Icon != "" {
		value = s.Icon + " " + value
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Bold(true).Render(value),
		titleStyle.Render(s.Title),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(s.Width).
		Align(lipgloss.Center).
		Render(content)
}

// StatsRow renders cards side by side
func StatsRow(cards ...*StatsCard) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, card.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

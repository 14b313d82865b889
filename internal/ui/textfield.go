package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// textField is a minimal single-line input. Keystrokes append to the
// value, backspace deletes, everything else is left to the caller.
type textField struct {
	label  string
	value  []rune
	secret bool
	limit  int
}

func newTextField(label string) *textField {
	return &textField{label: label, limit: 256}
}

func newSecretField(label string) *textField {
	return &textField{label: label, secret: true, limit: 256}
}

func (f *textField) String() string {
	return string(f.value)
}

func (f *textField) SetValue(s string) {
	f.value = []rune(s)
}

func (f *textField) Clear() {
	f.value = f.value[:0]
}

// HandleKey applies one keystroke. It returns false for keys the field
// does not consume, so the caller can treat them as navigation.
func (f *textField) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		if f.limit > 0 && len(f.value)+len(msg.Runes) > f.limit {
			return true
		}
		f.value = append(f.value, msg.Runes...)
		return true
	case tea.KeySpace:
		if f.limit == 0 || len(f.value) < f.limit {
			f.value = append(f.value, ' ')
		}
		return true
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
		return true
	default:
		return false
	}
}

// Render draws the field with its label, masking secret values
func (f *textField) Render(focused bool, labelStyle, valueStyle lipgloss.Style) string {
	shown := string(f.value)
	if f.secret {
		shown = strings.Repeat("•", len(f.value))
	}

	cursor := " "
	if focused {
		cursor = "▌"
	}

	return labelStyle.Render(f.label+": ") + valueStyle.Render(shown+cursor)
}

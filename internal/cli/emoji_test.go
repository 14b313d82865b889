package cli

import (
	"testing"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
)

func TestCreateScoreBar(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		emojiDisabled bool
		expected      string
	}{
		{"full score", 100, true, "[##########]"},
		{"zero score", 0, true, "[----------]"},
		{"half score", 50, true, "[#####-----]"},
		{"clamped high", 150, true, "[##########]"},
		{"clamped low", -10, true, "[----------]"},
		{"unicode bar", 70, false, "███████░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer emoji.SetEmojiDisabled(false)
			emoji.SetEmojiDisabled(tt.emojiDisabled)
			noEmoji = tt.emojiDisabled
			defer func() { noEmoji = false }()

			if got := createScoreBar(tt.score); got != tt.expected {
				t.Errorf("createScoreBar(%v) = %q, want %q", tt.score, got, tt.expected)
			}
		})
	}
}

func TestCategoryEmoji(t *testing.T) {
	noEmoji = false
	emoji.SetEmojiDisabled(false)

	for _, cat := range common.Categories() {
		if categoryEmoji(cat) == "" {
			t.Errorf("no emoji for category %q", cat)
		}
	}
	if categoryEmoji(common.Category("other")) == "" {
		t.Error("no fallback emoji for unknown category")
	}
}

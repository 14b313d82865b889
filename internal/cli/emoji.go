package cli

import (
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// categoryEmoji returns the emoji for an analysis category with
// fallback support
func categoryEmoji(category common.Category) string {
	switch category {
	case common.CategoryResume:
		return GetEmoji("resume")
	case common.CategoryInterview:
		return GetEmoji("interview")
	case common.CategoryChat:
		return GetEmoji("chat")
	case common.CategoryBias:
		return GetEmoji("bias")
	default:
		return GetEmoji("info")
	}
}

// createScoreBar renders a 0-100 score as a ten character bar with
// emoji fallback
func createScoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	barLength := int(score / 10)

	filledRune, emptyRune := '█', '░'
	if isEmojiDisabled() {
		filledRune, emptyRune = '#', '-'
	}

	filled := make([]rune, barLength)
	empty := make([]rune, 10-barLength)

	for i := range filled {
		filled[i] = filledRune
	}
	for i := range empty {
		empty[i] = emptyRune
	}

	if isEmojiDisabled() {
		return "[" + string(filled) + string(empty) + "]"
	}
	return string(filled) + string(empty)
}

package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"pending":    {"⏳", "[...]"},
	"resume":     {"📄", "[CV]"},
	"interview":  {"🎙️", "[IVW]"},
	"chat":       {"💬", "[CHT]"},
	"bias":       {"⚖️", "[BIA]"},
	"candidate":  {"🧑", "[CND]"},
	"statistics": {"📊", "[STATS]"},
	"history":    {"📋", "[HIST]"},
	"session":    {"🔑", "[KEY]"},
	"upload":     {"📤", "[UPL]"},
	"watch":      {"👀", "[WCH]"},
	"rocket":     {"🚀", "[TT]"},
	"help":       {"❓", "[?]"},
	"target":     {"🎯", "[>]"},
	"door":       {"🚪", "[EXIT]"},
	"number":     {"🔢", "[#]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}

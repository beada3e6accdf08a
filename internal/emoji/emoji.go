package emoji

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":       {"❌", "[ERR]"},
	"warning":     {"⚠️", "[WRN]"},
	"info":        {"ℹ️", "[INF]"},
	"success":     {"✅", "[OK]"},
	"query":       {"💬", "[Q]"},
	"file":        {"📄", "[FILE]"},
	"function":    {"🔧", "[FN]"},
	"entry_point": {"🚪", "[ENTRY]"},
	"explanation": {"💡", "[EXPL]"},
	"summary":     {"📋", "[SUM]"},
	"statistics":  {"📊", "[STATS]"},
	"analysis":    {"🔍", "[ANL]"},
	"rocket":      {"🚀", "[RUN]"},
	"watch":       {"👀", "[WATCH]"},
	"upload":      {"📤", "[UP]"},
	"save":        {"💾", "[SAVE]"},
	"spinner":     {"⏳", "[...]"},
	"help":        {"❓", "[?]"},
	"fan_in":      {"📥", "[IN]"},
	"fan_out":     {"📨", "[OUT]"},
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

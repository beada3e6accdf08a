package cli

import (
	"github.com/yildizm/CodeSum/internal/emoji"
	"github.com/yildizm/CodeSum/internal/explainer"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetStateEmoji returns emoji for submission states with fallback support
func GetStateEmoji(state explainer.State) string {
	switch state {
	case explainer.StateSucceeded:
		return GetEmoji("success")
	case explainer.StateFailed:
		return GetEmoji("error")
	case explainer.StateLoading:
		return GetEmoji("spinner")
	default:
		return GetEmoji("info")
	}
}

// GetFunctionEmoji returns emoji for functions, marking entry points
func GetFunctionEmoji(fn *explainer.FunctionInfo) string {
	if fn.IsEntryPoint {
		return GetEmoji("entry_point")
	}
	return GetEmoji("function")
}

// CreateShareBar creates an ASCII share bar with emoji fallback
func CreateShareBar(share float64) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}

	barLength := int(share * 10) // 10 character bar

	if isEmojiDisabled() {
		filled := make([]rune, barLength)
		empty := make([]rune, 10-barLength)

		for i := range filled {
			filled[i] = '#'
		}
		for i := range empty {
			empty[i] = '-'
		}

		return "[" + string(filled) + string(empty) + "]"
	}

	filled := make([]rune, barLength)
	empty := make([]rune, 10-barLength)

	for i := range filled {
		filled[i] = '█'
	}
	for i := range empty {
		empty[i] = '░'
	}

	return string(filled) + string(empty)
}

package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled is switched off by --no-color
var EmojiEnabled = true

var terminalEmoji = emojiTerminal(runtime.GOOS, os.Getenv)

// emojiTerminal reports whether error boxes may carry emoji on this terminal.
// Legacy cmd and powershell sessions on windows set SESSIONNAME and render
// them as boxes, windows terminal does not set it.
func emojiTerminal(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return true
	}
	return getenv("SESSIONNAME") == ""
}

// Emoji returns e when error output may use emoji, otherwise an empty string
func Emoji(e string) string {
	if terminalEmoji && EmojiEnabled {
		return e
	}
	return ""
}

package output

import (
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // Default fallback width
	}
	return width
}

func getTerminalHeight() int {
	height, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		return 24 // Default fallback height
	}
	return height
}

// truncateText clips text to the terminal width, accounting for indent.
func truncateText(text string, indent int) string {
	maxWidth := getTerminalWidth() - indent - 2
	if maxWidth <= 10 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxWidth-1]) + "…"
}

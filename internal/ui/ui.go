package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Key = "\U0001F511" // 🔑

var emoji = true

// SetEmoji toggles emoji markers. Without emoji, ASCII markers are used.
func SetEmoji(enabled bool) { emoji = enabled }

// SetColor toggles color output globally. NO_COLOR is honored by fatih/color
// regardless of this setting.
func SetColor(enabled bool) {
	if !enabled {
		color.NoColor = true
	}
}

// SuccessMark is the marker printed before a success message.
func SuccessMark() string {
	if emoji {
		return "✅"
	}
	return "[ok]"
}

// FailureMark is the marker printed before an error message.
func FailureMark() string {
	if emoji {
		return "❌"
	}
	return "[error]"
}

// Banner prints the fastkey banner.
func Banner(w io.Writer, subtitle string) {
	mark := Key + " "
	if !emoji {
		mark = ""
	}
	fmt.Fprintf(w, "%s%s — %s\n\n", mark, Brand.Sprint("fastkey"), subtitle)
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	fmt.Fprintln(w, Subtle.Sprint(strings.TrimRight(headerLine, " ")))
	fmt.Fprintln(w, Subtle.Sprint(strings.TrimRight(sepLine, " ")))

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinIsTerminal reports whether in is an interactive terminal.
func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ask prompts for a single line when in is a terminal. It returns "" when
// input is not interactive.
func ask(in io.Reader, out io.Writer, label string) string {
	if !stdinIsTerminal(in) {
		return ""
	}
	fmt.Fprintf(out, "  %s: ", label)
	value, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(value)
}

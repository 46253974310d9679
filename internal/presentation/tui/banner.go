package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner for Rewind to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Teal to blue gradient
	lines := []struct {
		text  string
		color string
	}{
		{"                      _           _ ", "#2dd4bf"},
		{"  _ __ _____      __ (_)_ __   __| |", "#22d3ee"},
		{" | '__/ _ \\ \\ /\\ / / | | '_ \\ / _` |", "#38bdf8"},
		{" | | |  __/\\ V  V /  | | | | | (_| |", "#60a5fa"},
		{" |_|  \\___| \\_/\\_/   |_|_| |_|\\__,_|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Disclaimer is shown before every interactive session.
const Disclaimer = "Disclaimer: This program is not a substitute for professional medical advice.\n" +
	"Please consult a doctor for a proper diagnosis."

// PrintBanner writes the program banner and the medical disclaimer to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	// Teal to green, one shade per line
	lines := []struct{ text, color string }{
		{"      _ _             _                 ", "#22d3ee"},
		{"   __| (_) __ _  __ _| |_ _ __ ___  ___ ", "#2dd4bf"},
		{"  / _` | |/ _` |/ _` | __| '__/ _ \\/ _ \\", "#34d399"},
		{" | (_| | | (_| | (_| | |_| | |  __/  __/", "#4ade80"},
		{"  \\__,_|_|\\__,_|\\__, |\\__|_|  \\___|\\___|", "#a3e635"},
		{"                |___/                   ", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String(Disclaimer).Foreground(p.Color("#facc15")))
	fmt.Fprintln(w)
}

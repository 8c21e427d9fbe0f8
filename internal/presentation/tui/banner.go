package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"   __ _                        _     _ ", "#34d399"},
	{"  / _| | _____      ____ _ _ __(_) __| |", "#2dd4bf"},
	{" | |_| |/ _ \\ \\ /\\ / / _` | '__| |/ _` |", "#22d3ee"},
	{" |  _| | (_) \\ V  V / (_| | |  | | (_| |", "#38bdf8"},
	{" |_| |_|\\___/ \\_/\\_/ \\__, |_|  |_|\\__,_|", "#60a5fa"},
	{"                     |___/              ", "#818cf8"},
}

// PrintBanner writes the flowgrid banner to w, coloured when w supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status formats a one-line status message, green for success and red
// otherwise.
func Status(w io.Writer, ok bool, msg string) string {
	out := termenv.NewOutput(w)
	color := "#22c55e"
	mark := "OK"
	if !ok {
		color = "#ef4444"
		mark = "FAIL"
	}
	return out.String(mark).Bold().Foreground(out.Color(color)).String() + " " + msg
}

// Command trackdna decodes an audio file and prints its derived musical
// descriptors: tempo, first downbeat, key (with Camelot alias) and a banded
// waveform summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deckgrid/trackdna/analysis"
	"github.com/deckgrid/trackdna/decode"
	"github.com/deckgrid/trackdna/logging"
	"github.com/deckgrid/trackdna/waveform"
)

var (
	pixelWidth = flag.Int("width", waveform.DefaultPixelWidth, "waveform pixel width")
	jsonOut    = flag.Bool("json", false, "emit the full analysis as JSON")
	verbose    = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trackdna [-width N] [-json] [-v] <audio file>")
		os.Exit(2)
	}

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	if err := run(flag.Arg(0)); err != nil {
		logging.Fatal(err, "analysis failed")
	}
}

func run(filename string) error {
	ctx := context.Background()

	buf, err := decode.NewDecoder(nil).DecodeFile(ctx, filename)
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(&analysis.Config{PixelWidth: *pixelWidth})
	result, err := analyzer.Analyze(ctx, buf)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(filename, result)
	return nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	fileStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func printSummary(filename string, result *analysis.Result) {
	fmt.Println(fileStyle.Render(filename))
	row("tempo", fmt.Sprintf("%d BPM", result.BPM))
	row("downbeat", fmt.Sprintf("%.3f s", result.DownbeatSeconds))
	row("key", fmt.Sprintf("%s %s (%s)", result.Key.PitchClass, result.Key.Scale, result.Key.Camelot))
	row("duration", fmt.Sprintf("%.1f s", result.Duration.Seconds()))
	fmt.Println(renderStrip(result.Waveform, 64))
}

func row(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}

// renderStrip draws a coarse color strip of the waveform, one block rune per
// column, downsampling the per-pixel segments to the given number of columns.
func renderStrip(segments []waveform.Segment, columns int) string {
	if len(segments) == 0 || columns <= 0 {
		return ""
	}
	if columns > len(segments) {
		columns = len(segments)
	}

	var sb strings.Builder
	for col := 0; col < columns; col++ {
		s := segments[col*len(segments)/columns]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", s.R, s.G, s.B)))
		sb.WriteString(style.Render("█"))
	}
	return sb.String()
}

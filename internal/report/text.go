package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/stats"
)

// Banner frames every section of the text report.
const Banner = "*************************"

// TextRenderer writes the plain-text console report.
//
// Layout:
//
//	<load ms> ms
//
//	*************************
//	FIFA 20:
//	*************************
//	Position stats:
//	ST:     2581     14.1%
//	*************************
//	Age stats:
//	*************************
//	...
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (TextRenderer) Render(w io.Writer, run *Run) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d ms\n\n", run.LoadDuration.Milliseconds())
	for _, ds := range run.Datasets {
		writeDataset(bw, ds)
	}
	return bw.Flush()
}

// WriteDataset writes a single dataset block in the text layout.
func WriteDataset(w io.Writer, ds Dataset) error {
	bw := bufio.NewWriter(w)
	writeDataset(bw, ds)
	return bw.Flush()
}

func writeDataset(w *bufio.Writer, ds Dataset) {
	fmt.Fprintf(w, "%s\n%s:\n%s\n", Banner, ds.Name, Banner)
	if ds.LoadError != "" {
		fmt.Fprintf(w, "load failed: %s\n", ds.LoadError)
	}

	fmt.Fprintln(w, "Position stats: ")
	writeShares(w, ds.Positions)

	section(w, "Age stats: ")
	writeShares(w, ds.Ages)

	section(w, "Overall stats: ")
	writeShares(w, ds.Overalls)

	section(w, "Highest and lowest age: ")
	writeExtremes(w, ds.AgeExtremes, func(p roster.Player) int { return p.Age })

	section(w, "Highest and lowest overall: ")
	writeExtremes(w, ds.OverallExtremes, func(p roster.Player) int { return p.Overall })

	section(w, "Country stats: ")
	if ds.Countries.Valid {
		fmt.Fprintf(w, "%s %d\n", ds.Countries.Most.Nationality, ds.Countries.Most.Count)
		fmt.Fprintf(w, "%s %d\n", ds.Countries.Fewest.Nationality, ds.Countries.Fewest.Count)
	}
	fmt.Fprintln(w)
}

func section(w *bufio.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n%s\n", Banner, title, Banner)
}

func writeShares(w *bufio.Writer, shares []stats.Share) {
	for _, s := range shares {
		fmt.Fprintf(w, "%s:     %d     %s%%\n", s.Label, s.Count, FormatPercent(s.Percent))
	}
}

// writeExtremes prints the lowest group first, then the highest group.
func writeExtremes(w *bufio.Writer, e stats.Extremes, value func(roster.Player) int) {
	for _, p := range e.Lowest {
		fmt.Fprintf(w, "%s %d\n", p.Name, value(p))
	}
	for _, p := range e.Highest {
		fmt.Fprintf(w, "%s %d\n", p.Name, value(p))
	}
}

// FormatPercent renders a percentage with six significant digits and no
// trailing zeros: 66.6667, 50, 0.123457.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.6g", float32(p))
}

package report

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/stats"
)

// HTMLRenderer renders the run as a standalone HTML page.
type HTMLRenderer struct{}

func (HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLRenderer) Render(w io.Writer, run *Run) error {
	return RunPage(run).Render(context.Background(), w)
}

// RunPage is a full page listing every dataset of run.
func RunPage(run *Run) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := bufio.NewWriter(w)
		pageOpen(bw, "Player statistics")
		fmt.Fprintf(bw, "<p class=\"meta\">run %s &middot; loaded in %d ms</p>\n",
			templ.EscapeString(run.ID), run.LoadDuration.Milliseconds())
		for _, ds := range run.Datasets {
			datasetSection(bw, ds)
		}
		pageClose(bw)
		return bw.Flush()
	})
}

// DatasetPage is a full page for a single dataset.
func DatasetPage(ds Dataset) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bw := bufio.NewWriter(w)
		pageOpen(bw, ds.Name)
		datasetSection(bw, ds)
		pageClose(bw)
		return bw.Flush()
	})
}

// ErrorAlert is a small fragment describing a failure.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"error\" role=\"alert\"><strong>%s</strong> <span>%s</span> <code>%s</code></div>\n",
			templ.EscapeString(message), templ.EscapeString(action), templ.EscapeString(code))
		return err
	})
}

func pageOpen(w *bufio.Writer, title string) {
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", templ.EscapeString(title))
	w.WriteString("<style>body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse;margin-bottom:1rem}td,th{border:1px solid #ccc;padding:.25rem .5rem}td.num{text-align:right}.error{color:#a00}</style>\n")
	w.WriteString("</head>\n<body>\n")
}

func pageClose(w *bufio.Writer) {
	w.WriteString("</body>\n</html>\n")
}

func datasetSection(w *bufio.Writer, ds Dataset) {
	fmt.Fprintf(w, "<section>\n<h2>%s</h2>\n", templ.EscapeString(ds.Name))
	fmt.Fprintf(w, "<p class=\"meta\">%s &middot; %d players</p>\n", templ.EscapeString(ds.Path), ds.Players)
	if ds.LoadError != "" {
		fmt.Fprintf(w, "<p class=\"error\">load failed: %s</p>\n", templ.EscapeString(ds.LoadError))
	}

	shareTable(w, "Position stats", ds.Positions)
	shareTable(w, "Age stats", ds.Ages)
	shareTable(w, "Overall stats", ds.Overalls)
	extremesTable(w, "Highest and lowest age", ds.AgeExtremes, func(p roster.Player) int { return p.Age })
	extremesTable(w, "Highest and lowest overall", ds.OverallExtremes, func(p roster.Player) int { return p.Overall })

	w.WriteString("<h3>Country stats</h3>\n")
	if ds.Countries.Valid {
		w.WriteString("<table>\n")
		fmt.Fprintf(w, "<tr><th>most</th><td>%s</td><td class=\"num\">%d</td></tr>\n",
			templ.EscapeString(ds.Countries.Most.Nationality), ds.Countries.Most.Count)
		fmt.Fprintf(w, "<tr><th>fewest</th><td>%s</td><td class=\"num\">%d</td></tr>\n",
			templ.EscapeString(ds.Countries.Fewest.Nationality), ds.Countries.Fewest.Count)
		w.WriteString("</table>\n")
	}
	w.WriteString("</section>\n")
}

func shareTable(w *bufio.Writer, title string, shares []stats.Share) {
	fmt.Fprintf(w, "<h3>%s</h3>\n<table>\n<tr><th>bucket</th><th>count</th><th>%%</th></tr>\n", templ.EscapeString(title))
	for _, s := range shares {
		fmt.Fprintf(w, "<tr><td>%s</td><td class=\"num\">%d</td><td class=\"num\">%s</td></tr>\n",
			templ.EscapeString(s.Label), s.Count, FormatPercent(s.Percent))
	}
	w.WriteString("</table>\n")
}

func extremesTable(w *bufio.Writer, title string, e stats.Extremes, value func(roster.Player) int) {
	fmt.Fprintf(w, "<h3>%s</h3>\n<table>\n", templ.EscapeString(title))
	for _, p := range e.Lowest {
		fmt.Fprintf(w, "<tr><th>lowest</th><td>%s</td><td class=\"num\">%d</td></tr>\n", templ.EscapeString(p.Name), value(p))
	}
	for _, p := range e.Highest {
		fmt.Fprintf(w, "<tr><th>highest</th><td>%s</td><td class=\"num\">%d</td></tr>\n", templ.EscapeString(p.Name), value(p))
	}
	w.WriteString("</table>\n")
}

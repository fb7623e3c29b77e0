// Package roster maps loaded table rows to Player records.
//
// Columns are found by fixed, named offsets ([Layout]) rather than by
// header names; FIFA exports carry their header in the first row but the
// extraction does not read it.
package roster

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Player is one row of a seasonal dataset.
type Player struct {
	Name        string `json:"name" yaml:"name"`
	Position    string `json:"position" yaml:"position"`
	Age         int    `json:"age" yaml:"age"`
	Overall     int    `json:"overall" yaml:"overall"`
	Nationality string `json:"nationality" yaml:"nationality"`
}

// CellReader is the part of a loaded table Extract needs.
// Satisfied by *tableload.Table.
type CellReader interface {
	Cell(column, row int) string
	NumLines() int
}

// Layout names the 1-based column of each Player field and the rows that
// hold player data.
type Layout struct {
	Name        int
	Age         int
	Nationality int
	Overall     int
	Position    int

	// FirstRow is the 1-based row of the first player.
	FirstRow int

	// IncludeLastRow reads the table's final row too. By default the last
	// row is left out.
	IncludeLastRow bool
}

// DefaultLayout returns the FIFA official-data column layout: two header
// rows skipped, final row excluded.
func DefaultLayout() Layout {
	return Layout{
		Name:        2,
		Age:         3,
		Nationality: 5,
		Overall:     7,
		Position:    62,
		FirstRow:    3,
	}
}

// Validate checks that every offset is a usable 1-based index.
func (l Layout) Validate() error {
	cols := []struct {
		name string
		col  int
	}{
		{"name", l.Name},
		{"age", l.Age},
		{"nationality", l.Nationality},
		{"overall", l.Overall},
		{"position", l.Position},
	}
	var errs []string
	for _, c := range cols {
		if c.col < 1 {
			errs = append(errs, c.name+" column must be >= 1, got "+strconv.Itoa(c.col))
		}
	}
	if l.FirstRow < 1 {
		errs = append(errs, "first row must be >= 1, got "+strconv.Itoa(l.FirstRow))
	}
	if len(errs) > 0 {
		return errors.Newf("invalid layout: %s", strings.Join(errs, "; "))
	}
	return nil
}

// lastRow returns the final 1-based row Extract reads from t.
func (l Layout) lastRow(t CellReader) int {
	if l.IncludeLastRow {
		return t.NumLines()
	}
	return t.NumLines() - 1
}

// Extract reads players from t using layout. A non-integer age or overall
// aborts the whole extraction with a *FieldConversionFailure; no partial
// list is returned.
func Extract(t CellReader, layout Layout) ([]Player, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	last := layout.lastRow(t)
	if last < layout.FirstRow {
		return []Player{}, nil
	}

	players := make([]Player, 0, last-layout.FirstRow+1)
	for row := layout.FirstRow; row <= last; row++ {
		age, err := cellInt(t, "age", layout.Age, row)
		if err != nil {
			return nil, err
		}
		overall, err := cellInt(t, "overall", layout.Overall, row)
		if err != nil {
			return nil, err
		}

		players = append(players, Player{
			Name:        t.Cell(layout.Name, row),
			Position:    t.Cell(layout.Position, row),
			Age:         age,
			Overall:     overall,
			Nationality: t.Cell(layout.Nationality, row),
		})
	}
	return players, nil
}

func cellInt(t CellReader, field string, column, row int) (int, error) {
	raw := t.Cell(column, row)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldConversionFailure{
			Field:  field,
			Column: column,
			Row:    row,
			Value:  raw,
			Err:    errors.WithStack(err),
		}
	}
	return n, nil
}

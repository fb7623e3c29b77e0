// Package report assembles per-dataset statistics into a printable run
// report and renders it as text, JSON, YAML, or HTML.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/fifastats/internal/roster"
	"github.com/JonMunkholm/fifastats/internal/stats"
	"github.com/JonMunkholm/fifastats/internal/tableload"
)

// Dataset is the full statistics report for one input file.
type Dataset struct {
	Name      string          `json:"name" yaml:"name"`
	Path      string          `json:"path" yaml:"path"`
	Shape     tableload.Shape `json:"shape" yaml:"shape"`
	Players   int             `json:"players" yaml:"players"`
	LoadError string          `json:"load_error,omitempty" yaml:"load_error,omitempty"`

	Positions       []stats.Share         `json:"positions" yaml:"positions"`
	Ages            []stats.Share         `json:"ages" yaml:"ages"`
	Overalls        []stats.Share         `json:"overalls" yaml:"overalls"`
	AgeExtremes     stats.Extremes        `json:"age_extremes" yaml:"age_extremes"`
	OverallExtremes stats.Extremes        `json:"overall_extremes" yaml:"overall_extremes"`
	Countries       stats.CountryExtremes `json:"countries" yaml:"countries"`
}

// Build runs every statistic over players.
func Build(name, path string, players []roster.Player) Dataset {
	return Dataset{
		Name:            name,
		Path:            path,
		Players:         len(players),
		Positions:       stats.PositionStats(players),
		Ages:            stats.AgeStats(players),
		Overalls:        stats.OverallStats(players),
		AgeExtremes:     stats.AgeExtremes(players),
		OverallExtremes: stats.OverallExtremes(players),
		Countries:       stats.CountryStats(players),
	}
}

// Run is one invocation over all configured datasets.
type Run struct {
	ID           string        `json:"id" yaml:"id"`
	StartedAt    time.Time     `json:"started_at" yaml:"started_at"`
	LoadDuration time.Duration `json:"-" yaml:"-"`
	LoadMillis   int64         `json:"load_ms" yaml:"load_ms"`
	Datasets     []Dataset     `json:"datasets" yaml:"datasets"`
}

// NewRun starts a run record with a fresh ID.
func NewRun(startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Datasets:  []Dataset{},
	}
}

// SetLoadDuration records the time spent loading and extracting.
func (r *Run) SetLoadDuration(d time.Duration) {
	r.LoadDuration = d
	r.LoadMillis = d.Milliseconds()
}

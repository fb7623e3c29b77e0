package stats

import (
	"math"
	"sort"

	"github.com/JonMunkholm/fifastats/internal/roster"
)

// Extremes lists every player tied at the lowest and at the highest value
// of one field.
type Extremes struct {
	Lowest  []roster.Player `json:"lowest" yaml:"lowest"`
	Highest []roster.Player `json:"highest" yaml:"highest"`
}

// NationCount is a nationality and its player count.
type NationCount struct {
	Nationality string `json:"nationality" yaml:"nationality"`
	Count       int    `json:"count" yaml:"count"`
}

// CountryExtremes holds the most and least represented nationalities.
// Valid is false when there were no players.
type CountryExtremes struct {
	Most   NationCount `json:"most" yaml:"most"`
	Fewest NationCount `json:"fewest" yaml:"fewest"`
	Valid  bool        `json:"valid" yaml:"valid"`
}

// AgeExtremes returns the youngest and oldest players.
func AgeExtremes(players []roster.Player) Extremes {
	return extremes(players, func(p roster.Player) int { return p.Age })
}

// OverallExtremes returns the lowest and highest rated players.
func OverallExtremes(players []roster.Player) Extremes {
	return extremes(players, func(p roster.Player) int { return p.Overall })
}

// extremes sorts a copy of players ascending by value. Lowest keeps sorted
// order; Highest is listed from the end of the sorted copy backwards.
func extremes(players []roster.Player, value func(roster.Player) int) Extremes {
	out := Extremes{Lowest: []roster.Player{}, Highest: []roster.Player{}}
	if len(players) == 0 {
		return out
	}

	sorted := make([]roster.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i]) < value(sorted[j])
	})

	lowest := value(sorted[0])
	for i := 0; i < len(sorted) && value(sorted[i]) == lowest; i++ {
		out.Lowest = append(out.Lowest, sorted[i])
	}

	highest := value(sorted[len(sorted)-1])
	for i := len(sorted) - 1; i >= 0 && value(sorted[i]) == highest; i-- {
		out.Highest = append(out.Highest, sorted[i])
	}
	return out
}

// CountryStats finds the nationality with the most players and the one
// with the fewest. Nationalities are scanned in ascending name order and
// the first one found wins a tie.
func CountryStats(players []roster.Player) CountryExtremes {
	counts := make(map[string]int)
	for _, p := range players {
		counts[p.Nationality]++
	}
	if len(counts) == 0 {
		return CountryExtremes{}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	most := NationCount{Count: 0}
	fewest := NationCount{Count: math.MaxInt}
	for _, name := range names {
		n := counts[name]
		if n > most.Count {
			most = NationCount{Nationality: name, Count: n}
		}
		if n < fewest.Count {
			fewest = NationCount{Nationality: name, Count: n}
		}
	}
	return CountryExtremes{Most: most, Fewest: fewest, Valid: true}
}

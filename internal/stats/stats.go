// Package stats computes descriptive statistics over player lists.
//
// Every function is a pure reducer: it never modifies its input and
// returns an empty (non-nil) result for an empty input.
package stats

import (
	"sort"

	"github.com/JonMunkholm/fifastats/internal/roster"
)

// Share is one histogram entry.
type Share struct {
	Label   string  `json:"label" yaml:"label"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Bucket is a half-open range [Min, Max). Max == 0 leaves it unbounded.
type Bucket struct {
	Label string
	Min   int
	Max   int
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v int) bool {
	if v < b.Min {
		return false
	}
	return b.Max == 0 || v < b.Max
}

// AgeBuckets are the age brackets. Ages 20 and 24 fall between brackets
// and are not counted.
var AgeBuckets = []Bucket{
	{Label: "16-20", Min: 16, Max: 20},
	{Label: "21-24", Min: 21, Max: 24},
	{Label: "25-28", Min: 25, Max: 29},
	{Label: "29-32", Min: 29, Max: 33},
	{Label: "33+", Min: 33},
}

// OverallBuckets are the overall-rating brackets. Ratings below 47 are
// not counted.
var OverallBuckets = []Bucket{
	{Label: "47-58", Min: 47, Max: 58},
	{Label: "58-63", Min: 58, Max: 63},
	{Label: "63-66", Min: 63, Max: 67},
	{Label: "67-72", Min: 67, Max: 73},
	{Label: "73-79", Min: 73, Max: 80},
	{Label: "80-83", Min: 80, Max: 84},
	{Label: "84-94", Min: 84, Max: 95},
	{Label: "95+", Min: 95},
}

// PositionStats counts players per position, most common first. Equal
// counts keep ascending position order.
func PositionStats(players []roster.Player) []Share {
	counts := make(map[string]int)
	for _, p := range players {
		counts[p.Position]++
	}

	shares := sharesByLabel(counts)
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// AgeStats buckets players by age. Only populated buckets are returned,
// in ascending label order.
func AgeStats(players []roster.Player) []Share {
	return bucketize(players, AgeBuckets, func(p roster.Player) int { return p.Age })
}

// OverallStats buckets players by overall rating. Only populated buckets
// are returned, in ascending label order.
func OverallStats(players []roster.Player) []Share {
	return bucketize(players, OverallBuckets, func(p roster.Player) int { return p.Overall })
}

// Total sums the counts of shares.
func Total(shares []Share) int {
	sum := 0
	for _, s := range shares {
		sum += s.Count
	}
	return sum
}

func bucketize(players []roster.Player, buckets []Bucket, value func(roster.Player) int) []Share {
	counts := make(map[string]int)
	for _, p := range players {
		v := value(p)
		for _, b := range buckets {
			if b.Contains(v) {
				counts[b.Label]++
				break
			}
		}
	}
	return sharesByLabel(counts)
}

// sharesByLabel turns counts into shares sorted by label, with percentages
// of the summed counts.
func sharesByLabel(counts map[string]int) []Share {
	labels := make([]string, 0, len(counts))
	sum := 0
	for label, n := range counts {
		labels = append(labels, label)
		sum += n
	}
	sort.Strings(labels)

	shares := make([]Share, 0, len(labels))
	if sum == 0 {
		return shares
	}
	for _, label := range labels {
		n := counts[label]
		shares = append(shares, Share{
			Label:   label,
			Count:   n,
			Percent: float64(n) / float64(sum) * 100,
		})
	}
	return shares
}

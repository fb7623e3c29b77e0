package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fifastats/internal/roster"
)

func names(players []roster.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func TestAgeExtremes(t *testing.T) {
	players := []roster.Player{
		player("thirty", "ST", 30, 60, "X"),
		player("first25", "ST", 25, 60, "X"),
		player("second25", "ST", 25, 60, "X"),
	}

	got := AgeExtremes(players)
	assert.Equal(t, []string{"first25", "second25"}, names(got.Lowest))
	assert.Equal(t, []string{"thirty"}, names(got.Highest))
}

func TestAgeExtremes_TiesEnumerated(t *testing.T) {
	players := []roster.Player{
		player("a", "ST", 20, 60, "X"),
		player("b", "ST", 20, 60, "X"),
		player("c", "ST", 30, 60, "X"),
		player("d", "ST", 15, 60, "X"),
		player("e", "ST", 30, 60, "X"),
	}

	got := AgeExtremes(players)
	assert.Equal(t, []string{"d"}, names(got.Lowest))
	// Highest is read from the end of the sorted copy backwards.
	assert.Equal(t, []string{"e", "c"}, names(got.Highest))
}

func TestExtremes_AllEqual(t *testing.T) {
	players := []roster.Player{
		player("a", "ST", 22, 70, "X"),
		player("b", "ST", 22, 70, "X"),
	}

	got := OverallExtremes(players)
	assert.Len(t, got.Lowest, 2)
	assert.Len(t, got.Highest, 2)
}

func TestOverallExtremes(t *testing.T) {
	players := []roster.Player{
		player("low", "ST", 22, 48, "X"),
		player("mid", "ST", 22, 70, "X"),
		player("top", "ST", 22, 94, "X"),
	}

	got := OverallExtremes(players)
	assert.Equal(t, []string{"low"}, names(got.Lowest))
	assert.Equal(t, []string{"top"}, names(got.Highest))
}

func TestExtremes_Empty(t *testing.T) {
	got := AgeExtremes(nil)
	assert.NotNil(t, got.Lowest)
	assert.NotNil(t, got.Highest)
	assert.Empty(t, got.Lowest)
	assert.Empty(t, got.Highest)
}

func TestCountryStats(t *testing.T) {
	players := []roster.Player{
		player("a", "ST", 22, 70, "England"),
		player("b", "ST", 22, 70, "Spain"),
		player("c", "ST", 22, 70, "England"),
		player("d", "ST", 22, 70, "Brazil"),
		player("e", "ST", 22, 70, "Spain"),
		player("f", "ST", 22, 70, "Angola"),
	}

	got := CountryStats(players)
	require.True(t, got.Valid)
	// England and Spain tie at 2; England comes first alphabetically.
	assert.Equal(t, NationCount{Nationality: "England", Count: 2}, got.Most)
	// Angola and Brazil tie at 1; Angola comes first.
	assert.Equal(t, NationCount{Nationality: "Angola", Count: 1}, got.Fewest)
}

func TestCountryStats_Single(t *testing.T) {
	got := CountryStats([]roster.Player{player("a", "ST", 22, 70, "Wales")})
	require.True(t, got.Valid)
	assert.Equal(t, got.Most, got.Fewest)
}

func TestCountryStats_Empty(t *testing.T) {
	got := CountryStats(nil)
	assert.False(t, got.Valid)
}

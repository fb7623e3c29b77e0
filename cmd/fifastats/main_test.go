package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/fifastats/internal/roster"
)

func playerLine(name, age, nation, overall, pos string) string {
	fields := make([]string, 62)
	fields[1] = name
	fields[2] = age
	fields[4] = nation
	fields[6] = overall
	fields[61] = pos
	return strings.Join(fields, ",")
}

func writeDataset(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	lines := append([]string{"ID,Name,Age", "header 2"}, rows...)
	lines = append(lines, "trailer")
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"conversion", &roster.FieldConversionFailure{Field: "age"}, ExitConversionFailed},
		{"wrapped conversion", errors.Wrap(&roster.FieldConversionFailure{Field: "overall"}, "dataset"), ExitConversionFailed},
		{"other", errors.New("config error"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootRunsTextReport(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "FIFA21_official_data.csv",
		playerLine("A", "25", "Spain", "80", "ST"),
		playerLine("B", "30", "France", "70", "GK"),
	)

	out, err := runCLI(t, path)
	require.NoError(t, err)

	assert.Regexp(t, `^\d+ ms\n\n`, out)
	assert.Contains(t, out, "FIFA 21:")
	assert.Contains(t, out, "Position stats: \n")
	assert.Contains(t, out, "ST:     1     50%")
	assert.Contains(t, out, "Country stats: ")
}

func TestReportJSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "players.csv", playerLine("A", "25", "Spain", "80", "ST"))

	out, err := runCLI(t, "report", "--format", "json", path)
	require.NoError(t, err)

	var decoded struct {
		Datasets []struct {
			Name    string `json:"name"`
			Players int    `json:"players"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Datasets, 1)
	assert.Equal(t, "players", decoded.Datasets[0].Name)
	assert.Equal(t, 1, decoded.Datasets[0].Players)
}

func TestReportMissingFileStillPrints(t *testing.T) {
	dir := t.TempDir()
	good := writeDataset(t, dir, "FIFA20.csv", playerLine("A", "25", "Spain", "80", "ST"))

	out, err := runCLI(t, good, filepath.Join(dir, "FIFA22.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "FIFA 20:")
	assert.Contains(t, out, "FIFA 22:")
	assert.Contains(t, out, "load failed:")
}

func TestReportConversionFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, "bad.csv", playerLine("A", "n/a", "Spain", "80", "ST"))

	out, err := runCLI(t, path)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, ExitConversionFailed, exitCode(err))
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := runCLI(t, "--format", "xml", "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_FORMAT")
	assert.Equal(t, ExitError, exitCode(err))
}

func TestServeRejectsArgs(t *testing.T) {
	_, err := runCLI(t, "serve", "extra")
	require.Error(t, err)
}

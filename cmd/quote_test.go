package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeasonFile = `
[season]
name = "2026 Dove Season"
start = 2026-09-01
end = 2026-11-30
weekday_rate = 125
add_on_rate_per_day = 500
max_capacity_per_day = 100

[season.weekend_rates]
single_day = 200
two_consecutive_days = 350
three_day_combo = 450
`

func runQuote(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "season.toml")
	require.NoError(t, os.WriteFile(path, []byte(testSeasonFile), 0o600))

	var out bytes.Buffer
	cmd := quoteCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--season-file", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCmd_Table(t *testing.T) {
	out, err := runQuote(t, "--dates", "2026-10-18,2026-10-16,2026-10-17", "--party", "2", "--add-on", "2026-10-17")

	require.NoError(t, err)
	assert.Contains(t, out, "weekend_combo")
	assert.Contains(t, out, "2026-10-16,2026-10-17,2026-10-18")
	assert.Regexp(t, `Total:\s+1400`, out)
}

func TestQuoteCmd_JSON(t *testing.T) {
	out, err := runQuote(t, "--dates", "2026-10-21", "--party", "3", "--json")
	require.NoError(t, err)

	var got struct {
		Total int64 `json:"total"`
		Lines []struct {
			Kind string `json:"kind"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(375), got.Total)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "weekday", got.Lines[0].Kind)
}

func TestQuoteCmd_Errors(t *testing.T) {
	_, err := runQuote(t, "--dates", "10/16/2026")
	assert.ErrorContains(t, err, "--dates")

	_, err = runQuote(t, "--dates", "2026-10-16", "--add-on", "2026-10-17")
	assert.ErrorContains(t, err, "not one of the selected dates")

	_, err = runQuote(t, "--party", "2")
	assert.ErrorContains(t, err, "at least one date")

	cmd := quoteCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dates", "2026-10-16"})
	assert.ErrorContains(t, cmd.Execute(), "--season-file is required")
}

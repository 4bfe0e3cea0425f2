package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/memstore"
)

const seasonTOML = `
[season]
name = "2026 Dove Season"
start = 2026-09-01
end = "2026-11-30"
weekday_rate = 125
add_on_rate_per_day = 500
max_capacity_per_day = 100

[season.weekend_rates]
single_day = 200
two_consecutive_days = 350
three_day_combo = 450
`

func writeSeasonFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "season.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeasonFile(t *testing.T) {
	table, err := LoadSeasonFile(writeSeasonFile(t, seasonTOML))

	require.NoError(t, err)
	assert.Equal(t, testSeason(), table)
	assert.Equal(t, int64(125), table.OffSeasonDayRate())
}

func TestLoadSeasonFile_OffSeasonRate(t *testing.T) {
	content := `
[season]
name = "Spring"
start = 2027-03-01
end = 2027-04-30
weekday_rate = 100
off_season_rate = 80
max_capacity_per_day = 40
`
	table, err := LoadSeasonFile(writeSeasonFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, int64(80), table.OffSeasonDayRate())
	assert.Equal(t, entity.MustParseCalendarDay("2027-04-30"), table.SeasonEnd)
}

func TestLoadSeasonFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing table", "name = \"x\"\n", "missing [season] table"},
		{"unknown key", "[season]\nstart = 2026-09-01\nend = 2026-09-30\nweekday_rte = 100\n", "unknown keys season.weekday_rte"},
		{"end before start", "[season]\nstart = 2026-09-30\nend = 2026-09-01\n", "before start"},
		{"negative rate", "[season]\nstart = 2026-09-01\nend = 2026-09-30\nweekday_rate = -1\n", "weekday_rate must not be negative"},
		{"bad date", "[season]\nstart = \"09/01/2026\"\nend = 2026-09-30\n", "invalid calendar day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeasonFile(writeSeasonFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadSeasonFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestSeasonService_ImportFile(t *testing.T) {
	store := memstore.New(zap.NewNop())
	svc := NewSeasonService(memstore.NewRepository(store), zap.NewNop())
	ctx := context.Background()

	_, err := svc.GetSeason(ctx)
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoActiveSeason, rejection.Reason)

	imported, err := svc.ImportFile(ctx, writeSeasonFile(t, seasonTOML))
	require.NoError(t, err)
	assert.NotEmpty(t, imported.ID)

	got, err := svc.GetSeason(ctx)
	require.NoError(t, err)
	assert.Equal(t, imported.ID, got.ID)
	assert.Equal(t, "2026-09-01", got.SeasonStart)
	assert.Equal(t, int64(125), got.OffSeasonRate)
}

func TestSeasonService_ActivateReplacesSeason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	next := testSeason()
	next.Name = "2027 Dove Season"
	next.SeasonStart = day("2027-09-01")
	next.SeasonEnd = day("2027-11-30")
	require.NoError(t, f.service.Season.Activate(ctx, next))

	current, err := f.service.Season.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2027 Dove Season", current.Name)
}

func TestSeasonService_ActivateRejectsInvalidTable(t *testing.T) {
	f := newFixture(t)
	bad := testSeason()
	bad.MaxCapacityPerDay = -5

	err := f.service.Season.Activate(context.Background(), bad)

	assert.ErrorIs(t, err, ErrValidation)
	current, err := f.service.Season.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, current.MaxCapacityPerDay)
}

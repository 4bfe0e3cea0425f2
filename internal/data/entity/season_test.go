package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTable() SeasonRateTable {
	return SeasonRateTable{
		SeasonStart:       MustParseCalendarDay("2026-09-01"),
		SeasonEnd:         MustParseCalendarDay("2026-11-30"),
		WeekdayRate:       125,
		WeekendRates:      WeekendRates{SingleDay: 200, TwoConsecutiveDays: 350, ThreeDayCombo: 450},
		AddOnRatePerDay:   500,
		MaxCapacityPerDay: 100,
	}
}

func TestSeasonRateTable_Validate(t *testing.T) {
	negative := int64(-1)

	tests := []struct {
		name    string
		mutate  func(*SeasonRateTable)
		wantErr bool
	}{
		{"valid", func(*SeasonRateTable) {}, false},
		{"single day season", func(tb *SeasonRateTable) { tb.SeasonEnd = tb.SeasonStart }, false},
		{"missing start", func(tb *SeasonRateTable) { tb.SeasonStart = CalendarDay{} }, true},
		{"end before start", func(tb *SeasonRateTable) { tb.SeasonEnd = MustParseCalendarDay("2026-08-31") }, true},
		{"negative weekday rate", func(tb *SeasonRateTable) { tb.WeekdayRate = -5 }, true},
		{"negative combo", func(tb *SeasonRateTable) { tb.WeekendRates.ThreeDayCombo = -1 }, true},
		{"negative add-on", func(tb *SeasonRateTable) { tb.AddOnRatePerDay = -1 }, true},
		{"negative off-season", func(tb *SeasonRateTable) { tb.OffSeasonRate = &negative }, true},
		{"negative capacity", func(tb *SeasonRateTable) { tb.MaxCapacityPerDay = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := validTable()
			tt.mutate(&table)

			err := table.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRateTable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeasonRateTable_InSeason(t *testing.T) {
	table := validTable()

	assert.True(t, table.InSeason(MustParseCalendarDay("2026-09-01")))
	assert.True(t, table.InSeason(MustParseCalendarDay("2026-11-30")))
	assert.False(t, table.InSeason(MustParseCalendarDay("2026-08-31")))
	assert.False(t, table.InSeason(MustParseCalendarDay("2026-12-01")))
}

func TestSeasonRateTable_OffSeasonDayRate(t *testing.T) {
	table := validTable()
	assert.Equal(t, int64(125), table.OffSeasonDayRate())

	rate := int64(90)
	table.OffSeasonRate = &rate
	assert.Equal(t, int64(90), table.OffSeasonDayRate())
}

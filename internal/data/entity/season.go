package entity

import (
	"errors"
	"fmt"
)

// WeekendRates are per-person bundle prices for in-season Fri/Sat/Sun days.
type WeekendRates struct {
	SingleDay          int64 `json:"single_day" toml:"single_day"`
	TwoConsecutiveDays int64 `json:"two_consecutive_days" toml:"two_consecutive_days"`
	ThreeDayCombo      int64 `json:"three_day_combo" toml:"three_day_combo"`
}

// SeasonRateTable holds pricing and capacity parameters of one season.
// All money values are whole currency units.
type SeasonRateTable struct {
	ID                string       `json:"id,omitempty" toml:"-"`
	Name              string       `json:"name" toml:"name"`
	SeasonStart       CalendarDay  `json:"season_start" toml:"start"`
	SeasonEnd         CalendarDay  `json:"season_end" toml:"end"`
	WeekdayRate       int64        `json:"weekday_rate" toml:"weekday_rate"`
	OffSeasonRate     *int64       `json:"off_season_rate,omitempty" toml:"off_season_rate"`
	WeekendRates      WeekendRates `json:"weekend_rates" toml:"weekend_rates"`
	AddOnRatePerDay   int64        `json:"add_on_rate_per_day" toml:"add_on_rate_per_day"`
	MaxCapacityPerDay int          `json:"max_capacity_per_day" toml:"max_capacity_per_day"`
}

var ErrInvalidRateTable = errors.New("invalid season rate table")

// Validate checks the table invariants: bounds set and ordered, rates and capacity non-negative.
func (t *SeasonRateTable) Validate() error {
	if t.SeasonStart.IsZero() || t.SeasonEnd.IsZero() {
		return fmt.Errorf("%w: season start and end are required", ErrInvalidRateTable)
	}
	if t.SeasonEnd.Before(t.SeasonStart) {
		return fmt.Errorf("%w: season end %s is before start %s", ErrInvalidRateTable, t.SeasonEnd, t.SeasonStart)
	}

	rates := map[string]int64{
		"weekday_rate":         t.WeekdayRate,
		"single_day":           t.WeekendRates.SingleDay,
		"two_consecutive_days": t.WeekendRates.TwoConsecutiveDays,
		"three_day_combo":      t.WeekendRates.ThreeDayCombo,
		"add_on_rate_per_day":  t.AddOnRatePerDay,
	}
	if t.OffSeasonRate != nil {
		rates["off_season_rate"] = *t.OffSeasonRate
	}
	for name, rate := range rates {
		if rate < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidRateTable, name)
		}
	}

	if t.MaxCapacityPerDay < 0 {
		return fmt.Errorf("%w: max_capacity_per_day must not be negative", ErrInvalidRateTable)
	}
	return nil
}

// InSeason reports whether day lies within the inclusive season bounds.
func (t *SeasonRateTable) InSeason(day CalendarDay) bool {
	return !day.Before(t.SeasonStart) && !day.After(t.SeasonEnd)
}

// OffSeasonDayRate is the per-person rate of an off-season day. Without an explicit
// off-season rate it falls back to the weekday rate.
func (t *SeasonRateTable) OffSeasonDayRate() int64 {
	if t.OffSeasonRate != nil {
		return *t.OffSeasonRate
	}
	return t.WeekdayRate
}

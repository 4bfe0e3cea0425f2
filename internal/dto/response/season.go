package response

import (
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
)

type WeekendRatesResponse struct {
	SingleDay          int64 `json:"single_day"`
	TwoConsecutiveDays int64 `json:"two_consecutive_days"`
	ThreeDayCombo      int64 `json:"three_day_combo"`
}

type SeasonResponse struct {
	ID                string               `json:"id,omitempty"`
	Name              string               `json:"name"`
	SeasonStart       string               `json:"season_start"`
	SeasonEnd         string               `json:"season_end"`
	WeekdayRate       int64                `json:"weekday_rate"`
	OffSeasonRate     int64                `json:"off_season_rate"`
	WeekendRates      WeekendRatesResponse `json:"weekend_rates"`
	AddOnRatePerDay   int64                `json:"add_on_rate_per_day"`
	MaxCapacityPerDay int                  `json:"max_capacity_per_day"`
}

func SeasonToResponse(table *entity.SeasonRateTable) SeasonResponse {
	return SeasonResponse{
		ID:            table.ID,
		Name:          table.Name,
		SeasonStart:   table.SeasonStart.String(),
		SeasonEnd:     table.SeasonEnd.String(),
		WeekdayRate:   table.WeekdayRate,
		OffSeasonRate: table.OffSeasonDayRate(),
		WeekendRates: WeekendRatesResponse{
			SingleDay:          table.WeekendRates.SingleDay,
			TwoConsecutiveDays: table.WeekendRates.TwoConsecutiveDays,
			ThreeDayCombo:      table.WeekendRates.ThreeDayCombo,
		},
		AddOnRatePerDay:   table.AddOnRatePerDay,
		MaxCapacityPerDay: table.MaxCapacityPerDay,
	}
}

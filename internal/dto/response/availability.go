package response

import (
	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
)

type AvailabilityDay struct {
	Date           string `json:"date"`
	InSeason       bool   `json:"in_season"`
	HuntersBooked  int    `json:"hunters_booked"`
	SpotsLeft      int    `json:"spots_left"`
	AddOnBooked    bool   `json:"add_on_booked"`
	AddOnAvailable bool   `json:"add_on_available"`
}

type AvailabilityResponse struct {
	Start             string            `json:"start"`
	End               string            `json:"end"`
	MaxCapacityPerDay int               `json:"max_capacity_per_day"`
	Days              []AvailabilityDay `json:"days"`
}

func AvailabilityToResponse(rec *entity.AvailabilityRecord, table *entity.SeasonRateTable) AvailabilityDay {
	return AvailabilityDay{
		Date:           rec.Day.String(),
		InSeason:       table.InSeason(rec.Day),
		HuntersBooked:  rec.HuntersBooked,
		SpotsLeft:      rec.SpotsLeft(table.MaxCapacityPerDay),
		AddOnBooked:    rec.AddOnBooked,
		AddOnAvailable: !rec.AddOnBooked,
	}
}

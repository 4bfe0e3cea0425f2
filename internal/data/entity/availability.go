package entity

import "time"

// AvailabilityRecord is the capacity counter of one calendar day.
// A missing record is equivalent to the zero record.
type AvailabilityRecord struct {
	Day           CalendarDay `db:"day"`
	HuntersBooked int         `db:"hunters_booked"`
	AddOnBooked   bool        `db:"add_on_booked"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// EmptyAvailability is the record of a day nobody has booked yet.
func EmptyAvailability(day CalendarDay) *AvailabilityRecord {
	return &AvailabilityRecord{Day: day}
}

// SpotsLeft returns the remaining hunters for the day, never below zero.
func (a *AvailabilityRecord) SpotsLeft(maxCapacity int) int {
	left := maxCapacity - a.HuntersBooked
	if left < 0 {
		return 0
	}
	return left
}

// CanFit reports whether partySize more hunters fit under maxCapacity.
func (a *AvailabilityRecord) CanFit(partySize, maxCapacity int) bool {
	return a.HuntersBooked+partySize <= maxCapacity
}

// DenseRange returns one record per day in [start, end], taking stored records where
// present and empty ones elsewhere. records need not be sorted.
func DenseRange(start, end CalendarDay, records []*AvailabilityRecord) []*AvailabilityRecord {
	if end.Before(start) {
		return nil
	}
	byDay := make(map[CalendarDay]*AvailabilityRecord, len(records))
	for _, rec := range records {
		byDay[rec.Day] = rec
	}

	out := make([]*AvailabilityRecord, 0, start.DaysUntil(end)+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		if rec, ok := byDay[day]; ok {
			out = append(out, rec)
			continue
		}
		out = append(out, EmptyAvailability(day))
	}
	return out
}

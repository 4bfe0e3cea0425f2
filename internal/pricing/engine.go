// Package pricing turns a day selection and a season rate table into a price.
// Everything here is pure: no I/O, no clock, no shared state.
package pricing

import (
	"time"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/internal/data/entity"
)

type LineKind string

const (
	LineWeekday       LineKind = "weekday"
	LineOffSeason     LineKind = "off_season"
	LineWeekendSingle LineKind = "weekend_single"
	LineWeekendPair   LineKind = "weekend_pair"
	LineWeekendCombo  LineKind = "weekend_combo"
	LineAddOn         LineKind = "add_on"
)

// Line is one priced unit of a quote. PerPerson is zero for add-on lines,
// whose Amount is flat.
type Line struct {
	Kind      LineKind
	Dates     []entity.CalendarDay
	PerPerson int64
	Amount    int64
}

// Quote is the full price breakdown.
type Quote struct {
	Lines          []Line
	PerPersonTotal int64
	PartySize      int
	HuntTotal      int64
	AddOnTotal     int64
	Total          int64
}

// Calculate returns the total price of the selection.
func Calculate(dates []entity.CalendarDay, partySize, addOnDays int, table entity.SeasonRateTable) int64 {
	return Breakdown(dates, partySize, addOnDays, table).Total
}

// QuoteRequest prices a validated booking request.
func QuoteRequest(req *entity.BookingRequest, table entity.SeasonRateTable) Quote {
	return Breakdown(req.Dates, req.PartySize, len(req.AddOnDates), table)
}

// Breakdown prices dates the way the ranch bills them: weekend days in season are bundled
// forward from the earliest unconsumed day (Fri+Sat+Sun, then Fri+Sat or Sat+Sun, then a
// single day); every other day bills at the weekday (or off-season) rate. The per-person
// total is multiplied by partySize, then the flat add-on charge is added.
// The input order of dates does not matter.
func Breakdown(dates []entity.CalendarDay, partySize, addOnDays int, table entity.SeasonRateTable) Quote {
	sorted := entity.SortDays(dates)
	q := Quote{PartySize: partySize}

	for i := 0; i < len(sorted); {
		day := sorted[i]

		if !table.InSeason(day) {
			q.addDays(LineOffSeason, table.OffSeasonDayRate(), partySize, day)
			i++
			continue
		}

		if !isWeekendDay(day) {
			q.addDays(LineWeekday, table.WeekdayRate, partySize, day)
			i++
			continue
		}

		if isThreeDayCombo(sorted, i, &table) {
			q.addDays(LineWeekendCombo, table.WeekendRates.ThreeDayCombo, partySize, sorted[i:i+3]...)
			i += 3
			continue
		}

		if isTwoDayCombo(sorted, i, &table) {
			q.addDays(LineWeekendPair, table.WeekendRates.TwoConsecutiveDays, partySize, sorted[i:i+2]...)
			i += 2
			continue
		}

		q.addDays(LineWeekendSingle, table.WeekendRates.SingleDay, partySize, day)
		i++
	}

	q.HuntTotal = q.PerPersonTotal * int64(partySize)
	if addOnDays > 0 {
		q.AddOnTotal = table.AddOnRatePerDay * int64(addOnDays)
		q.Lines = append(q.Lines, Line{Kind: LineAddOn, Amount: q.AddOnTotal})
	}
	q.Total = q.HuntTotal + q.AddOnTotal

	return q
}

func (q *Quote) addDays(kind LineKind, perPerson int64, partySize int, days ...entity.CalendarDay) {
	q.PerPersonTotal += perPerson
	q.Lines = append(q.Lines, Line{
		Kind:      kind,
		Dates:     append([]entity.CalendarDay(nil), days...),
		PerPerson: perPerson,
		Amount:    perPerson * int64(partySize),
	})
}

func isWeekendDay(day entity.CalendarDay) bool {
	switch day.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// isThreeDayCombo: sorted[i] is a Friday followed by the very next Saturday and Sunday,
// all in season.
func isThreeDayCombo(sorted []entity.CalendarDay, i int, table *entity.SeasonRateTable) bool {
	if i+2 >= len(sorted) || sorted[i].Weekday() != time.Friday {
		return false
	}
	sat, sun := sorted[i+1], sorted[i+2]
	return sat == sorted[i].AddDays(1) && sun == sorted[i].AddDays(2) &&
		sat.Weekday() == time.Saturday && sun.Weekday() == time.Sunday &&
		table.InSeason(sat) && table.InSeason(sun)
}

// isTwoDayCombo: sorted[i] and the next day form Fri+Sat or Sat+Sun, the next one in season.
func isTwoDayCombo(sorted []entity.CalendarDay, i int, table *entity.SeasonRateTable) bool {
	if i+1 >= len(sorted) {
		return false
	}
	cur, next := sorted[i], sorted[i+1]
	if next != cur.AddDays(1) || !table.InSeason(next) {
		return false
	}
	switch cur.Weekday() {
	case time.Friday:
		return next.Weekday() == time.Saturday
	case time.Saturday:
		return next.Weekday() == time.Sunday
	default:
		return false
	}
}

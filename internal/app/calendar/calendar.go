// Package calendar decides which calendar dates are valid diary submission
// days for an internship program. Decisions are pure functions over the
// program row; nothing here touches the store.
package calendar

import (
	"time"

	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/pkg/helpers"
)

// ProgramDate is one day of a program's generated calendar.
type ProgramDate struct {
	Date       time.Time `json:"date"`
	IsDisabled bool      `json:"isDisabled"`
	IsWeekend  bool      `json:"isWeekend"`
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// isDisabledDay checks literal membership of the date in the program's
// disabled-day list. The list holds ISO dates only; the weekend rule is
// applied separately and cannot be switched off through this list.
func isDisabledDay(date time.Time, program *models.InternshipProgram) bool {
	dateStr := helpers.FormatDate(date)
	for _, d := range program.DisabledDays {
		if d == dateStr {
			return true
		}
	}
	return false
}

// IsValidProgramDay decides whether diary submission is permitted on the
// given date. Fails closed: outside [StartDate, EndDate] is invalid, as is
// any listed disabled day and any weekend day.
func IsValidProgramDay(date time.Time, program *models.InternshipProgram) bool {
	day := helpers.TruncateToDate(date)
	start := helpers.TruncateToDate(program.StartDate)
	end := helpers.TruncateToDate(program.EndDate)

	if day.Before(start) || day.After(end) {
		return false
	}
	if isDisabledDay(day, program) {
		return false
	}
	if IsWeekend(day) {
		return false
	}
	return true
}

// GenerateProgramDates produces one entry per calendar day from StartDate to
// EndDate inclusive, in order. Pure function of the program row.
func GenerateProgramDates(program *models.InternshipProgram) []ProgramDate {
	start := helpers.TruncateToDate(program.StartDate)
	end := helpers.TruncateToDate(program.EndDate)

	if end.Before(start) {
		return nil
	}

	var dates []ProgramDate
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, ProgramDate{
			Date:       day,
			IsDisabled: isDisabledDay(day, program),
			IsWeekend:  IsWeekend(day),
		})
	}
	return dates
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/interntrack/internal/app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// June 2025: the 2nd is a Monday, the 7th/8th a weekend.
func testProgram() *models.InternshipProgram {
	return &models.InternshipProgram{
		ID:        1,
		Name:      "Summer Internship",
		StartDate: date(2025, time.June, 2),
		EndDate:   date(2025, time.June, 30),
		IsActive:  true,
	}
}

func TestIsValidProgramDay_Boundaries(t *testing.T) {
	p := testProgram()

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "day before start", day: date(2025, time.June, 1), want: false},
		{name: "start date itself", day: date(2025, time.June, 2), want: true},
		{name: "end date itself", day: date(2025, time.June, 30), want: true},
		{name: "day after end", day: date(2025, time.July, 1), want: false},
		{name: "far outside range", day: date(2024, time.June, 2), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidProgramDay(tt.day, p))
		})
	}
}

func TestIsValidProgramDay_DisabledDays(t *testing.T) {
	p := testProgram()
	p.DisabledDays = []string{"2025-06-05", "2025-06-16"}

	assert.False(t, IsValidProgramDay(date(2025, time.June, 5), p))
	assert.False(t, IsValidProgramDay(date(2025, time.June, 16), p))
	// Neighbouring weekdays stay valid
	assert.True(t, IsValidProgramDay(date(2025, time.June, 4), p))
	assert.True(t, IsValidProgramDay(date(2025, time.June, 6), p))
}

func TestIsValidProgramDay_WeekendsAlwaysExcluded(t *testing.T) {
	p := testProgram()

	// Every Saturday and Sunday in range is invalid regardless of the list
	for _, d := range []time.Time{
		date(2025, time.June, 7), date(2025, time.June, 8),
		date(2025, time.June, 14), date(2025, time.June, 15),
		date(2025, time.June, 21), date(2025, time.June, 22),
		date(2025, time.June, 28), date(2025, time.June, 29),
	} {
		assert.False(t, IsValidProgramDay(d, p), "expected %s to be invalid", d.Format("2006-01-02"))
	}

	// Listing a weekend as disabled changes nothing
	p.DisabledDays = []string{"2025-06-07"}
	assert.False(t, IsValidProgramDay(date(2025, time.June, 7), p))
}

func TestIsValidProgramDay_IgnoresTimeOfDay(t *testing.T) {
	p := testProgram()

	late := time.Date(2025, time.June, 2, 23, 45, 0, 0, time.UTC)
	assert.True(t, IsValidProgramDay(late, p))
}

func TestGenerateProgramDates_FullRange(t *testing.T) {
	p := testProgram()
	p.DisabledDays = []string{"2025-06-05"}

	dates := GenerateProgramDates(p)
	require.Len(t, dates, 29) // June 2 .. June 30 inclusive

	assert.Equal(t, p.StartDate, dates[0].Date)
	assert.Equal(t, p.EndDate, dates[len(dates)-1].Date)

	// Strictly increasing by one calendar day
	for i := 1; i < len(dates); i++ {
		assert.Equal(t, dates[i-1].Date.AddDate(0, 0, 1), dates[i].Date)
	}

	// Flags reflect the exclusion mechanisms independently
	assert.True(t, dates[3].IsDisabled) // June 5
	assert.False(t, dates[3].IsWeekend)
	assert.True(t, dates[5].IsWeekend) // June 7
	assert.False(t, dates[5].IsDisabled)
}

func TestGenerateProgramDates_SingleDay(t *testing.T) {
	p := testProgram()
	p.EndDate = p.StartDate

	dates := GenerateProgramDates(p)
	require.Len(t, dates, 1)
	assert.Equal(t, p.StartDate, dates[0].Date)
}

func TestGenerateProgramDates_InvertedRange(t *testing.T) {
	p := testProgram()
	p.StartDate, p.EndDate = p.EndDate, p.StartDate

	assert.Empty(t, GenerateProgramDates(p))
}

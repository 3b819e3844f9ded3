package services

import (
	"errors"
	"math"
	"time"
)

const (
	// HoursPerWorkingDay assumes a fixed 8-hour day, lunch already excluded.
	HoursPerWorkingDay = 8.0
	// TargetFraction is the 80% billable-utilization policy target.
	TargetFraction = 0.8
	// WeeklyTargetHours is the weekly project-hours target (80% of a 40h week).
	WeeklyTargetHours = 32.0
)

var ErrInvalidDateRange = errors.New("invalid date range")

const dateLayout = "2006-01-02"

func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return parsed, nil
}

// WorkingDays counts the days in the inclusive range whose weekday is neither
// Saturday nor Sunday. A range with end before start has no working days.
func WorkingDays(start time.Time, end time.Time) int {
	days := 0
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		weekday := cursor.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			days++
		}
	}
	return days
}

// UtilizationPercentage is the single utilization formula both the range
// report and the weekly stats build on: hours logged against hours available,
// as a percentage. Zero availability yields zero rather than a division error.
func UtilizationPercentage(hoursLogged float64, availableHours float64) float64 {
	if availableHours <= 0 {
		return 0
	}
	return hoursLogged / availableHours * 100
}

// WeekWindow returns the Sunday 00:00 opening and Saturday closing date of the
// calendar week containing the given moment.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	saturday := sunday.AddDate(0, 0, 6)
	return sunday, saturday
}

// ManDays converts hours to man-days at the fixed 8-hour divisor.
func ManDays(hours float64) float64 {
	return Round2(hours / HoursPerWorkingDay)
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// CapacityReport is the range-based utilization summary.
type CapacityReport struct {
	ProjectHours          float64 `json:"projectHours"`
	TotalHours            float64 `json:"totalHours"`
	WorkingDays           int     `json:"workingDays"`
	TotalAvailableHours   float64 `json:"totalAvailableHours"`
	UtilizationTarget     float64 `json:"utilizationTarget"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
	IsAboveTarget         bool    `json:"isAboveTarget"`
}

// BuildCapacityReport derives the utilization summary for an inclusive date
// range from the hour sums already aggregated by the store.
func BuildCapacityReport(projectHours float64, totalHours float64, start time.Time, end time.Time) CapacityReport {
	workingDays := WorkingDays(start, end)
	availableHours := float64(workingDays) * HoursPerWorkingDay
	percentage := Round2(UtilizationPercentage(projectHours, availableHours))

	return CapacityReport{
		ProjectHours:          projectHours,
		TotalHours:            totalHours,
		WorkingDays:           workingDays,
		TotalAvailableHours:   availableHours,
		UtilizationTarget:     availableHours * TargetFraction,
		UtilizationPercentage: percentage,
		IsAboveTarget:         percentage >= TargetFraction*100,
	}
}

// WeeklyStats is the dashboard widget summary for the current calendar week.
type WeeklyStats struct {
	WeeklyHours         float64 `json:"weeklyHours"`
	CapacityUtilization int     `json:"capacityUtilization"`
	ProjectHours        float64 `json:"projectHours"`
	TargetHours         float64 `json:"targetHours"`
}

// BuildWeeklyStats derives the weekly summary from the week's hour sums. The
// utilization is measured against the fixed weekly target and capped at 100.
func BuildWeeklyStats(projectHours float64, weeklyHours float64) WeeklyStats {
	utilization := int(math.Round(UtilizationPercentage(projectHours, WeeklyTargetHours)))
	if utilization > 100 {
		utilization = 100
	}

	return WeeklyStats{
		WeeklyHours:         Round1(weeklyHours),
		CapacityUtilization: utilization,
		ProjectHours:        Round1(projectHours),
		TargetHours:         WeeklyTargetHours,
	}
}

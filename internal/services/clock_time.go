package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidClockTime  = errors.New("invalid clock time")
	ErrInvertedTimeRange = errors.New("end time before start time")
)

// ClockTime is a 24-hour wall-clock time without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses an HH:MM string (24-hour).
func ParseClockTime(raw string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return ClockTime{}, ErrInvalidClockTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// DecimalHours renders the clock time as fractional hours, e.g. 09:30 -> 9.5.
func (clock ClockTime) DecimalHours() float64 {
	return float64(clock.Hour) + float64(clock.Minute)/60
}

// DurationInHours computes the decimal-hour span between two HH:MM strings on
// the same day. An end time earlier than the start time is rejected: there is
// no overnight wraparound in this domain, so an inverted range is always a
// data-entry mistake.
func DurationInHours(startRaw string, endRaw string) (float64, error) {
	start, err := ParseClockTime(startRaw)
	if err != nil {
		return 0, fmt.Errorf("start time: %w", err)
	}
	end, err := ParseClockTime(endRaw)
	if err != nil {
		return 0, fmt.Errorf("end time: %w", err)
	}

	duration := end.DecimalHours() - start.DecimalHours()
	if duration < 0 {
		return 0, ErrInvertedTimeRange
	}
	return duration, nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ihrp/tally/internal/models"
)

var (
	ErrActualFieldsMissing = errors.New("category, startDate, endDate and hours are required")
	ErrMissingIdentity     = errors.New("session identity has no resolvable user id")
	ErrInvalidHours        = errors.New("hours must be a positive number")
)

type ActualsReader interface {
	Insert(ctx context.Context, entry *models.ActualEntry) error
	ListForUser(ctx context.Context, userID int64) ([]models.ActualEntry, error)
	SumHoursInRange(ctx context.Context, userID int64, startDate string, endDate string) (totalHours float64, projectHours float64, err error)
}

type ActualsService struct {
	actuals ActualsReader
	now     func() time.Time
}

func NewActualsService(actuals ActualsReader) *ActualsService {
	return &ActualsService{actuals: actuals, now: time.Now}
}

// WithClock fixes the service's notion of "now"; tests pin the weekly window
// with it.
func (service *ActualsService) WithClock(now func() time.Time) *ActualsService {
	service.now = now
	return service
}

type ActualEntryInput struct {
	Category  string   `json:"category"`
	Project   *string  `json:"project"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Hours     *float64 `json:"hours"`
}

// Create inserts a time entry for the authenticated caller. The user id comes
// from the session only, never from the payload.
func (service *ActualsService) Create(ctx context.Context, identity Identity, input ActualEntryInput) (models.ActualEntry, error) {
	if identity.ID == 0 {
		return models.ActualEntry{}, ErrMissingIdentity
	}
	if strings.TrimSpace(input.Category) == "" ||
		strings.TrimSpace(input.StartDate) == "" ||
		strings.TrimSpace(input.EndDate) == "" ||
		input.Hours == nil {
		return models.ActualEntry{}, ErrActualFieldsMissing
	}
	if *input.Hours <= 0 {
		return models.ActualEntry{}, ErrInvalidHours
	}
	if _, err := ParseDate(strings.TrimSpace(input.StartDate)); err != nil {
		return models.ActualEntry{}, err
	}
	if _, err := ParseDate(strings.TrimSpace(input.EndDate)); err != nil {
		return models.ActualEntry{}, err
	}

	entry := models.ActualEntry{
		UserID:    int64(identity.ID),
		Category:  strings.TrimSpace(input.Category),
		Project:   input.Project,
		StartDate: strings.TrimSpace(input.StartDate),
		EndDate:   strings.TrimSpace(input.EndDate),
		Hours:     Round2(*input.Hours),
	}
	if err := service.actuals.Insert(ctx, &entry); err != nil {
		return models.ActualEntry{}, err
	}
	return entry, nil
}

func (service *ActualsService) ListMine(ctx context.Context, identity Identity) ([]models.ActualEntry, error) {
	if identity.ID == 0 {
		return nil, ErrMissingIdentity
	}
	return service.actuals.ListForUser(ctx, int64(identity.ID))
}

// CapacityUtilization builds the utilization report for an inclusive date
// range from the caller's logged hours.
func (service *ActualsService) CapacityUtilization(ctx context.Context, identity Identity, startDateRaw string, endDateRaw string) (CapacityReport, error) {
	if identity.ID == 0 {
		return CapacityReport{}, ErrMissingIdentity
	}
	start, err := ParseDate(strings.TrimSpace(startDateRaw))
	if err != nil {
		return CapacityReport{}, err
	}
	end, err := ParseDate(strings.TrimSpace(endDateRaw))
	if err != nil {
		return CapacityReport{}, err
	}

	totalHours, projectHours, err := service.actuals.SumHoursInRange(
		ctx, int64(identity.ID), start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return CapacityReport{}, err
	}
	return BuildCapacityReport(projectHours, totalHours, start, end), nil
}

// WeeklyStats summarizes the Sunday–Saturday week containing now.
func (service *ActualsService) WeeklyStats(ctx context.Context, identity Identity) (WeeklyStats, error) {
	if identity.ID == 0 {
		return WeeklyStats{}, ErrMissingIdentity
	}

	sunday, saturday := WeekWindow(service.now())
	totalHours, projectHours, err := service.actuals.SumHoursInRange(
		ctx, int64(identity.ID), sunday.Format(dateLayout), saturday.Format(dateLayout))
	if err != nil {
		return WeeklyStats{}, err
	}
	return BuildWeeklyStats(projectHours, totalHours), nil
}

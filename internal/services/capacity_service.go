package services

import (
	"errors"
	"strings"

	"github.com/ihrp/tally/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCapacityEntryNotFound = errors.New("capacity entry not found")
	ErrCapacityFieldsMissing = errors.New("capacity entry fields missing")
	ErrNotEntryOwner         = errors.New("not the entry owner")
)

type CapacityEntryRepository interface {
	Create(entry *models.CapacityEntry) error
	FindByID(entryID uint) (models.CapacityEntry, error)
	ListForUser(userID uint) ([]models.CapacityEntry, error)
	Save(entry *models.CapacityEntry) error
	Delete(entryID uint) error
}

type CapacityService struct {
	entries CapacityEntryRepository
}

func NewCapacityService(entries CapacityEntryRepository) *CapacityService {
	return &CapacityService{entries: entries}
}

type CapacityEntryInput struct {
	Category  string `json:"category"`
	Project   string `json:"project"`
	Activity  string `json:"activity"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Date      string `json:"date"`
}

// Create validates all required fields, derives the duration from the clock
// times and persists the entry owned by the caller.
func (service *CapacityService) Create(identity Identity, input CapacityEntryInput) (models.CapacityEntry, error) {
	if hasBlankField(input.Category, input.Project, input.Activity, input.StartTime, input.EndTime, input.Date) {
		return models.CapacityEntry{}, ErrCapacityFieldsMissing
	}
	if _, err := ParseDate(strings.TrimSpace(input.Date)); err != nil {
		return models.CapacityEntry{}, err
	}

	duration, err := DurationInHours(input.StartTime, input.EndTime)
	if err != nil {
		return models.CapacityEntry{}, err
	}

	entry := models.CapacityEntry{
		UserID:          identity.ID,
		Category:        strings.TrimSpace(input.Category),
		Project:         strings.TrimSpace(input.Project),
		Activity:        strings.TrimSpace(input.Activity),
		StartTime:       strings.TrimSpace(input.StartTime),
		EndTime:         strings.TrimSpace(input.EndTime),
		DurationInHours: duration,
		Date:            strings.TrimSpace(input.Date),
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.CapacityEntry{}, err
	}
	return entry, nil
}

func (service *CapacityService) ListMine(identity Identity) ([]models.CapacityEntry, error) {
	return service.entries.ListForUser(identity.ID)
}

// CapacityEntryUpdate carries a partial update; nil fields are left untouched.
type CapacityEntryUpdate struct {
	Category  *string `json:"category"`
	Project   *string `json:"project"`
	Activity  *string `json:"activity"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Date      *string `json:"date"`
}

// Update merges the provided fields onto the stored entry. The duration is
// recomputed only when the payload carries both clock times; updating one of
// the two leaves the stored duration unchanged.
func (service *CapacityService) Update(identity Identity, entryID uint, update CapacityEntryUpdate) (models.CapacityEntry, error) {
	entry, err := service.loadOwned(identity, entryID)
	if err != nil {
		return models.CapacityEntry{}, err
	}

	if update.Category != nil {
		entry.Category = strings.TrimSpace(*update.Category)
	}
	if update.Project != nil {
		entry.Project = strings.TrimSpace(*update.Project)
	}
	if update.Activity != nil {
		entry.Activity = strings.TrimSpace(*update.Activity)
	}
	if update.Date != nil {
		if _, err := ParseDate(strings.TrimSpace(*update.Date)); err != nil {
			return models.CapacityEntry{}, err
		}
		entry.Date = strings.TrimSpace(*update.Date)
	}
	if update.StartTime != nil {
		entry.StartTime = strings.TrimSpace(*update.StartTime)
	}
	if update.EndTime != nil {
		entry.EndTime = strings.TrimSpace(*update.EndTime)
	}
	if update.StartTime != nil && update.EndTime != nil {
		duration, err := DurationInHours(entry.StartTime, entry.EndTime)
		if err != nil {
			return models.CapacityEntry{}, err
		}
		entry.DurationInHours = duration
	}

	if err := service.entries.Save(&entry); err != nil {
		return models.CapacityEntry{}, err
	}
	return entry, nil
}

func (service *CapacityService) Delete(identity Identity, entryID uint) error {
	if _, err := service.loadOwned(identity, entryID); err != nil {
		return err
	}
	return service.entries.Delete(entryID)
}

func (service *CapacityService) loadOwned(identity Identity, entryID uint) (models.CapacityEntry, error) {
	entry, err := service.entries.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CapacityEntry{}, ErrCapacityEntryNotFound
		}
		return models.CapacityEntry{}, err
	}
	if !CanAccess(identity, entry.UserID) {
		return models.CapacityEntry{}, ErrNotEntryOwner
	}
	return entry, nil
}

func hasBlankField(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}
	return false
}

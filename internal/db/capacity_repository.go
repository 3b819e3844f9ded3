package db

import (
	"github.com/ihrp/tally/internal/models"
	"gorm.io/gorm"
)

type CapacityRepository struct {
	database *gorm.DB
}

func NewCapacityRepository(database *gorm.DB) *CapacityRepository {
	return &CapacityRepository{database: database}
}

func (repo *CapacityRepository) Create(entry *models.CapacityEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *CapacityRepository) FindByID(entryID uint) (models.CapacityEntry, error) {
	var entry models.CapacityEntry
	if err := repo.database.First(&entry, entryID).Error; err != nil {
		return models.CapacityEntry{}, err
	}
	return entry, nil
}

func (repo *CapacityRepository) ListForUser(userID uint) ([]models.CapacityEntry, error) {
	entries := make([]models.CapacityEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CapacityRepository) Save(entry *models.CapacityEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *CapacityRepository) Delete(entryID uint) error {
	return repo.database.Delete(&models.CapacityEntry{}, entryID).Error
}

package models

import "time"

// CapacityEntry is the legacy per-activity time log with explicit clock times.
// Date is stored as a YYYY-MM-DD string and StartTime/EndTime as HH:MM strings,
// matching the records migrated from the previous system.
type CapacityEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	Category        string    `gorm:"not null" json:"category"`
	Project         string    `gorm:"not null" json:"project"`
	Activity        string    `gorm:"not null" json:"activity"`
	StartTime       string    `gorm:"not null" json:"startTime"`
	EndTime         string    `gorm:"not null" json:"endTime"`
	DurationInHours float64   `gorm:"not null" json:"durationInHours"`
	Date            string    `gorm:"not null;index" json:"date"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

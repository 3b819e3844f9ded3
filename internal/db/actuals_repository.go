package db

import (
	"context"
	"time"

	"github.com/ihrp/tally/internal/models"
	"github.com/jmoiron/sqlx"
)

type ActualsRepository struct {
	database *sqlx.DB
}

func NewActualsRepository(database *sqlx.DB) *ActualsRepository {
	return &ActualsRepository{database: database}
}

func (repo *ActualsRepository) Insert(ctx context.Context, entry *models.ActualEntry) error {
	// RETURNING works on both backends; lib/pq has no LastInsertId.
	query := repo.database.Rebind(`
INSERT INTO actual_entries (user_id, category, project, start_date, end_date, hours, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	entry.CreatedAt = time.Now().UTC()
	return repo.database.QueryRowxContext(ctx, query,
		entry.UserID,
		entry.Category,
		entry.Project,
		entry.StartDate,
		entry.EndDate,
		entry.Hours,
		entry.CreatedAt,
	).Scan(&entry.ID)
}

func (repo *ActualsRepository) ListForUser(ctx context.Context, userID int64) ([]models.ActualEntry, error) {
	query := repo.database.Rebind(`
SELECT id, user_id, category, project, start_date, end_date, hours, created_at
FROM actual_entries
WHERE user_id = ?
ORDER BY created_at DESC, id DESC`)
	entries := make([]models.ActualEntry, 0)
	if err := repo.database.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}
	return entries, nil
}

// SumHoursInRange returns total hours and hours excluding the Admin category
// for entries fully contained in the inclusive date range. NULL sums (no
// matching rows) come back as zero.
func (repo *ActualsRepository) SumHoursInRange(ctx context.Context, userID int64, startDate string, endDate string) (totalHours float64, projectHours float64, err error) {
	query := repo.database.Rebind(`
SELECT
  COALESCE(SUM(hours), 0) AS total_hours,
  COALESCE(SUM(CASE WHEN category <> ? THEN hours ELSE 0 END), 0) AS project_hours
FROM actual_entries
WHERE user_id = ? AND start_date >= ? AND end_date <= ?`)
	row := repo.database.QueryRowxContext(ctx, query, models.AdminCategory, userID, startDate, endDate)
	if err := row.Scan(&totalHours, &projectHours); err != nil {
		return 0, 0, err
	}
	return totalHours, projectHours, nil
}

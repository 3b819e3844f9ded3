package db

import (
	"context"
	"sort"
	"time"

	"github.com/ihrp/tally/internal/models"
	"github.com/jmoiron/sqlx"
)

type PlanRepository struct {
	database *sqlx.DB
}

func NewPlanRepository(database *sqlx.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

// Insert persists the plan row and all of its field rows in one transaction.
// Any failure rolls the whole unit back so no orphan plan survives.
func (repo *PlanRepository) Insert(ctx context.Context, plan *models.MasterPlan) error {
	tx, err := repo.database.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	plan.CreatedAt = time.Now().UTC()
	// RETURNING works on both backends; lib/pq has no LastInsertId.
	planQuery := tx.Rebind(`
INSERT INTO master_plans (project, start_date, end_date, created_by, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id`)
	var planID int64
	if err := tx.QueryRowxContext(ctx, planQuery,
		plan.Project,
		plan.StartDate,
		plan.EndDate,
		plan.CreatedBy,
		plan.CreatedAt,
	).Scan(&planID); err != nil {
		_ = tx.Rollback()
		return err
	}
	plan.ID = planID

	fieldQuery := tx.Rebind(`
INSERT INTO master_plan_fields (master_plan_id, field_name, field_value)
VALUES (?, ?, ?)`)
	fieldNames := make([]string, 0, len(plan.Fields))
	for fieldName := range plan.Fields {
		fieldNames = append(fieldNames, fieldName)
	}
	sort.Strings(fieldNames)
	for _, fieldName := range fieldNames {
		if _, err := tx.ExecContext(ctx, fieldQuery, planID, fieldName, plan.Fields[fieldName]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// ListAll joins plans with their fields and regroups the field rows into a
// per-plan map, newest plan first.
func (repo *PlanRepository) ListAll(ctx context.Context) ([]models.MasterPlan, error) {
	plans := make([]models.MasterPlan, 0)
	if err := repo.database.SelectContext(ctx, &plans, `
SELECT id, project, start_date, end_date, created_by, created_at
FROM master_plans
ORDER BY id DESC`); err != nil {
		return nil, err
	}

	fields := make([]models.MasterPlanField, 0)
	if err := repo.database.SelectContext(ctx, &fields, `
SELECT id, master_plan_id, field_name, field_value
FROM master_plan_fields
ORDER BY id ASC`); err != nil {
		return nil, err
	}

	fieldsByPlan := make(map[int64]map[string]string, len(plans))
	for _, field := range fields {
		if fieldsByPlan[field.MasterPlanID] == nil {
			fieldsByPlan[field.MasterPlanID] = make(map[string]string)
		}
		fieldsByPlan[field.MasterPlanID][field.FieldName] = field.FieldValue
	}

	for index := range plans {
		grouped := fieldsByPlan[plans[index].ID]
		if grouped == nil {
			grouped = make(map[string]string)
		}
		plans[index].Fields = grouped
	}
	return plans, nil
}

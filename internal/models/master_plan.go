package models

import "time"

// MasterPlan is a project-level schedule record with an open set of named
// attributes stored as child rows.
type MasterPlan struct {
	ID        int64             `db:"id" json:"id"`
	Project   string            `db:"project" json:"project"`
	StartDate string            `db:"start_date" json:"startDate"`
	EndDate   string            `db:"end_date" json:"endDate"`
	CreatedBy int64             `db:"created_by" json:"createdBy"`
	CreatedAt time.Time         `db:"created_at" json:"createdAt"`
	Fields    map[string]string `db:"-" json:"fields"`
}

type MasterPlanField struct {
	ID           int64  `db:"id"`
	MasterPlanID int64  `db:"master_plan_id"`
	FieldName    string `db:"field_name"`
	FieldValue   string `db:"field_value"`
}

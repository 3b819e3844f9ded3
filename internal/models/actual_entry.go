package models

import "time"

// ActualEntry is a recorded time entry in the relational store. Rows are
// immutable after creation. Dates are calendar dates in YYYY-MM-DD form.
type ActualEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Category  string    `db:"category" json:"category"`
	Project   *string   `db:"project" json:"project"`
	StartDate string    `db:"start_date" json:"startDate"`
	EndDate   string    `db:"end_date" json:"endDate"`
	Hours     float64   `db:"hours" json:"hours"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

const AdminCategory = "Admin"

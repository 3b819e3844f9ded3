package db

import (
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Users    *UserRepository
	Capacity *CapacityRepository
	Actuals  *ActualsRepository
	Plans    *PlanRepository
}

func NewRepositories(docStore *gorm.DB, relational *sqlx.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(docStore),
		Capacity: NewCapacityRepository(docStore),
		Actuals:  NewActualsRepository(relational),
		Plans:    NewPlanRepository(relational),
	}
}

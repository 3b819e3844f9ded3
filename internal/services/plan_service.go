package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ihrp/tally/internal/models"
)

var ErrPlanFieldsMissing = errors.New("project, startDate and endDate are required")

type PlanRepository interface {
	Insert(ctx context.Context, plan *models.MasterPlan) error
	ListAll(ctx context.Context) ([]models.MasterPlan, error)
}

type PlanService struct {
	plans PlanRepository
}

func NewPlanService(plans PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

type MasterPlanInput struct {
	Project   string            `json:"project"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Fields    map[string]string `json:"fields"`
}

// Create persists the plan and its open field set as one atomic unit,
// attributed to the authenticated caller.
func (service *PlanService) Create(ctx context.Context, identity Identity, input MasterPlanInput) (models.MasterPlan, error) {
	if identity.ID == 0 {
		return models.MasterPlan{}, ErrMissingIdentity
	}
	if strings.TrimSpace(input.Project) == "" ||
		strings.TrimSpace(input.StartDate) == "" ||
		strings.TrimSpace(input.EndDate) == "" {
		return models.MasterPlan{}, ErrPlanFieldsMissing
	}
	if _, err := ParseDate(strings.TrimSpace(input.StartDate)); err != nil {
		return models.MasterPlan{}, err
	}
	if _, err := ParseDate(strings.TrimSpace(input.EndDate)); err != nil {
		return models.MasterPlan{}, err
	}

	fields := make(map[string]string, len(input.Fields))
	for fieldName, fieldValue := range input.Fields {
		name := strings.TrimSpace(fieldName)
		if name == "" {
			continue
		}
		fields[name] = fieldValue
	}

	plan := models.MasterPlan{
		Project:   strings.TrimSpace(input.Project),
		StartDate: strings.TrimSpace(input.StartDate),
		EndDate:   strings.TrimSpace(input.EndDate),
		CreatedBy: int64(identity.ID),
		Fields:    fields,
	}
	if err := service.plans.Insert(ctx, &plan); err != nil {
		return models.MasterPlan{}, err
	}
	return plan, nil
}

func (service *PlanService) ListAll(ctx context.Context) ([]models.MasterPlan, error) {
	return service.plans.ListAll(ctx)
}

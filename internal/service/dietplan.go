package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitcoach/dietplan-backend/internal/models"
	"github.com/fitcoach/dietplan-backend/internal/types"
)

// upsertRetries bounds how often a lost upsert race is retried before
// it surfaces as an internal error.
const upsertRetries = 3

// PlanInput carries the mutable fields of a plan submitted by a
// caller. TotalDailyCalories is informational only; the persisted
// value is always recomputed from the meals.
type PlanInput struct {
	Name               string
	Description        string
	DietType           models.DietType
	Meals              models.MealList
	TotalDailyCalories float64
}

// PlanPatch carries a partial update; nil fields are left untouched.
type PlanPatch struct {
	Name        *string
	Description *string
	DietType    *models.DietType
	Meals       *models.MealList
}

// DietPlanService owns the persisted diet plans and enforces the
// one-active-plan-per-(owner, name) rule.
type DietPlanService struct {
	db *gorm.DB
}

// NewDietPlanService creates a new DietPlanService instance
func NewDietPlanService(db *gorm.DB) *DietPlanService {
	return &DietPlanService{db: db}
}

// Upsert creates the plan, or replaces the mutable fields of the
// existing active plan with the same owner and name. The second return
// value reports whether a new record was created. A concurrent upsert
// losing the race against the unique index is re-read and converted
// into an update.
func (s *DietPlanService) Upsert(ctx context.Context, userID uuid.UUID, input *PlanInput) (*models.DietPlan, bool, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, false, err
	}
	meals, total := settleCalories(input.Meals)

	for attempt := 0; attempt < upsertRetries; attempt++ {
		var existing models.DietPlan
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND name = ? AND is_active = ?", userID, input.Name, true).
			First(&existing).Error

		switch {
		case err == nil:
			updates := map[string]interface{}{
				"description":          input.Description,
				"diet_type":            input.DietType,
				"meals":                meals,
				"total_daily_calories": total,
			}
			if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return nil, false, err
			}
			plan, err := s.getByID(ctx, existing.ID)
			return plan, false, err

		case errors.Is(err, gorm.ErrRecordNotFound):
			plan := models.DietPlan{
				UserID:             userID,
				Name:               input.Name,
				Description:        input.Description,
				DietType:           input.DietType,
				Meals:              meals,
				TotalDailyCalories: total,
				IsActive:           true,
			}
			createErr := s.db.WithContext(ctx).Create(&plan).Error
			if createErr == nil {
				return &plan, true, nil
			}
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				// Lost the race; the next pass finds the winner and
				// updates it instead.
				continue
			}
			return nil, false, createErr

		default:
			return nil, false, err
		}
	}

	return nil, false, fmt.Errorf("upsert of plan %q gave up after %d attempts: %w", input.Name, upsertRetries, types.ErrUpsertConflict)
}

// Update mutates an existing active plan by id regardless of its name.
func (s *DietPlanService) Update(ctx context.Context, userID, planID uuid.UUID, patch *PlanPatch) (*models.DietPlan, error) {
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, types.NewValidationError("name", "must not be empty")
		}
		plan.Name = *patch.Name
	}
	if patch.Description != nil {
		plan.Description = *patch.Description
	}
	if patch.DietType != nil {
		if !patch.DietType.Valid() {
			return nil, types.NewValidationError("diet_type", fmt.Sprintf("unknown diet type %q", *patch.DietType))
		}
		plan.DietType = *patch.DietType
	}
	if patch.Meals != nil {
		if len(*patch.Meals) == 0 {
			return nil, types.NewValidationError("meals", "must contain at least one meal")
		}
		plan.Meals = *patch.Meals
	}
	plan.Meals, plan.TotalDailyCalories = settleCalories(plan.Meals)

	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewValidationError("name", fmt.Sprintf("an active plan named %q already exists", plan.Name))
		}
		return nil, err
	}
	return s.getByID(ctx, plan.ID)
}

// Deactivate soft-deletes a plan. The row stays, so history over the
// period before deactivation is unaffected.
func (s *DietPlanService) Deactivate(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := s.Get(ctx, userID, planID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(plan).Update("is_active", false).Error
}

// HardDelete irreversibly removes a plan record. Administrative
// cleanup only; it is not reachable from the ordinary CRUD surface.
func (s *DietPlanService) HardDelete(ctx context.Context, planID uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.DietPlan{}, "id = ?", planID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrPlanNotFound
	}
	return nil
}

// Get fetches a single active plan, checking ownership.
func (s *DietPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", planID, true).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, types.ErrWrongOwner
	}
	return &plan, nil
}

// List returns a user's plans filtered by active state, most recently
// created first.
func (s *DietPlanService) List(ctx context.Context, userID uuid.UUID, active bool) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, active).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *DietPlanService) getByID(ctx context.Context, id uuid.UUID) (*models.DietPlan, error) {
	var plan models.DietPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func validatePlanInput(input *PlanInput) error {
	if input.Name == "" {
		return types.NewValidationError("name", "must not be empty")
	}
	if !input.DietType.Valid() {
		return types.NewValidationError("diet_type", fmt.Sprintf("unknown diet type %q", input.DietType))
	}
	if len(input.Meals) == 0 {
		return types.NewValidationError("meals", "must contain at least one meal")
	}
	return nil
}

// settleCalories applies the calorie policy: a meal total supplied by
// the caller is trusted when positive, otherwise it is the sum of the
// meal's food calories; the plan total is always the sum of the meal
// totals.
func settleCalories(meals models.MealList) (models.MealList, float64) {
	settled := make(models.MealList, len(meals))
	var planTotal float64
	for i, meal := range meals {
		if meal.TotalCalories <= 0 {
			var sum float64
			for _, food := range meal.Foods {
				sum += food.Calories
			}
			meal.TotalCalories = sum
		}
		settled[i] = meal
		planTotal += meal.TotalCalories
	}
	return settled, planTotal
}

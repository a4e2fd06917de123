package api

import (
	"github.com/fitcoach/dietplan-backend/internal/models"
	"github.com/fitcoach/dietplan-backend/internal/quantity"
	"github.com/fitcoach/dietplan-backend/internal/service"
)

// FoodRequest is one ingredient line as submitted by a client. The
// quantity may arrive as a number or as free text ("3 pieces"); a
// pre-split unit may ride alongside a numeric quantity.
type FoodRequest struct {
	FoodName string       `json:"food_name" binding:"required"`
	Quantity quantity.Raw `json:"quantity"`
	Unit     string       `json:"unit"`
	Calories float64      `json:"calories"`
}

// MealRequest is one meal slot in an upsert or update body.
type MealRequest struct {
	Name          string        `json:"name" binding:"required"`
	Time          string        `json:"time"`
	Foods         []FoodRequest `json:"foods"`
	Instructions  string        `json:"instructions"`
	TotalCalories float64       `json:"total_calories"`
}

// UpsertPlanRequest is the POST /diet-plans body. OwnerID is optional;
// when present it must match the identity the middleware resolved.
type UpsertPlanRequest struct {
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	OwnerID            string        `json:"owner_id"`
	DietType           string        `json:"diet_type"`
	Meals              []MealRequest `json:"meals"`
	TotalDailyCalories float64       `json:"total_daily_calories"`
}

// UpdatePlanRequest is the PUT /diet-plans/:id body; absent fields are
// left untouched.
type UpdatePlanRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	DietType    *string        `json:"diet_type"`
	Meals       *[]MealRequest `json:"meals"`
}

// toMealList normalizes every food quantity on the way in, so the
// number-or-string ambiguity never survives past this conversion.
func toMealList(reqs []MealRequest) models.MealList {
	meals := make(models.MealList, len(reqs))
	for i, m := range reqs {
		foods := make([]models.FoodEntry, len(m.Foods))
		for j, f := range m.Foods {
			amount, unit := quantity.Normalize(f.Quantity)
			if unit == "" && f.Unit != "" {
				unit = f.Unit
			}
			foods[j] = models.FoodEntry{
				FoodName: f.FoodName,
				Quantity: amount,
				Unit:     unit,
				Calories: f.Calories,
			}
		}
		meals[i] = models.Meal{
			Name:          m.Name,
			Time:          m.Time,
			Foods:         foods,
			Instructions:  m.Instructions,
			TotalCalories: m.TotalCalories,
		}
	}
	return meals
}

func (r *UpsertPlanRequest) toInput() *service.PlanInput {
	return &service.PlanInput{
		Name:               r.Name,
		Description:        r.Description,
		DietType:           models.DietType(r.DietType),
		Meals:              toMealList(r.Meals),
		TotalDailyCalories: r.TotalDailyCalories,
	}
}

func (r *UpdatePlanRequest) toPatch() *service.PlanPatch {
	patch := &service.PlanPatch{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.DietType != nil {
		dt := models.DietType(*r.DietType)
		patch.DietType = &dt
	}
	if r.Meals != nil {
		meals := toMealList(*r.Meals)
		patch.Meals = &meals
	}
	return patch
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietType classifies a diet plan. The set is closed; anything else is
// rejected at validation time.
type DietType string

const (
	DietTypeWeightLoss          DietType = "weight_loss"
	DietTypeWeightGain          DietType = "weight_gain"
	DietTypeMuscleBuilding      DietType = "muscle_building"
	DietTypeMaintenance         DietType = "maintenance"
	DietTypeAthleticPerformance DietType = "athletic_performance"
)

// DietTypes lists every valid diet type value.
var DietTypes = []DietType{
	DietTypeWeightLoss,
	DietTypeWeightGain,
	DietTypeMuscleBuilding,
	DietTypeMaintenance,
	DietTypeAthleticPerformance,
}

// Valid reports whether d is one of the known diet types.
func (d DietType) Valid() bool {
	for _, t := range DietTypes {
		if d == t {
			return true
		}
	}
	return false
}

// FoodEntry is one ingredient line inside a meal. Quantity and Unit are
// the normalized form of whatever the client typed; Calories is the
// caller-supplied figure and is informational.
type FoodEntry struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Calories float64 `json:"calories,omitempty"`
}

// Meal is one meal slot (e.g. Breakfast) inside a plan. Food order is
// caller-supplied and preserved.
type Meal struct {
	Name          string      `json:"name"`
	Time          string      `json:"time,omitempty"`
	Foods         []FoodEntry `json:"foods"`
	Instructions  string      `json:"instructions,omitempty"`
	TotalCalories float64     `json:"total_calories"`
}

// MealList is a custom type for storing the meal sequence as a single
// JSONB column.
type MealList []Meal

// Value implements the driver.Valuer interface
func (m MealList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *MealList) Scan(value interface{}) error {
	if value == nil {
		*m = MealList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// DietPlan is one meal-plan record. At most one active plan per
// (UserID, Name) pair may exist; the partial unique index in the
// migration backs that up.
type DietPlan struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	DietType           DietType  `gorm:"size:50;not null" json:"diet_type"`
	Meals              MealList  `gorm:"type:jsonb;not null;default:'[]'" json:"meals"`
	TotalDailyCalories float64   `gorm:"type:float;not null;default:0" json:"total_daily_calories"`
	IsActive           bool      `gorm:"not null;default:true;index" json:"is_active"`
}

func (DietPlan) TableName() string {
	return "diet_plans"
}

// BeforeCreate assigns an id when the database does not (SQLite has no
// gen_random_uuid default).
func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

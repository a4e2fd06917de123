package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fitcoach/dietplan-backend/internal/database"
	"github.com/fitcoach/dietplan-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection, or every new pool connection gets its own
	// empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db, ""))
	return db
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func breakfastInput(name string) *PlanInput {
	return &PlanInput{
		Name:        name,
		Description: "test plan",
		DietType:    models.DietTypeWeightLoss,
		Meals: models.MealList{
			{
				Name: "Breakfast",
				Time: "08:00",
				Foods: []models.FoodEntry{
					{FoodName: "Eggs", Quantity: 3, Unit: "pieces", Calories: 210},
					{FoodName: "Toast", Quantity: 2, Unit: "slices", Calories: 160},
				},
			},
		},
	}
}

// seedPlan creates an active plan through the store and backdates its
// creation time.
func seedPlan(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, createdAt time.Time, dietType models.DietType, calories float64) *models.DietPlan {
	t.Helper()

	svc := NewDietPlanService(db)
	input := &PlanInput{
		Name:     name,
		DietType: dietType,
		Meals: models.MealList{
			{Name: "Meal", TotalCalories: calories, Foods: []models.FoodEntry{{FoodName: "Food", Quantity: 1}}},
		},
	}
	plan, created, err := svc.Upsert(context.Background(), userID, input)
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, db.Model(&models.DietPlan{}).
		Where("id = ?", plan.ID).
		Update("created_at", createdAt).Error)
	plan.CreatedAt = createdAt
	return plan
}

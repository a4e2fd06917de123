package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/fitcoach/dietplan-backend/config"
	"github.com/fitcoach/dietplan-backend/internal/database"
	"github.com/fitcoach/dietplan-backend/internal/models"
	"github.com/fitcoach/dietplan-backend/internal/service"
)

// Seeds a handful of demo diet plans for local development. Goes
// through the store's upsert so re-running it is harmless.
func main() {
	userID := uuid.New()
	if raw := os.Getenv("SEED_USER_ID"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			log.Fatalf("invalid SEED_USER_ID: %v", err)
		}
		userID = parsed
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	plans := []service.PlanInput{
		{
			Name:        "Cutting week",
			Description: "Low-calorie week with high protein breakfasts",
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
				{
					Name: "Dinner",
					Time: "19:00",
					Foods: []models.FoodEntry{
						{FoodName: "Chicken breast", Quantity: 200, Unit: "g", Calories: 330},
						{FoodName: "Salad", Quantity: 1, Unit: "bowl", Calories: 90},
					},
				},
			},
		},
		{
			Name:        "Bulking plan",
			Description: "Surplus days around gym sessions",
			DietType:    models.DietTypeMuscleBuilding,
			Meals: models.MealList{
				{
					Name:          "Lunch",
					Time:          "13:00",
					TotalCalories: 850,
					Foods: []models.FoodEntry{
						{FoodName: "Rice", Quantity: 250, Unit: "g"},
						{FoodName: "Beef", Quantity: 200, Unit: "g"},
					},
				},
			},
		},
	}

	store := service.NewDietPlanService(db)
	ctx := context.Background()
	for i := range plans {
		plan, created, err := store.Upsert(ctx, userID, &plans[i])
		if err != nil {
			log.Fatalf("failed to seed plan %q: %v", plans[i].Name, err)
		}
		verb := "updated"
		if created {
			verb = "created"
		}
		log.Printf("%s plan %q (%s) for user %s", verb, plan.Name, plan.ID, userID)
	}
}

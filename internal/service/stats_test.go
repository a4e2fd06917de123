package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitcoach/dietplan-backend/internal/models"
)

func TestSummarizeEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	stats, err := svc.Summarize(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPlans)
	assert.Equal(t, 0, stats.TotalDays)
	assert.Equal(t, float64(0), stats.TotalCalories)
	assert.Equal(t, float64(0), stats.AverageCaloriesPerDay)
	assert.Equal(t, "", stats.MostActiveDay)
	assert.NotNil(t, stats.DietTypeBreakdown)
	assert.Empty(t, stats.DietTypeBreakdown)
}

func TestSummarizeWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	userID := uuid.New()

	now := mustParseTime(t, "2026-08-20T12:00:00Z")
	svc.now = func() time.Time { return now }

	seedPlan(t, db, userID, "Inside 1", now.AddDate(0, 0, -2), models.DietTypeWeightLoss, 1800)
	seedPlan(t, db, userID, "Inside 2", now.AddDate(0, 0, -5), models.DietTypeMaintenance, 2200)
	seedPlan(t, db, userID, "Outside", now.AddDate(0, 0, -40), models.DietTypeWeightLoss, 9999)

	stats, err := svc.Summarize(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPlans)
	assert.Equal(t, 2, stats.TotalDays)
	assert.Equal(t, float64(4000), stats.TotalCalories)
	assert.Equal(t, float64(2000), stats.AverageCaloriesPerDay)
	assert.Equal(t, map[string]int{
		string(models.DietTypeWeightLoss):  1,
		string(models.DietTypeMaintenance): 1,
	}, stats.DietTypeBreakdown)
}

func TestSummarizeMostActiveDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	userID := uuid.New()

	now := mustParseTime(t, "2026-08-20T12:00:00Z")
	svc.now = func() time.Time { return now }

	busy := now.AddDate(0, 0, -3)
	seedPlan(t, db, userID, "Busy 1", busy, models.DietTypeWeightLoss, 100)
	seedPlan(t, db, userID, "Busy 2", busy.Add(2*time.Hour), models.DietTypeWeightLoss, 100)
	seedPlan(t, db, userID, "Quiet", now.AddDate(0, 0, -1), models.DietTypeWeightLoss, 100)

	stats, err := svc.Summarize(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-17", stats.MostActiveDay)
}

func TestSummarizeMostActiveDayTieGoesToRecent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	userID := uuid.New()

	now := mustParseTime(t, "2026-08-20T12:00:00Z")
	svc.now = func() time.Time { return now }

	seedPlan(t, db, userID, "Early", now.AddDate(0, 0, -4), models.DietTypeWeightLoss, 100)
	seedPlan(t, db, userID, "Late", now.AddDate(0, 0, -1), models.DietTypeWeightLoss, 100)

	stats, err := svc.Summarize(context.Background(), userID, 30)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-19", stats.MostActiveDay)
}

func TestSummarizeDefaultsPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	userID := uuid.New()

	now := mustParseTime(t, "2026-08-20T12:00:00Z")
	svc.now = func() time.Time { return now }

	seedPlan(t, db, userID, "Recent", now.AddDate(0, 0, -10), models.DietTypeWeightGain, 500)

	// Zero and negative periods fall back to 30 days.
	stats, err := svc.Summarize(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPlans)
}

func TestSummarizeSkipsInactivePlans(t *testing.T) {
	db := setupTestDB(t)
	planSvc := NewDietPlanService(db)
	svc := NewStatsService(db)
	userID := uuid.New()
	ctx := context.Background()

	now := mustParseTime(t, "2026-08-20T12:00:00Z")
	svc.now = func() time.Time { return now }

	seedPlan(t, db, userID, "Keep", now.AddDate(0, 0, -2), models.DietTypeWeightLoss, 1000)
	gone := seedPlan(t, db, userID, "Gone", now.AddDate(0, 0, -3), models.DietTypeWeightLoss, 1000)
	require.NoError(t, planSvc.Deactivate(ctx, userID, gone.ID))

	stats, err := svc.Summarize(ctx, userID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPlans)
	assert.Equal(t, float64(1000), stats.TotalCalories)
}

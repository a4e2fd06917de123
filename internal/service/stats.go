package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitcoach/dietplan-backend/internal/models"
)

// Statistics is a derived summary over the plans a user created inside
// a bounded time window. Computed on every read, never cached.
type Statistics struct {
	TotalPlans            int            `json:"total_plans"`
	TotalDays             int            `json:"total_days"`
	TotalCalories         float64        `json:"total_calories"`
	AverageCaloriesPerDay float64        `json:"average_calories_per_day"`
	MostActiveDay         string         `json:"most_active_day,omitempty"`
	DietTypeBreakdown     map[string]int `json:"diet_type_breakdown"`
}

// StatsService computes summary statistics over a user's active plans.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatsService creates a new StatsService instance
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

// Summarize computes statistics over the user's active plans created
// in the last periodDays days. A user with no plans in the window gets
// all-zero statistics and an empty breakdown, not an error.
func (s *StatsService) Summarize(ctx context.Context, userID uuid.UUID, periodDays int) (*Statistics, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	cutoff := s.now().UTC().AddDate(0, 0, -periodDays)

	var plans []models.DietPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND created_at >= ?", userID, true, cutoff).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		DietTypeBreakdown: make(map[string]int),
	}
	plansPerDay := make(map[string]int)

	for _, plan := range plans {
		day := BucketKey(plan.CreatedAt, GranularityDay)
		plansPerDay[day]++
		stats.TotalPlans++
		stats.TotalCalories += plan.TotalDailyCalories
		stats.DietTypeBreakdown[string(plan.DietType)]++
	}

	stats.TotalDays = len(plansPerDay)
	if stats.TotalDays > 0 {
		stats.AverageCaloriesPerDay = stats.TotalCalories / float64(stats.TotalDays)
	}

	// Ties on plan count go to the more recent day. Day keys sort
	// lexicographically in date order, so string comparison decides.
	for day, count := range plansPerDay {
		if count > plansPerDay[stats.MostActiveDay] ||
			(count == plansPerDay[stats.MostActiveDay] && day > stats.MostActiveDay) {
			stats.MostActiveDay = day
		}
	}

	return stats, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitcoach/dietplan-backend/internal/models"
	"github.com/fitcoach/dietplan-backend/internal/types"
)

// Granularity is the temporal resolution used to group plans.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity maps the groupBy query value to a Granularity,
// defaulting to day on empty input.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return GranularityDay, nil
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", types.NewValidationError("groupBy", fmt.Sprintf("must be day, week or month, got %q", s))
}

// MealSummary is the per-meal display projection inside a bucket.
type MealSummary struct {
	Name          string  `json:"name"`
	TotalCalories float64 `json:"total_calories"`
	FoodCount     int     `json:"food_count"`
}

// PlanSummary is the per-plan display projection inside a bucket.
type PlanSummary struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DietType      models.DietType `json:"diet_type"`
	TotalCalories float64         `json:"total_calories"`
	CreatedAt     time.Time       `json:"created_at"`
	MealSummaries []MealSummary   `json:"meal_summaries"`
}

// HistoryBucket groups the plans created within one day, week or
// month. Buckets are derived on every read and never persisted.
type HistoryBucket struct {
	BucketKey     string        `json:"bucket_key"`
	Plans         []PlanSummary `json:"plans"`
	TotalPlans    int           `json:"total_plans"`
	TotalCalories float64       `json:"total_calories"`
}

// Pagination describes the page of buckets returned by Aggregate.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// HistoryService regroups a user's active plans into time buckets.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Aggregate buckets the user's active plans at the given granularity
// and returns the requested page of buckets, most recent bucket first.
// Plans inside a bucket are ordered by creation time descending. Only
// buckets holding at least one plan exist; the calendar is not filled.
func (s *HistoryService) Aggregate(ctx context.Context, userID uuid.UUID, granularity Granularity, page, pageSize int) ([]HistoryBucket, Pagination, error) {
	var plans []models.DietPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	// Plans arrive newest first, so the first time a key shows up is
	// also the bucket order we want: the bucket holding the newest
	// plan comes first.
	var buckets []HistoryBucket
	index := make(map[string]int)
	for _, plan := range plans {
		key := BucketKey(plan.CreatedAt, granularity)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, HistoryBucket{BucketKey: key})
		}
		buckets[i].Plans = append(buckets[i].Plans, summarizePlan(plan))
		buckets[i].TotalPlans++
		buckets[i].TotalCalories += plan.TotalDailyCalories
	}

	return paginateBuckets(buckets, page, pageSize)
}

// BucketKey derives the bucket identifier for a timestamp at the given
// granularity, on the UTC calendar.
func BucketKey(t time.Time, granularity Granularity) string {
	t = t.UTC()
	switch granularity {
	case GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func summarizePlan(plan models.DietPlan) PlanSummary {
	meals := make([]MealSummary, len(plan.Meals))
	for i, meal := range plan.Meals {
		meals[i] = MealSummary{
			Name:          meal.Name,
			TotalCalories: meal.TotalCalories,
			FoodCount:     len(meal.Foods),
		}
	}
	return PlanSummary{
		ID:            plan.ID,
		Name:          plan.Name,
		DietType:      plan.DietType,
		TotalCalories: plan.TotalDailyCalories,
		CreatedAt:     plan.CreatedAt,
		MealSummaries: meals,
	}
}

// paginateBuckets slices the bucket list into pages. Pagination counts
// buckets, not plans, so a page caps the per-request work no matter
// how many plans a bucket holds.
func paginateBuckets(buckets []HistoryBucket, page, pageSize int) ([]HistoryBucket, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalItems := len(buckets)
	totalPages := (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	pageBuckets := buckets[start:end]
	if pageBuckets == nil {
		pageBuckets = []HistoryBucket{}
	}
	return pageBuckets, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}, nil
}

package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fitcoach/dietplan-backend/internal/models"
)

// backdate moves a plan's creation time so history tests can pin
// bucket boundaries.
func backdate(t *testing.T, db *gorm.DB, planID interface{}, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.DietPlan{}).
		Where("id = ?", planID).
		Update("created_at", createdAt).Error)
}

func TestHistoryEndpoint(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	userID := uuid.New().String()

	// Three plans on three distinct days within the last week.
	now := time.Now().UTC()
	for i, name := range []string{"Plan A", "Plan B", "Plan C"} {
		w := doRequest(t, router, "POST", "/api/v1/diet-plans", samplePlanBody(name, "Breakfast"), asUser(userID))
		require.Equal(t, 201, w.Code)
		planID := decodeBody(t, w)["dietPlan"].(map[string]interface{})["id"]
		backdate(t, db, planID, now.AddDate(0, 0, -(i+1)))
	}

	w := doRequest(t, router, "GET", "/api/v1/diet-history/user/"+userID+"?groupBy=day&page=1&limit=10", nil, asUser(userID))
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	history := body["history"].([]interface{})
	require.Len(t, history, 3)

	// Most recent bucket first, one plan each.
	var prevKey string
	for i, raw := range history {
		bucket := raw.(map[string]interface{})
		key := bucket["bucket_key"].(string)
		if i > 0 {
			assert.Less(t, key, prevKey)
		}
		prevKey = key
		assert.Equal(t, float64(1), bucket["total_plans"])
	}

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(1), pagination["total_pages"])
	assert.Equal(t, float64(3), pagination["total_items"])
}

func TestHistoryEndpointRejectsBadGroupBy(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	userID := uuid.New().String()

	w := doRequest(t, router, "GET", "/api/v1/diet-history/user/"+userID+"?groupBy=year", nil, asUser(userID))
	require.Equal(t, 400, w.Code)
	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "validation_error", errBody["code"])
}

func TestHistoryEndpointEmpty(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	userID := uuid.New().String()

	w := doRequest(t, router, "GET", "/api/v1/diet-history/user/"+userID, nil, asUser(userID))
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	assert.Empty(t, body["history"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(0), pagination["total_items"])
}

func TestStatsEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	userID := uuid.New().String()

	// Empty window first: zeros, not an error.
	w := doRequest(t, router, "GET", "/api/v1/diet-history/stats/"+userID, nil, asUser(userID))
	require.Equal(t, 200, w.Code)
	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["total_plans"])
	assert.Equal(t, float64(0), stats["total_days"])
	assert.Equal(t, float64(0), stats["average_calories_per_day"])
	assert.Empty(t, stats["diet_type_breakdown"])

	w = doRequest(t, router, "POST", "/api/v1/diet-plans", samplePlanBody("Meal 1", "Breakfast"), asUser(userID))
	require.Equal(t, 201, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/diet-history/stats/"+userID+"?period=7", nil, asUser(userID))
	require.Equal(t, 200, w.Code)
	stats = decodeBody(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_plans"])
	assert.Equal(t, float64(1), stats["total_days"])
	assert.Equal(t, float64(370), stats["total_calories"])
	breakdown := stats["diet_type_breakdown"].(map[string]interface{})
	assert.Equal(t, float64(1), breakdown["weight_loss"])
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fitcoach/dietplan-backend/internal/database"
	"github.com/fitcoach/dietplan-backend/internal/middleware"
	"github.com/fitcoach/dietplan-backend/internal/service"
)

const testAdminKey = "test-admin-key"

// setupTestRouter builds the API surface against an in-memory SQLite
// database, mirroring the production route table.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigrations(db, ""))

	tokenService := service.NewTokenService("test-secret")
	planHandler := NewDietPlanHandler(service.NewDietPlanService(db))
	histHandler := NewHistoryHandler(service.NewHistoryService(db), service.NewStatsService(db))

	adminHash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	require.NoError(t, err)

	router := gin.New()
	v1 := router.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(middleware.Identity(tokenService))
	{
		plans := protected.Group("/diet-plans")
		plans.POST("", planHandler.UpsertPlan)
		plans.GET("/:id", planHandler.GetPlan)
		plans.PUT("/:id", planHandler.UpdatePlan)
		plans.DELETE("/:id", planHandler.DeactivatePlan)
		plans.GET("/user/:ownerId", planHandler.ListPlans)

		history := protected.Group("/diet-history")
		history.GET("/user/:ownerId", histHandler.GetHistory)
		history.GET("/stats/:ownerId", histHandler.GetStats)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminOnly(string(adminHash)))
	admin.DELETE("/diet-plans/:id", planHandler.HardDeletePlan)

	return router, db, tokenService
}

// doRequest performs a JSON request against the test router.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func asUser(userID string) map[string]string {
	return map[string]string{"X-User-ID": userID}
}

// samplePlanBody builds an upsert payload the way the mobile client
// sends it: quantities arrive as free text, food calories are
// supplied, meal totals are not.
func samplePlanBody(name, mealName string) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"diet_type": "weight_loss",
		"meals": []map[string]interface{}{
			{
				"name": mealName,
				"time": "08:00",
				"foods": []map[string]interface{}{
					{"food_name": "Eggs", "quantity": "3 pieces", "calories": 210},
					{"food_name": "Toast", "quantity": "2 slices", "calories": 160},
				},
			},
		},
	}
}

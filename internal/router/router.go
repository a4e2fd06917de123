package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoach/dietplan-backend/internal/api"
	"github.com/fitcoach/dietplan-backend/internal/database"
	"github.com/fitcoach/dietplan-backend/internal/middleware"
)

// Options bundles everything the route table needs.
type Options struct {
	DB           *gorm.DB
	PlanHandler  *api.DietPlanHandler
	HistHandler  *api.HistoryHandler
	Validator    middleware.TokenValidator
	WriteLimiter *middleware.RateLimiter
	AdminKeyHash string
	CORSOrigins  []string
}

// Setup configures the application routes
func Setup(opts Options) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(opts.CORSOrigins))

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), opts.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := v1.Group("")
	protected.Use(middleware.Identity(opts.Validator))
	{
		plans := protected.Group("/diet-plans")
		{
			plans.POST("", opts.WriteLimiter.Middleware(), opts.PlanHandler.UpsertPlan)
			plans.GET("/:id", opts.PlanHandler.GetPlan)
			plans.PUT("/:id", opts.WriteLimiter.Middleware(), opts.PlanHandler.UpdatePlan)
			plans.DELETE("/:id", opts.PlanHandler.DeactivatePlan)
			plans.GET("/user/:ownerId", opts.PlanHandler.ListPlans)
		}

		history := protected.Group("/diet-history")
		{
			history.GET("/user/:ownerId", opts.HistHandler.GetHistory)
			history.GET("/stats/:ownerId", opts.HistHandler.GetStats)
		}
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AdminOnly(opts.AdminKeyHash))
	{
		admin.DELETE("/diet-plans/:id", opts.PlanHandler.HardDeletePlan)
	}

	return router
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitcoach/dietplan-backend/internal/middleware"
	"github.com/fitcoach/dietplan-backend/internal/service"
	"github.com/fitcoach/dietplan-backend/internal/types"
)

// DietPlanHandler serves the diet-plan CRUD surface.
type DietPlanHandler struct {
	plans *service.DietPlanService
}

// NewDietPlanHandler creates a new DietPlanHandler instance
func NewDietPlanHandler(plans *service.DietPlanService) *DietPlanHandler {
	return &DietPlanHandler{plans: plans}
}

// UpsertPlan handles POST /diet-plans. Creation is keyed by the plan
// name: posting an existing active name replaces that plan's contents
// in place. 201 on create, 200 on replace.
func (h *DietPlanHandler) UpsertPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, types.NewValidationError("body", err.Error()))
		return
	}
	if req.OwnerID != "" && req.OwnerID != userID.String() {
		respondError(c, types.NewValidationError("owner_id", "does not match the authenticated user"))
		return
	}

	plan, created, err := h.plans.Upsert(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"dietPlan": plan})
}

// UpdatePlan handles PUT /diet-plans/:id.
func (h *DietPlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, types.NewValidationError("id", "invalid plan id"))
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, types.NewValidationError("body", err.Error()))
		return
	}

	plan, err := h.plans.Update(c.Request.Context(), userID, planID, req.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dietPlan": plan})
}

// GetPlan handles GET /diet-plans/:id.
func (h *DietPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, types.NewValidationError("id", "invalid plan id"))
		return
	}

	plan, err := h.plans.Get(c.Request.Context(), userID, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dietPlan": plan})
}

// DeactivatePlan handles DELETE /diet-plans/:id (soft delete).
func (h *DietPlanHandler) DeactivatePlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, types.NewValidationError("id", "invalid plan id"))
		return
	}

	if err := h.plans.Deactivate(c.Request.Context(), userID, planID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPlans handles GET /diet-plans/user/:ownerId. The isActive query
// flag (default true) switches between active and deactivated plans.
func (h *DietPlanHandler) ListPlans(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		respondError(c, types.NewValidationError("ownerId", "invalid owner id"))
		return
	}

	active := true
	if c.Query("isActive") == "false" {
		active = false
	}

	plans, err := h.plans.List(c.Request.Context(), ownerID, active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dietPlans": plans})
}

// HardDeletePlan handles DELETE /admin/diet-plans/:id. Administrative
// cleanup; the route sits behind the admin-key middleware.
func (h *DietPlanHandler) HardDeletePlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, types.NewValidationError("id", "invalid plan id"))
		return
	}

	if err := h.plans.HardDelete(c.Request.Context(), planID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

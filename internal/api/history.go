package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitcoach/dietplan-backend/internal/service"
	"github.com/fitcoach/dietplan-backend/internal/types"
)

// HistoryHandler serves the read-side history and statistics routes.
type HistoryHandler struct {
	history *service.HistoryService
	stats   *service.StatsService
}

// NewHistoryHandler creates a new HistoryHandler instance
func NewHistoryHandler(history *service.HistoryService, stats *service.StatsService) *HistoryHandler {
	return &HistoryHandler{history: history, stats: stats}
}

// GetHistory handles GET /diet-history/user/:ownerId with groupBy
// (day|week|month, default day), page and limit query parameters.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		respondError(c, types.NewValidationError("ownerId", "invalid owner id"))
		return
	}

	granularity, err := service.ParseGranularity(c.Query("groupBy"))
	if err != nil {
		respondError(c, err)
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	buckets, pagination, err := h.history.Aggregate(c.Request.Context(), ownerID, granularity, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history":    buckets,
		"pagination": pagination,
	})
}

// GetStats handles GET /diet-history/stats/:ownerId with a period
// query parameter in days (default 30).
func (h *HistoryHandler) GetStats(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		respondError(c, types.NewValidationError("ownerId", "invalid owner id"))
		return
	}

	period := queryInt(c, "period", 30)

	stats, err := h.stats.Summarize(c.Request.Context(), ownerID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/dietplan-backend/internal/types"
)

// errorBody is the envelope every error response carries: a stable
// machine-readable code, a human message and a timestamp.
type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// respondError translates a service error into the HTTP error shape.
// Ownership failures use the not-found shape on purpose, so a caller
// cannot probe whether a foreign plan id exists.
func respondError(c *gin.Context, err error) {
	var vErr *types.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeError(c, http.StatusBadRequest, types.CodeValidation, vErr.Error())
	case errors.Is(err, types.ErrPlanNotFound), errors.Is(err, types.ErrWrongOwner):
		writeError(c, http.StatusNotFound, types.CodeNotFound, types.ErrPlanNotFound.Error())
	default:
		writeError(c, http.StatusInternalServerError, types.CodeInternal, "internal server error")
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": errorBody{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}})
}

// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/ai"
	"tripmind/internal/extract"
	"tripmind/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps pipeline failures to a status, a generic message and the diagnostic detail.
func writePlanError(c *gin.Context, err error) {
	var (
		pe *ai.ProviderError
		ue *ai.UnexpectedResponseError
	)
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(c, http.StatusGatewayTimeout, errorResponse{Error: "trip planning timed out", Detail: err.Error()})
	case errors.As(err, &pe), errors.As(err, &ue),
		errors.Is(err, extract.ErrNoStructuredData), errors.Is(err, extract.ErrMalformedStructuredData):
		writeJSON(c, http.StatusBadGateway, errorResponse{Error: "trip planning failed", Detail: err.Error()})
	default:
		writeJSON(c, http.StatusInternalServerError, errorResponse{Error: "internal error", Detail: err.Error()})
	}
}

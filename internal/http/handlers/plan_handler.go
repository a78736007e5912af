// README: Trip planning handler; runs the pipeline and returns JSON or a markdown download.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripmind/internal/export"
	"tripmind/internal/service"
	"tripmind/internal/types"
)

// Planner is the pipeline entry point the handler depends on.
type Planner interface {
	Plan(ctx context.Context, req service.Request) (*service.Result, error)
}

type PlanHandler struct {
	planner  Planner
	timeout  time.Duration
	currency string
}

func NewPlanHandler(planner Planner, timeout time.Duration, currency string) *PlanHandler {
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &PlanHandler{planner: planner, timeout: timeout, currency: currency}
}

type planReq struct {
	Query     string `json:"query"`
	HomeState string `json:"home_state"`
	HomeCity  string `json:"home_city"`
}

type planResp struct {
	Summary string             `json:"summary"`
	Trip    types.ResolvedTrip `json:"trip"`
	Plans   []types.CostedPlan `json:"plans"`
}

// Plan handles POST /api/trips/plan. ?format=markdown returns the summary as a
// file and ?format=pdf a printable document.
func (h *PlanHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.planner.Plan(ctx, service.Request{
		Query:     req.Query,
		HomeState: req.HomeState,
		HomeCity:  req.HomeCity,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}

	switch strings.ToLower(c.Query("format")) {
	case "markdown", "md":
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename()))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(res.Summary))
	case "pdf":
		body, err := export.PDF(export.Document{Trip: res.Trip, Plans: res.Plans, Summary: res.Summary, Currency: h.currency})
		if err != nil {
			writeJSON(c, http.StatusInternalServerError, errorResponse{Error: "pdf export failed", Detail: err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.PDFFilename()))
		c.Data(http.StatusOK, "application/pdf", body)
	default:
		writeJSON(c, http.StatusOK, planResp{Summary: res.Summary, Trip: res.Trip, Plans: res.Plans})
	}
}

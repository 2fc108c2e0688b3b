package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/traffic-count-collector/internal/service/collect"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/window"
)

const runIDHeader = "X-Run-ID"

type Collector interface {
	Run(ctx context.Context, req collect.Request) (*collect.Result, error)
}

// CollectRequest is the optional trigger body. Omitted flags default to true.
type CollectRequest struct {
	DT    string `json:"dt,omitempty"`
	Write *bool  `json:"write,omitempty"`
	Alert *bool  `json:"alert,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CollectHandler struct {
	collector  Collector
	calculator *window.Calculator
	now        func() time.Time
}

func NewCollectHandler(collector Collector, calculator *window.Calculator) *CollectHandler {
	return &CollectHandler{
		collector:  collector,
		calculator: calculator,
		now:        time.Now,
	}
}

func (h *CollectHandler) HandleCollect(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read request body", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "read_error", "failed to read request body")
		return
	}

	var req CollectRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			slog.WarnContext(ctx, "request unmarshal failed",
				slog.String("error", err.Error()),
				slog.String("path", c.Request.URL.Path),
			)
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}

	now := h.now()
	if req.DT != "" {
		parsed, err := h.calculator.ParseOverride(req.DT)
		if err != nil {
			slog.WarnContext(ctx, "invalid dt override",
				slog.String("dt", req.DT),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusBadRequest, "validation_error", "invalid dt, expected RFC3339 or YYYY-MM-DD HH:MM")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	runID := c.GetHeader(runIDHeader)
	if runID == "" {
		runID = uuid.NewString()
	}

	result, err := h.collector.Run(ctx, collect.Request{
		Now:          now,
		WriteEnabled: flagOrDefault(req.Write),
		AlertEnabled: flagOrDefault(req.Alert),
		RunID:        runID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "collection failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
		return
	}

	slog.InfoContext(ctx, "collection completed",
		slog.String("run_id", runID),
		slog.String("outcome", result.Outcome.String()),
		slog.Int("applied_writes", result.AppliedWrites()),
		slog.Bool("alert_dispatched", result.AlertDispatched),
	)

	c.JSON(http.StatusOK, result)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func flagOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

var _ Collector = (*collect.Service)(nil)

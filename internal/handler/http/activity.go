package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// ActivityHandler is the write surface used by monitoring agents.
type ActivityHandler interface {
	RecordIdleLog(w http.ResponseWriter, r *http.Request)
	CloseIdleLog(w http.ResponseWriter, r *http.Request)
	RecordAutoBreak(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{
		activityService: activityService,
	}
}

// RecordIdleLog handles POST /idle-logs
func (h *activityHandlerImpl) RecordIdleLog(w http.ResponseWriter, r *http.Request) {
	var req activity.RecordIdleLogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordIdleLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.activityService.RecordIdleLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Idle log recorded", result)
}

// CloseIdleLog handles PUT /idle-logs/{id}/end
func (h *activityHandlerImpl) CloseIdleLog(w http.ResponseWriter, r *http.Request) {
	var req activity.CloseIdleLogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CloseIdleLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.activityService.CloseIdleLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Idle log closed", result)
}

// RecordAutoBreak handles POST /auto-breaks
func (h *activityHandlerImpl) RecordAutoBreak(w http.ResponseWriter, r *http.Request) {
	var req activity.RecordAutoBreakRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordAutoBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.activityService.RecordAutoBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Auto-break recorded", result)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaumene/seerrdash/internal/controllers"
	"github.com/sirupsen/logrus"
)

// ActionsHandler serves request mutation endpoints
type ActionsHandler struct {
	actionsCtrl *controllers.ActionsController
	logger      *logrus.Logger
}

// NewActionsHandler creates a new actions handler
func NewActionsHandler(actionsCtrl *controllers.ActionsController, logger *logrus.Logger) *ActionsHandler {
	return &ActionsHandler{
		actionsCtrl: actionsCtrl,
		logger:      logger,
	}
}

func (h *ActionsHandler) requestID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, "Invalid request id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Delete handles DELETE /api/requests/{id}
func (h *ActionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requestID(w, r)
	if !ok {
		return
	}

	if err := h.actionsCtrl.DeleteRequest(r.Context(), id); err != nil {
		h.logger.WithError(err).WithField("request_id", id).Error("Failed to delete request")
		http.Error(w, "Failed to delete request", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "request deleted"})
}

// BulkDelete handles POST /api/requests/bulk-delete
func (h *ActionsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RequestIDs []int `json:"request_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(body.RequestIDs) == 0 {
		http.Error(w, "request_ids is required", http.StatusBadRequest)
		return
	}

	result := h.actionsCtrl.BulkDelete(r.Context(), body.RequestIDs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Retrigger handles POST /api/requests/{id}/retrigger
func (h *ActionsHandler) Retrigger(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requestID(w, r)
	if !ok {
		return
	}

	recreated, err := h.actionsCtrl.RetriggerRequest(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", id).Error("Failed to retrigger request")
		http.Error(w, "Failed to retrigger request", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":        "request retriggered",
		"new_request_id": recreated.ID,
	})
}

// UpdateStatus handles PUT /api/requests/{id}
func (h *ActionsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requestID(w, r)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.actionsCtrl.UpdateRequestStatus(r.Context(), id, body.Status); err != nil {
		h.logger.WithError(err).WithField("request_id", id).Error("Failed to update request status")
		http.Error(w, "Failed to update request status", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "request updated"})
}

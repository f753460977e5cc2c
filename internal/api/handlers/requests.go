package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaumene/seerrdash/internal/controllers"
	"github.com/sirupsen/logrus"
)

// RequestsHandler serves the enriched request listing
type RequestsHandler struct {
	syncCtrl *controllers.SyncController
	logger   *logrus.Logger
}

// NewRequestsHandler creates a new requests handler
func NewRequestsHandler(syncCtrl *controllers.SyncController, logger *logrus.Logger) *RequestsHandler {
	return &RequestsHandler{
		syncCtrl: syncCtrl,
		logger:   logger,
	}
}

// ServeHTTP handles GET /api/requests
func (h *RequestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	opts := controllers.ListOptions{
		Status:    q.Get("status"),
		MediaType: q.Get("mediaType"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = limit
	}

	result, err := h.syncCtrl.ListEnrichedRequests(r.Context(), opts)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list enriched requests")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "failed to fetch requests from Overseerr",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

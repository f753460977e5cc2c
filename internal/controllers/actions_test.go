package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/seerrdash/internal/config"
	"github.com/amaumene/seerrdash/internal/models"
	"github.com/amaumene/seerrdash/internal/services/overseerr"
)

func testActions(t *testing.T, handler http.Handler) *ActionsController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := overseerr.NewClient(&config.Config{
		OverseerrURL:    server.URL,
		OverseerrAPIKey: "test-key",
	}, testLogger())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return NewActionsController(client, testLogger())
}

func TestBulkDeleteContinuesPastFailures(t *testing.T) {
	actions := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/request/2" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	result := actions.BulkDelete(context.Background(), []int{1, 2, 3})

	if len(result.Deleted) != 2 {
		t.Errorf("Deleted = %v, the failure must not block the rest", result.Deleted)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("Failed = %v", result.Failed)
	}
	if _, ok := result.Failed[2]; !ok {
		t.Errorf("Failed should record id 2: %v", result.Failed)
	}
}

func TestRetriggerRequestDeletesAndRecreates(t *testing.T) {
	var deleted bool
	var created overseerr.CreateRequestInput

	actions := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/api/v1/request/42":
			json.NewEncoder(w).Encode(models.Request{
				ID: 42,
				Media: models.MediaStub{
					MediaType: models.MediaTypeTV,
					TmdbID:    1399,
				},
				Seasons: []models.RequestSeason{{SeasonNumber: 1}, {SeasonNumber: 2}},
			})
		case r.Method == "DELETE" && r.URL.Path == "/api/v1/request/42":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == "POST" && r.URL.Path == "/api/v1/request":
			if !deleted {
				t.Error("Create must happen after delete")
			}
			json.NewDecoder(r.Body).Decode(&created)
			json.NewEncoder(w).Encode(models.Request{ID: 99})
		default:
			t.Errorf("Unexpected call %s %s", r.Method, r.URL.Path)
			http.Error(w, "unexpected", http.StatusBadRequest)
		}
	}))

	recreated, err := actions.RetriggerRequest(context.Background(), 42)
	if err != nil {
		t.Fatalf("Retrigger failed: %v", err)
	}
	if recreated.ID != 99 {
		t.Errorf("New request id = %d", recreated.ID)
	}
	if created.MediaType != models.MediaTypeTV || created.MediaID != 1399 {
		t.Errorf("Created with %s %d", created.MediaType, created.MediaID)
	}
	if len(created.Seasons) != 2 {
		t.Errorf("Seasons = %v", created.Seasons)
	}
}

func TestRetriggerRejectsUnusableRequest(t *testing.T) {
	actions := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 7, "media": {"mediaType": "movie", "tmdbId": 0}}`)
	}))

	if _, err := actions.RetriggerRequest(context.Background(), 7); err == nil {
		t.Fatal("A request without a catalog id must not be retriggered")
	}
}

func TestUpdateRequestStatusValidatesAction(t *testing.T) {
	called := false
	actions := testActions(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.URL.Path != "/api/v1/request/5/approve" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := actions.UpdateRequestStatus(context.Background(), 5, "delete"); err == nil {
		t.Error("Unknown actions must be rejected")
	}
	if called {
		t.Error("Rejected action must not reach the API")
	}

	if err := actions.UpdateRequestStatus(context.Background(), 5, "approve"); err != nil {
		t.Errorf("Approve failed: %v", err)
	}
}

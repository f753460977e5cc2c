package overseerr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/seerrdash/internal/config"
	"github.com/amaumene/seerrdash/internal/models"
	"github.com/sirupsen/logrus"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := NewClient(&config.Config{
		OverseerrURL:    server.URL,
		OverseerrAPIKey: "test-key",
	}, logger)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestListAllRequestsWalksPages(t *testing.T) {
	makeRequests := func(ids ...int) []models.Request {
		out := make([]models.Request, 0, len(ids))
		for _, id := range ids {
			out = append(out, models.Request{
				ID:    id,
				Media: models.MediaStub{MediaType: models.MediaTypeMovie, TmdbID: 1000 + id},
			})
		}
		return out
	}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/request" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		if got := r.URL.Query().Get("filter"); got != "all" {
			t.Errorf("filter = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "added" {
			t.Errorf("sort = %q", got)
		}

		var page requestPage
		switch r.URL.Query().Get("skip") {
		case "":
			page.Results = makeRequests(1, 2)
			page.PageInfo.HasNextPage = true
			page.PageInfo.TotalResults = 3
		case "2":
			page.Results = makeRequests(3)
			page.PageInfo.TotalResults = 3
		default:
			t.Errorf("Unexpected skip %q", r.URL.Query().Get("skip"))
		}
		json.NewEncoder(w).Encode(page)
	}))

	all, err := client.ListAllRequests(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("ListAllRequests failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 requests across pages, got %d", len(all))
	}
	for i, want := range []int{1, 2, 3} {
		if all[i].ID != want {
			t.Errorf("all[%d].ID = %d, want %d", i, all[i].ID, want)
		}
	}
}

func TestListAllRequestsStopsOnShortPage(t *testing.T) {
	calls := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var page requestPage
		page.Results = []models.Request{{ID: 1, Media: models.MediaStub{MediaType: models.MediaTypeTV, TmdbID: 7}}}
		page.PageInfo.TotalResults = 1
		json.NewEncoder(w).Encode(page)
	}))

	all, err := client.ListAllRequests(context.Background(), "added", 100)
	if err != nil {
		t.Fatalf("ListAllRequests failed: %v", err)
	}
	if len(all) != 1 || calls != 1 {
		t.Errorf("Got %d requests in %d calls, want 1 in 1", len(all), calls)
	}
}

func TestListAllRequestsPageErrorFailsListing(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("skip") == "" {
			var page requestPage
			page.Results = make([]models.Request, 2)
			page.PageInfo.HasNextPage = true
			page.PageInfo.TotalResults = 4
			json.NewEncoder(w).Encode(page)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))

	if _, err := client.ListAllRequests(context.Background(), "", 2); err == nil {
		t.Fatal("A mid-walk page failure must fail the whole listing")
	}
}

func TestGetMediaDetails(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tv/1399" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"name": "Game of Thrones",
			"firstAirDate": "2011-04-17",
			"numberOfSeasons": 8,
			"episodeRunTime": [57],
			"externalIds": {"imdbId": "tt0944947"},
			"genres": [{"id": 18, "name": "Drama"}]
		}`)
	}))

	details, err := client.GetMediaDetails(context.Background(), models.MediaTypeTV, 1399)
	if err != nil {
		t.Fatalf("GetMediaDetails failed: %v", err)
	}
	if details.Name != "Game of Thrones" {
		t.Errorf("Name = %q", details.Name)
	}
	if details.NumberOfSeasons != 8 {
		t.Errorf("NumberOfSeasons = %d", details.NumberOfSeasons)
	}
	if details.ExternalIDs == nil || details.ExternalIDs.ImdbID != "tt0944947" {
		t.Errorf("ExternalIDs = %+v", details.ExternalIDs)
	}
	if len(details.Genres) != 1 || details.Genres[0].Name != "Drama" {
		t.Errorf("Genres = %+v", details.Genres)
	}
}

func TestGetMediaDetailsUpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	if _, err := client.GetMediaDetails(context.Background(), models.MediaTypeMovie, 603); err == nil {
		t.Fatal("Expected an error on upstream 404")
	}
}

func TestDeleteRequest(t *testing.T) {
	var gotMethod, gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteRequest(context.Background(), 42); err != nil {
		t.Fatalf("DeleteRequest failed: %v", err)
	}
	if gotMethod != "DELETE" || gotPath != "/api/v1/request/42" {
		t.Errorf("Got %s %s", gotMethod, gotPath)
	}
}

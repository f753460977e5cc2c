package controllers

import (
	"testing"

	"github.com/amaumene/seerrdash/internal/models"
)

func TestBuildStats(t *testing.T) {
	aggregated := []AggregatedRequest{
		{Base: models.Request{Status: models.RequestStatusPending}, Media: MergedMedia{MediaType: models.MediaTypeMovie}},
		{Base: models.Request{Status: models.RequestStatusApproved}, Media: MergedMedia{MediaType: models.MediaTypeMovie}},
		{Base: models.Request{Status: models.RequestStatusApproved}, Media: MergedMedia{MediaType: models.MediaTypeTV}},
		{Base: models.Request{Status: models.RequestStatusAvailable}, Media: MergedMedia{MediaType: models.MediaTypeTV}},
		{Base: models.Request{Status: models.RequestStatusFailed}, Media: MergedMedia{MediaType: models.MediaTypeMovie}},
	}

	stats := buildStats(aggregated)

	if stats.TotalRequests != 5 {
		t.Errorf("TotalRequests = %d", stats.TotalRequests)
	}
	if stats.TotalMovies != 3 || stats.TotalTVShows != 2 {
		t.Errorf("Kind totals = %d movies, %d shows", stats.TotalMovies, stats.TotalTVShows)
	}
	if stats.PendingCount != 1 || stats.ApprovedCount != 2 || stats.AvailableCount != 1 || stats.FailedCount != 1 {
		t.Errorf("Status counts = %+v", stats)
	}
	if stats.MoviesApproved != 1 || stats.TVApproved != 1 {
		t.Errorf("Per-kind approved = %d movies, %d shows", stats.MoviesApproved, stats.TVApproved)
	}
	if stats.MoviesFailed != 1 || stats.TVAvailable != 1 {
		t.Errorf("Per-kind counts = %+v", stats)
	}
}

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int
		wantPages   int
		wantNext    bool
		wantPrev    bool
	}{
		{"first of three", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last partial page", 3, 10, 25, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty set", 1, 10, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages || p.HasNext != tt.wantNext || p.HasPrev != tt.wantPrev {
				t.Errorf("buildPagination(%d, %d, %d) = %+v", tt.page, tt.limit, tt.total, p)
			}
		})
	}
}

func TestPresentRequestLabelsAndEmptySlices(t *testing.T) {
	agg := AggregatedRequest{
		Base: models.Request{
			ID:     42,
			Status: models.RequestStatusProcessing,
			Is4K:   true,
		},
		Media: MergedMedia{
			MediaType: models.MediaTypeMovie,
			TmdbID:    603,
			Status:    models.MediaStatusPartiallyAvailable,
			Title:     "The Matrix",
		},
		RequestIDs: []int{42},
	}

	view := presentRequest(agg)

	if view.RequestID != 42 || view.ID != 42 {
		t.Errorf("Request id = %d / %d", view.ID, view.RequestID)
	}
	if view.StatusLabel != "processing" {
		t.Errorf("StatusLabel = %q", view.StatusLabel)
	}
	if view.MediaStatusLabel != "partially_available" {
		t.Errorf("MediaStatusLabel = %q", view.MediaStatusLabel)
	}
	if !view.Is4K {
		t.Error("Is4K lost")
	}
	if view.Seasons == nil || view.Media.Genres == nil || view.Media.AllSeasons == nil {
		t.Error("Slice fields must serialize as empty arrays, not null")
	}
	if view.SeasonCount != 0 {
		t.Errorf("SeasonCount = %d", view.SeasonCount)
	}
}

func TestMatchesSearch(t *testing.T) {
	media := MergedMedia{Title: "Game of Thrones", Overview: "Noble families vie for the throne."}

	if !matchesSearch(media, "thrones") {
		t.Error("Title match failed")
	}
	if !matchesSearch(media, "noble") {
		t.Error("Overview match failed")
	}
	if matchesSearch(media, "dragons") {
		t.Error("False positive")
	}
}

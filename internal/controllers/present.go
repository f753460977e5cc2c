package controllers

import (
	"strings"
	"time"

	"github.com/amaumene/seerrdash/internal/models"
)

// MediaView is the media block of the response contract
type MediaView struct {
	ID               int                    `json:"id"`
	MediaType        models.MediaType       `json:"media_type"`
	TmdbID           int                    `json:"tmdb_id"`
	TvdbID           int                    `json:"tvdb_id,omitempty"`
	ImdbID           string                 `json:"imdb_id,omitempty"`
	Title            string                 `json:"title"`
	OriginalTitle    string                 `json:"original_title,omitempty"`
	ReleaseDate      string                 `json:"release_date,omitempty"`
	FirstAirDate     string                 `json:"first_air_date,omitempty"`
	LastAirDate      string                 `json:"last_air_date,omitempty"`
	PosterPath       string                 `json:"poster_path,omitempty"`
	BackdropPath     string                 `json:"backdrop_path,omitempty"`
	Overview         string                 `json:"overview,omitempty"`
	Tagline          string                 `json:"tagline,omitempty"`
	Status           int                    `json:"status"`
	Status4K         int                    `json:"status4k,omitempty"`
	VoteAverage      float64                `json:"vote_average,omitempty"`
	VoteCount        int                    `json:"vote_count,omitempty"`
	Popularity       float64                `json:"popularity,omitempty"`
	Runtime          int                    `json:"runtime,omitempty"`
	EpisodeRuntime   int                    `json:"episode_runtime,omitempty"`
	Genres           []models.Genre         `json:"genres"`
	Credits          *models.Credits        `json:"credits,omitempty"`
	AllSeasons       []models.SeasonDetails `json:"all_seasons"`
	NumberOfSeasons  int                    `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int                    `json:"number_of_episodes,omitempty"`
}

// RequestView is one entry of the response contract
type RequestView struct {
	ID                   int                    `json:"id"`
	RequestID            int                    `json:"request_id"`
	Status               int                    `json:"status"`
	StatusLabel          string                 `json:"status_label"`
	MediaStatus          int                    `json:"media_status"`
	MediaStatusLabel     string                 `json:"media_status_label"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	RequestedBy          models.Requester       `json:"requested_by"`
	Media                MediaView              `json:"media"`
	Seasons              []models.RequestSeason `json:"seasons"`
	SeasonCount          int                    `json:"season_count"`
	AggregatedRequestIDs []int                  `json:"aggregated_request_ids"`
	Is4K                 bool                   `json:"is4k"`
}

// Stats summarizes the filtered (unpaginated) result set
type Stats struct {
	TotalRequests int `json:"total_requests"`
	TotalMovies   int `json:"total_movies"`
	TotalTVShows  int `json:"total_tv_shows"`

	PendingCount     int `json:"pending_count"`
	ApprovedCount    int `json:"approved_count"`
	ProcessingCount  int `json:"processing_count"`
	FailedCount      int `json:"failed_count"`
	AvailableCount   int `json:"available_count"`
	UnavailableCount int `json:"unavailable_count"`
	DeletedCount     int `json:"deleted_count"`

	MoviesPending     int `json:"movies_pending"`
	MoviesApproved    int `json:"movies_approved"`
	MoviesProcessing  int `json:"movies_processing"`
	MoviesFailed      int `json:"movies_failed"`
	MoviesAvailable   int `json:"movies_available"`
	MoviesUnavailable int `json:"movies_unavailable"`
	MoviesDeleted     int `json:"movies_deleted"`

	TVPending     int `json:"tv_pending"`
	TVApproved    int `json:"tv_approved"`
	TVProcessing  int `json:"tv_processing"`
	TVFailed      int `json:"tv_failed"`
	TVAvailable   int `json:"tv_available"`
	TVUnavailable int `json:"tv_unavailable"`
	TVDeleted     int `json:"tv_deleted"`
}

// Pagination describes the returned slice of the filtered set
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// RequestListResult is the full payload returned to the presentation layer
type RequestListResult struct {
	Requests   []RequestView `json:"requests"`
	Stats      Stats         `json:"stats"`
	Pagination Pagination    `json:"pagination"`
	Warnings   []string      `json:"warnings,omitempty"`

	// Dropped counts malformed upstream requests excluded from the set;
	// surfaced in logs, not in the response body.
	Dropped int `json:"-"`
}

// presentRequests shapes aggregated records into the response contract
func presentRequests(aggregated []AggregatedRequest) []RequestView {
	views := make([]RequestView, 0, len(aggregated))
	for _, agg := range aggregated {
		views = append(views, presentRequest(agg))
	}
	return views
}

func presentRequest(agg AggregatedRequest) RequestView {
	m := agg.Media
	seasons := agg.Seasons
	if seasons == nil {
		seasons = []models.RequestSeason{}
	}
	genres := m.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	allSeasons := m.AllSeasons
	if allSeasons == nil {
		allSeasons = []models.SeasonDetails{}
	}

	return RequestView{
		ID:               agg.Base.ID,
		RequestID:        agg.Base.ID,
		Status:           agg.Base.Status,
		StatusLabel:      models.RequestStatusLabel(agg.Base.Status),
		MediaStatus:      m.Status,
		MediaStatusLabel: models.MediaStatusLabel(m.Status),
		CreatedAt:        agg.Base.CreatedAt,
		UpdatedAt:        agg.Base.UpdatedAt,
		RequestedBy:      agg.Base.RequestedBy,
		Media: MediaView{
			ID:               m.ID,
			MediaType:        m.MediaType,
			TmdbID:           m.TmdbID,
			TvdbID:           m.TvdbID,
			ImdbID:           m.ImdbID,
			Title:            m.Title,
			OriginalTitle:    m.OriginalTitle,
			ReleaseDate:      m.ReleaseDate,
			FirstAirDate:     m.FirstAirDate,
			LastAirDate:      m.LastAirDate,
			PosterPath:       m.PosterPath,
			BackdropPath:     m.BackdropPath,
			Overview:         m.Overview,
			Tagline:          m.Tagline,
			Status:           m.Status,
			Status4K:         m.Status4K,
			VoteAverage:      m.VoteAverage,
			VoteCount:        m.VoteCount,
			Popularity:       m.Popularity,
			Runtime:          m.Runtime,
			EpisodeRuntime:   m.EpisodeRuntime,
			Genres:           genres,
			Credits:          m.Credits,
			AllSeasons:       allSeasons,
			NumberOfSeasons:  m.NumberOfSeasons,
			NumberOfEpisodes: m.NumberOfEpisodes,
		},
		Seasons:              seasons,
		SeasonCount:          len(seasons),
		AggregatedRequestIDs: agg.RequestIDs,
		Is4K:                 agg.Base.Is4K,
	}
}

// buildStats computes per-status and per-kind counts over the filtered set
func buildStats(aggregated []AggregatedRequest) Stats {
	var stats Stats
	stats.TotalRequests = len(aggregated)

	for _, agg := range aggregated {
		isMovie := agg.Media.MediaType == models.MediaTypeMovie
		if isMovie {
			stats.TotalMovies++
		} else {
			stats.TotalTVShows++
		}

		switch agg.Base.Status {
		case models.RequestStatusPending:
			stats.PendingCount++
			countKind(isMovie, &stats.MoviesPending, &stats.TVPending)
		case models.RequestStatusApproved:
			stats.ApprovedCount++
			countKind(isMovie, &stats.MoviesApproved, &stats.TVApproved)
		case models.RequestStatusProcessing:
			stats.ProcessingCount++
			countKind(isMovie, &stats.MoviesProcessing, &stats.TVProcessing)
		case models.RequestStatusFailed:
			stats.FailedCount++
			countKind(isMovie, &stats.MoviesFailed, &stats.TVFailed)
		case models.RequestStatusAvailable:
			stats.AvailableCount++
			countKind(isMovie, &stats.MoviesAvailable, &stats.TVAvailable)
		case models.RequestStatusUnavailable:
			stats.UnavailableCount++
			countKind(isMovie, &stats.MoviesUnavailable, &stats.TVUnavailable)
		case models.RequestStatusDeleted:
			stats.DeletedCount++
			countKind(isMovie, &stats.MoviesDeleted, &stats.TVDeleted)
		}
	}

	return stats
}

func countKind(isMovie bool, movie, tv *int) {
	if isMovie {
		*movie++
	} else {
		*tv++
	}
}

// buildPagination describes a page slice of total items
func buildPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}
}

func normalizeSearch(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

// matchesSearch matches the free-text filter against the enriched title
// and overview
func matchesSearch(m MergedMedia, search string) bool {
	if strings.Contains(strings.ToLower(m.Title), search) {
		return true
	}
	return strings.Contains(strings.ToLower(m.Overview), search)
}

package controllers

import (
	"github.com/amaumene/seerrdash/internal/models"
)

// MergedMedia is the display-ready media block for one request after
// enrichment: catalog metadata overlaid on the request's media stub.
type MergedMedia struct {
	ID               int
	MediaType        models.MediaType
	TmdbID           int
	TvdbID           int
	Status           int
	Status4K         int
	Title            string
	OriginalTitle    string
	Overview         string
	Tagline          string
	ReleaseDate      string
	FirstAirDate     string
	LastAirDate      string
	PosterPath       string
	BackdropPath     string
	VoteAverage      float64
	VoteCount        int
	Popularity       float64
	Runtime          int
	EpisodeRuntime   int
	Genres           []models.Genre
	ImdbID           string
	Credits          *models.Credits
	AllSeasons       []models.SeasonDetails
	NumberOfSeasons  int
	NumberOfEpisodes int
}

// firstNonEmpty returns the first non-empty candidate. Every "fill if
// richer" fallback chain goes through here so the contract (never
// overwrite good data with nothing) is enforced in one place.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// knownTitle filters out the placeholder so a stub value only counts as a
// fallback when it is a real title.
func knownTitle(title string) string {
	if title == models.UnknownTitle {
		return ""
	}
	return title
}

// resolveTitle implements the title fallback chain: kind-appropriate
// catalog field, then the other catalog field, then a non-placeholder
// value already on the stub, then the catalog's original title, and only
// then the placeholder. A known good stub title is never replaced by the
// placeholder.
func resolveTitle(stub models.MediaStub, details *models.MediaDetails) string {
	var d models.MediaDetails
	if details != nil {
		d = *details
	}

	primary, secondary := d.Title, d.Name
	if stub.MediaType == models.MediaTypeTV {
		primary, secondary = d.Name, d.Title
	}

	title := firstNonEmpty(
		primary,
		secondary,
		knownTitle(stub.Title),
		knownTitle(stub.Name),
		d.OriginalTitle,
		d.OriginalName,
	)
	if title == "" {
		return models.UnknownTitle
	}
	return title
}

// mergeMedia overlays catalog details onto a request's media stub. A nil
// details (enrichment failed and nothing cached) degrades to the stub's
// own fields.
func mergeMedia(stub models.MediaStub, details *models.MediaDetails) MergedMedia {
	var d models.MediaDetails
	if details != nil {
		d = *details
	}

	merged := MergedMedia{
		ID:        stub.ID,
		MediaType: stub.MediaType,
		TmdbID:    stub.TmdbID,
		Status:    stub.Status,
		Status4K:  stub.Status4K,

		Title:         resolveTitle(stub, details),
		OriginalTitle: firstNonEmpty(d.OriginalTitle, d.OriginalName),
		Overview:      firstNonEmpty(d.Overview, stub.Overview),
		Tagline:       d.Tagline,
		ReleaseDate:   firstNonEmpty(d.ReleaseDate, d.FirstAirDate, stub.ReleaseDate),
		FirstAirDate:  d.FirstAirDate,
		LastAirDate:   d.LastAirDate,
		PosterPath:    firstNonEmpty(d.PosterPath, stub.PosterPath),
		BackdropPath:  firstNonEmpty(d.BackdropPath, stub.BackdropPath),

		VoteAverage: d.VoteAverage,
		VoteCount:   d.VoteCount,
		Popularity:  d.Popularity,
		Runtime:     d.Runtime,
		Genres:      d.Genres,
		Credits:     d.Credits,
	}

	merged.TvdbID = stub.TvdbID
	merged.ImdbID = d.ImdbID
	if d.ExternalIDs != nil {
		if merged.ImdbID == "" {
			merged.ImdbID = d.ExternalIDs.ImdbID
		}
		if merged.TvdbID == 0 {
			merged.TvdbID = d.ExternalIDs.TvdbID
		}
	}

	if len(d.EpisodeRunTime) > 0 {
		merged.EpisodeRuntime = d.EpisodeRunTime[0]
	}

	if stub.MediaType == models.MediaTypeTV {
		merged.AllSeasons = d.Seasons
		merged.NumberOfSeasons = d.NumberOfSeasons
		merged.NumberOfEpisodes = d.NumberOfEpisodes
	}

	return merged
}

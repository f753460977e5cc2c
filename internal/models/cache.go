package models

import "time"

// Genre is one genre tag from the catalog
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SeasonDetails describes one season of a show as known to the catalog
type SeasonDetails struct {
	ID           int    `json:"id"`
	SeasonNumber int    `json:"seasonNumber"`
	Name         string `json:"name,omitempty"`
	Overview     string `json:"overview,omitempty"`
	EpisodeCount int    `json:"episodeCount,omitempty"`
	AirDate      string `json:"airDate,omitempty"`
	PosterPath   string `json:"posterPath,omitempty"`
}

// ExternalIDs carries cross-provider identifiers for a media item
type ExternalIDs struct {
	ImdbID string `json:"imdbId,omitempty"`
	TvdbID int    `json:"tvdbId,omitempty"`
}

// CastMember is one cast credit from the catalog
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// Credits holds the cast list for a media item
type Credits struct {
	Cast []CastMember `json:"cast,omitempty"`
}

// MediaDetails is the rich catalog metadata for one Media Key. Movies
// populate Title/ReleaseDate/Runtime; shows populate Name/FirstAirDate/
// Seasons. Fields intermittently omitted upstream stay zero-valued.
type MediaDetails struct {
	Title            string          `json:"title,omitempty"`
	Name             string          `json:"name,omitempty"`
	OriginalTitle    string          `json:"originalTitle,omitempty"`
	OriginalName     string          `json:"originalName,omitempty"`
	Overview         string          `json:"overview,omitempty"`
	Tagline          string          `json:"tagline,omitempty"`
	PosterPath       string          `json:"posterPath,omitempty"`
	BackdropPath     string          `json:"backdropPath,omitempty"`
	ReleaseDate      string          `json:"releaseDate,omitempty"`
	FirstAirDate     string          `json:"firstAirDate,omitempty"`
	LastAirDate      string          `json:"lastAirDate,omitempty"`
	VoteAverage      float64         `json:"voteAverage,omitempty"`
	VoteCount        int             `json:"voteCount,omitempty"`
	Popularity       float64         `json:"popularity,omitempty"`
	Runtime          int             `json:"runtime,omitempty"`
	EpisodeRunTime   []int           `json:"episodeRunTime,omitempty"`
	Genres           []Genre         `json:"genres,omitempty"`
	ImdbID           string          `json:"imdbId,omitempty"`
	ExternalIDs      *ExternalIDs    `json:"externalIds,omitempty"`
	Credits          *Credits        `json:"credits,omitempty"`
	Seasons          []SeasonDetails `json:"seasons,omitempty"`
	NumberOfSeasons  int             `json:"numberOfSeasons,omitempty"`
	NumberOfEpisodes int             `json:"numberOfEpisodes,omitempty"`
}

// CacheEntry is the persisted enrichment state for one Media Key. Exactly
// one entry exists per key; it is superseded by a newer watermark, never
// expired by time.
type CacheEntry struct {
	TmdbID    int
	MediaType MediaType

	Details MediaDetails

	// LastFetchedAt records when Details was last pulled from the catalog
	LastFetchedAt time.Time

	// LastRequestUpdatedAt is the watermark: the maximum updatedAt among
	// all requests associated with this key at the time of the last fetch
	// or touch. The entry is fresh for a caller observing a max updatedAt
	// at or before this value.
	LastRequestUpdatedAt time.Time

	// RequestIDs is the set of request ids last seen referencing this key
	RequestIDs []int
}

// Key returns the entry's Media Key
func (e *CacheEntry) Key() MediaKey {
	return MediaKey{TmdbID: e.TmdbID, MediaType: e.MediaType}
}

// Fresh reports whether the entry can serve a caller that observed
// maxUpdated as the newest request timestamp for this key.
func (e *CacheEntry) Fresh(maxUpdated time.Time) bool {
	if e.LastRequestUpdatedAt.IsZero() || maxUpdated.IsZero() {
		return false
	}
	return !maxUpdated.After(e.LastRequestUpdatedAt)
}

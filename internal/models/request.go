package models

import "time"

// Requester identifies the user who created a request
type Requester struct {
	ID          int    `json:"id"`
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// RequestSeason is one season entry attached to a show request
type RequestSeason struct {
	ID           int `json:"id"`
	SeasonNumber int `json:"seasonNumber"`
	Status       int `json:"status"`
	Status4K     int `json:"status4k,omitempty"`
}

// MediaStub is the thin media block embedded in a request. Title and art
// fields are frequently absent or wrong for show requests and are only
// trustworthy after enrichment.
type MediaStub struct {
	ID           int             `json:"id"`
	MediaType    MediaType       `json:"mediaType"`
	TmdbID       int             `json:"tmdbId"`
	TvdbID       int             `json:"tvdbId,omitempty"`
	Status       int             `json:"status"`
	Status4K     int             `json:"status4k,omitempty"`
	Title        string          `json:"title,omitempty"`
	Name         string          `json:"name,omitempty"`
	ReleaseDate  string          `json:"releaseDate,omitempty"`
	PosterPath   string          `json:"posterPath,omitempty"`
	BackdropPath string          `json:"backdropPath,omitempty"`
	Overview     string          `json:"overview,omitempty"`
	Seasons      []RequestSeason `json:"seasons,omitempty"`
}

// Request is one media request as returned by Overseerr's request listing
type Request struct {
	ID          int             `json:"id"`
	Status      int             `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	RequestedBy Requester       `json:"requestedBy"`
	Media       MediaStub       `json:"media"`
	Seasons     []RequestSeason `json:"seasons,omitempty"`
	Is4K        bool            `json:"is4k,omitempty"`
}

// Valid reports whether the request carries the fields every downstream
// step depends on. Requests failing this check are dropped, never processed.
func (r *Request) Valid() bool {
	if r.Media.TmdbID == 0 {
		return false
	}
	return r.Media.MediaType == MediaTypeMovie || r.Media.MediaType == MediaTypeTV
}

// Key returns the request's Media Key
func (r *Request) Key() MediaKey {
	return MediaKey{TmdbID: r.Media.TmdbID, MediaType: r.Media.MediaType}
}

// Watermark returns the timestamp used for cache freshness decisions:
// updatedAt, falling back to createdAt when the service omits it.
func (r *Request) Watermark() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// MediaKey identifies one piece of media independent of how many requests
// reference it. It is the unit of enrichment and caching.
type MediaKey struct {
	TmdbID    int
	MediaType MediaType
}

package models

// MediaType represents the type of media (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Request status values as reported by Overseerr for a request
const (
	RequestStatusPending     = 1
	RequestStatusApproved    = 2
	RequestStatusProcessing  = 3
	RequestStatusFailed      = 4
	RequestStatusAvailable   = 5
	RequestStatusUnavailable = -1
	RequestStatusDeleted     = -2
)

// Media status values as reported by Overseerr for the media itself
const (
	MediaStatusUnknown            = 1
	MediaStatusPartial            = 2
	MediaStatusProcessing         = 3
	MediaStatusPartiallyAvailable = 4
	MediaStatusAvailable          = 5
	MediaStatusUnavailable        = 6
)

// UnknownTitle is the placeholder used when no title could be resolved
const UnknownTitle = "Unknown Title"

// RequestStatusLabel returns the display label for a request status
func RequestStatusLabel(status int) string {
	switch status {
	case RequestStatusPending:
		return "pending"
	case RequestStatusApproved:
		return "approved"
	case RequestStatusProcessing:
		return "processing"
	case RequestStatusFailed:
		return "failed"
	case RequestStatusAvailable:
		// Also "completed" in some forks
		return "available"
	case RequestStatusUnavailable:
		return "unavailable"
	case RequestStatusDeleted:
		return "deleted"
	}
	return "unknown"
}

// ParseRequestStatus maps a status filter keyword to its numeric value.
// The second return value is false for unrecognized keywords.
func ParseRequestStatus(label string) (int, bool) {
	switch label {
	case "pending":
		return RequestStatusPending, true
	case "approved":
		return RequestStatusApproved, true
	case "processing":
		return RequestStatusProcessing, true
	case "failed":
		return RequestStatusFailed, true
	case "available", "completed":
		return RequestStatusAvailable, true
	case "unavailable":
		return RequestStatusUnavailable, true
	case "deleted":
		return RequestStatusDeleted, true
	}
	return 0, false
}

// MediaStatusLabel returns the display label for a media status
func MediaStatusLabel(status int) string {
	switch status {
	case MediaStatusPartial:
		return "partial"
	case MediaStatusProcessing:
		return "processing"
	case MediaStatusPartiallyAvailable:
		return "partially_available"
	case MediaStatusAvailable:
		return "available"
	case MediaStatusUnavailable:
		return "unavailable"
	}
	return "unknown"
}

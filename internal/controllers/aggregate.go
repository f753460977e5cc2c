package controllers

import (
	"sort"
	"time"

	"github.com/amaumene/seerrdash/internal/models"
)

// enrichedRequest pairs a request with its merged media block
type enrichedRequest struct {
	Request models.Request
	Media   MergedMedia
}

// AggregatedRequest is one display-ready record representing every request
// that shares a Media Key. Movies are always 1:1; shows collapse their
// per-season requests into one entry.
type AggregatedRequest struct {
	Base       models.Request
	Media      MergedMedia
	Seasons    []models.RequestSeason
	RequestIDs []int
}

// requestSeasons returns the season list attached to a request. Overseerr
// reports it at the request level, older payloads nest it in the media stub.
func requestSeasons(req models.Request) []models.RequestSeason {
	if len(req.Seasons) > 0 {
		return req.Seasons
	}
	return req.Media.Seasons
}

// aggregateByMediaKey collapses show requests sharing one Media Key into a
// single record and passes movies through unchanged. Output order follows
// each key's first appearance in the input, which keeps pagination stable
// across calls for an unchanged upstream ordering.
func aggregateByMediaKey(requests []enrichedRequest) []AggregatedRequest {
	type slot struct {
		movie *enrichedRequest
		key   models.MediaKey
	}
	groups := make(map[models.MediaKey][]enrichedRequest)
	var slots []slot

	for i := range requests {
		er := &requests[i]
		if er.Request.Media.MediaType != models.MediaTypeTV {
			// movies stay 1:1
			slots = append(slots, slot{movie: er})
			continue
		}

		key := er.Request.Key()
		if _, ok := groups[key]; !ok {
			slots = append(slots, slot{key: key})
		}
		groups[key] = append(groups[key], *er)
	}

	out := make([]AggregatedRequest, 0, len(slots))
	for _, s := range slots {
		if s.movie != nil {
			out = append(out, AggregatedRequest{
				Base:       s.movie.Request,
				Media:      s.movie.Media,
				Seasons:    requestSeasons(s.movie.Request),
				RequestIDs: []int{s.movie.Request.ID},
			})
			continue
		}
		out = append(out, aggregateGroup(groups[s.key]))
	}

	return out
}

// aggregateGroup merges one show's requests: the first member is the
// structural base, seasons are unioned by season number with the later
// request's entry winning on conflict, and every member id is recorded so
// downstream actions can reach all underlying requests.
func aggregateGroup(group []enrichedRequest) AggregatedRequest {
	base := group[0]
	agg := AggregatedRequest{
		Base:  base.Request,
		Media: base.Media,
	}

	type seasonSource struct {
		season    models.RequestSeason
		updatedAt time.Time
	}
	byNumber := make(map[int]seasonSource)
	var numbers []int

	for _, member := range group {
		agg.RequestIDs = append(agg.RequestIDs, member.Request.ID)
		updated := member.Request.Watermark()
		for _, season := range requestSeasons(member.Request) {
			existing, ok := byNumber[season.SeasonNumber]
			if !ok {
				byNumber[season.SeasonNumber] = seasonSource{season, updated}
				numbers = append(numbers, season.SeasonNumber)
				continue
			}
			if updated.After(existing.updatedAt) {
				byNumber[season.SeasonNumber] = seasonSource{season, updated}
			}
		}
	}

	sort.Ints(numbers)
	for _, n := range numbers {
		agg.Seasons = append(agg.Seasons, byNumber[n].season)
	}

	return agg
}

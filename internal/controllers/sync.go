package controllers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amaumene/seerrdash/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// RequestService lists requests from the upstream request manager
type RequestService interface {
	ListAllRequests(ctx context.Context, sortBy string, pageSize int) ([]models.Request, error)
}

// Catalog fetches rich metadata for one Media Key
type Catalog interface {
	GetMediaDetails(ctx context.Context, mediaType models.MediaType, tmdbID int) (*models.MediaDetails, error)
}

// CacheStore is the persistent enrichment cache contract
type CacheStore interface {
	GetCacheEntry(key models.MediaKey) (*models.CacheEntry, error)
	UpsertCacheEntry(entry *models.CacheEntry) error
	TouchCacheEntry(key models.MediaKey, watermark time.Time, requestIDs []int) error
}

// SyncController reconciles the upstream request listing with cached
// catalog metadata and produces the enriched, aggregated request list.
type SyncController struct {
	store     CacheStore
	requests  RequestService
	catalog   Catalog
	batchSize int
	pageSize  int
	logger    *logrus.Logger
}

// NewSyncController creates a new sync controller
func NewSyncController(store CacheStore, requests RequestService, catalog Catalog, batchSize, pageSize int, logger *logrus.Logger) *SyncController {
	if batchSize < 1 {
		batchSize = 1
	}
	if pageSize < 1 {
		pageSize = 1000
	}
	return &SyncController{
		store:     store,
		requests:  requests,
		catalog:   catalog,
		batchSize: batchSize,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// ListOptions are the caller-supplied filters for a listing call
type ListOptions struct {
	Status    string
	MediaType string
	Search    string
	SortBy    string
	Page      int
	Limit     int
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
}

// keyGroup tracks every request observed for one Media Key in this call
type keyGroup struct {
	key        models.MediaKey
	requestIDs []int
	maxUpdated time.Time
}

// ListEnrichedRequests is the read path behind the dashboard: it fetches
// the full request listing, enriches it from the cache (refreshing stale
// keys from the catalog with bounded concurrency), aggregates per-season
// show requests, then filters, counts and paginates.
//
// A listing failure aborts the call. Per-key catalog failures degrade to
// stale-or-absent metadata plus a warning. Cache write failures are logged
// and ignored: the freshly fetched metadata still serves this response.
func (c *SyncController) ListEnrichedRequests(ctx context.Context, opts ListOptions) (*RequestListResult, error) {
	opts.normalize()

	// Step 1: full fetch. Filtering must wait until after enrichment
	// because search matches on enriched titles and overviews.
	all, err := c.requests.ListAllRequests(ctx, opts.SortBy, c.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list upstream requests: %w", err)
	}

	valid, dropped := splitMalformed(all)
	if dropped > 0 {
		c.logger.WithField("dropped", dropped).Warn("Dropped malformed requests from upstream listing")
	}

	// Step 2: key extraction. One group per Media Key deduplicates the
	// catalog calls that per-season show requests would otherwise repeat.
	groups, order := groupByKey(valid)

	// Steps 3+4: cache resolution and batched refresh
	resolved, warnings := c.resolveMetadata(ctx, groups, order)

	// Step 5: merge
	enriched := make([]enrichedRequest, 0, len(valid))
	for _, req := range valid {
		enriched = append(enriched, enrichedRequest{
			Request: req,
			Media:   mergeMedia(req.Media, resolved[req.Key()]),
		})
	}

	// Step 6: aggregate
	aggregated := aggregateByMediaKey(enriched)

	// Step 7: filter
	filtered := filterAggregated(aggregated, opts)

	// Step 8: stats over the filtered, unpaginated set
	stats := buildStats(filtered)

	// Step 9: paginate last
	total := len(filtered)
	skip := (opts.Page - 1) * opts.Limit
	if skip > total {
		skip = total
	}
	end := skip + opts.Limit
	if end > total {
		end = total
	}

	result := &RequestListResult{
		Requests:   presentRequests(filtered[skip:end]),
		Stats:      stats,
		Pagination: buildPagination(opts.Page, opts.Limit, total),
		Warnings:   warnings,
		Dropped:    dropped,
	}

	c.logger.WithFields(logrus.Fields{
		"upstream":   len(all),
		"aggregated": len(aggregated),
		"filtered":   total,
		"returned":   len(result.Requests),
		"warnings":   len(warnings),
	}).Debug("Enriched request listing complete")

	return result, nil
}

// splitMalformed drops requests missing the media block, catalog id or
// media kind. They cannot be enriched, aggregated or displayed.
func splitMalformed(all []models.Request) ([]models.Request, int) {
	valid := make([]models.Request, 0, len(all))
	dropped := 0
	for _, req := range all {
		if !req.Valid() {
			dropped++
			continue
		}
		valid = append(valid, req)
	}
	return valid, dropped
}

// groupByKey builds one group per Media Key with the ids and the newest
// update timestamp of all requests referencing it.
func groupByKey(requests []models.Request) (map[models.MediaKey]*keyGroup, []models.MediaKey) {
	groups := make(map[models.MediaKey]*keyGroup)
	var order []models.MediaKey

	for _, req := range requests {
		key := req.Key()
		g, ok := groups[key]
		if !ok {
			g = &keyGroup{key: key}
			groups[key] = g
			order = append(order, key)
		}
		g.requestIDs = append(g.requestIDs, req.ID)
		if wm := req.Watermark(); wm.After(g.maxUpdated) {
			g.maxUpdated = wm
		}
	}
	return groups, order
}

// resolveMetadata serves each key from the cache when its watermark covers
// the newest observed request timestamp, and refreshes the rest from the
// catalog with bounded concurrency. Fresh entries get a metadata-preserving
// touch so their id set and watermark track the current listing.
func (c *SyncController) resolveMetadata(ctx context.Context, groups map[models.MediaKey]*keyGroup, order []models.MediaKey) (map[models.MediaKey]*models.MediaDetails, []string) {
	resolved := make(map[models.MediaKey]*models.MediaDetails, len(order))
	var pending []*keyGroup

	for _, key := range order {
		g := groups[key]
		entry, err := c.store.GetCacheEntry(key)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"tmdb_id": key.TmdbID,
				"type":    key.MediaType,
			}).Error("Cache read failed, refetching")
			pending = append(pending, g)
			continue
		}
		if entry == nil || !entry.Fresh(g.maxUpdated) {
			if entry != nil {
				// stale entry still serves as a fallback if the refresh fails
				details := entry.Details
				resolved[key] = &details
			}
			pending = append(pending, g)
			continue
		}

		details := entry.Details
		resolved[key] = &details
		if err := c.store.TouchCacheEntry(key, g.maxUpdated, g.requestIDs); err != nil {
			c.logger.WithError(err).WithField("tmdb_id", key.TmdbID).Error("Cache touch failed")
		}
	}

	if len(pending) == 0 {
		return resolved, nil
	}

	// Abandoned callers must not abort in-flight fetches: the upserts
	// below are still useful to the next caller. The HTTP client's own
	// timeout bounds each call.
	fetchCtx := context.WithoutCancel(ctx)

	var mu sync.Mutex
	var warnings []string

	p := pool.New().WithMaxGoroutines(c.batchSize)
	for _, g := range pending {
		g := g
		p.Go(func() {
			details, err := c.catalog.GetMediaDetails(fetchCtx, g.key.MediaType, g.key.TmdbID)
			if err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"tmdb_id": g.key.TmdbID,
					"type":    g.key.MediaType,
				}).Warn("Metadata fetch failed, serving degraded entry")
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("failed to fetch %s %d metadata", g.key.MediaType, g.key.TmdbID))
				mu.Unlock()
				return
			}

			mu.Lock()
			resolved[g.key] = details
			mu.Unlock()

			entry := &models.CacheEntry{
				TmdbID:               g.key.TmdbID,
				MediaType:            g.key.MediaType,
				Details:              *details,
				LastFetchedAt:        time.Now(),
				LastRequestUpdatedAt: g.maxUpdated,
				RequestIDs:           g.requestIDs,
			}
			if err := c.store.UpsertCacheEntry(entry); err != nil {
				// cache is best-effort: this response already has the details
				c.logger.WithError(err).WithField("tmdb_id", g.key.TmdbID).Error("Cache upsert failed")
			}
		})
	}
	p.Wait()

	return resolved, warnings
}

// filterAggregated applies status, media-kind and free-text filters over
// the aggregated, enriched records.
func filterAggregated(aggregated []AggregatedRequest, opts ListOptions) []AggregatedRequest {
	statusNum, filterStatus := 0, false
	if opts.Status != "" {
		statusNum, filterStatus = models.ParseRequestStatus(opts.Status)
	}

	search := normalizeSearch(opts.Search)

	filtered := make([]AggregatedRequest, 0, len(aggregated))
	for _, agg := range aggregated {
		if filterStatus && agg.Base.Status != statusNum {
			continue
		}
		if opts.MediaType != "" && string(agg.Media.MediaType) != opts.MediaType {
			continue
		}
		if search != "" && !matchesSearch(agg.Media, search) {
			continue
		}
		filtered = append(filtered, agg)
	}
	return filtered
}

package overseerr

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/amaumene/seerrdash/internal/models"
	"github.com/sirupsen/logrus"
)

// requestPage is one page of the Overseerr request listing
type requestPage struct {
	PageInfo struct {
		Pages        int  `json:"pages"`
		Results      int  `json:"results"`
		HasNextPage  bool `json:"hasNextPage"`
		TotalResults int  `json:"totalResults"`
	} `json:"pageInfo"`
	Results []models.Request `json:"results"`
}

// ListAllRequests fetches every request from Overseerr, walking the
// paginated listing until a short page or an explicit end-of-pages signal.
// Any page failing mid-walk fails the whole listing: a truncated dataset
// would silently break filtering and aggregation downstream.
func (c *Client) ListAllRequests(ctx context.Context, sortBy string, pageSize int) ([]models.Request, error) {
	if sortBy == "" {
		sortBy = "added"
	}

	var all []models.Request
	skip := 0
	for {
		params := url.Values{}
		params.Set("take", strconv.Itoa(pageSize))
		params.Set("filter", "all")
		params.Set("sort", sortBy)
		if skip > 0 {
			params.Set("skip", strconv.Itoa(skip))
		}

		var page requestPage
		if err := c.doRequest(ctx, "GET", "/request?"+params.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list requests (skip=%d): %w", skip, err)
		}

		all = append(all, page.Results...)
		c.logger.WithFields(logrus.Fields{
			"fetched": len(page.Results),
			"total":   len(all),
		}).Debug("Fetched request page")

		total := page.PageInfo.TotalResults
		hasNext := page.PageInfo.HasNextPage || (len(page.Results) == pageSize && len(all) < total)
		if !hasNext || len(page.Results) < pageSize {
			break
		}
		skip += pageSize
	}

	c.logger.WithField("count", len(all)).Debug("Fetched all requests")
	return all, nil
}

// GetRequest fetches a single request by id
func (c *Client) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	var req models.Request
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/request/%d", id), nil, &req); err != nil {
		return nil, fmt.Errorf("failed to get request %d: %w", id, err)
	}
	return &req, nil
}

// CreateRequestInput is the body for creating a request
type CreateRequestInput struct {
	MediaType models.MediaType `json:"mediaType"`
	MediaID   int              `json:"mediaId"`
	Seasons   []int            `json:"seasons,omitempty"`
	Is4K      bool             `json:"is4k,omitempty"`
}

// CreateRequest submits a new media request
func (c *Client) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.Request, error) {
	var req models.Request
	if err := c.doRequest(ctx, "POST", "/request", input, &req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return &req, nil
}

// UpdateRequestStatus approves or declines a request
func (c *Client) UpdateRequestStatus(ctx context.Context, id int, status string) error {
	path := fmt.Sprintf("/request/%d/%s", id, status)
	if err := c.doRequest(ctx, "POST", path, nil, nil); err != nil {
		return fmt.Errorf("failed to update request %d to %s: %w", id, status, err)
	}
	return nil
}

// DeleteRequest removes a request from Overseerr
func (c *Client) DeleteRequest(ctx context.Context, id int) error {
	if err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/request/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete request %d: %w", id, err)
	}
	return nil
}

package overseerr

import (
	"context"
	"fmt"

	"github.com/amaumene/seerrdash/internal/models"
)

// GetMediaDetails fetches catalog metadata for one Media Key. Overseerr
// proxies the external catalog, so movies and shows share the client.
func (c *Client) GetMediaDetails(ctx context.Context, mediaType models.MediaType, tmdbID int) (*models.MediaDetails, error) {
	path := fmt.Sprintf("/%s/%d?language=en", mediaType, tmdbID)

	var details models.MediaDetails
	if err := c.doRequest(ctx, "GET", path, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to get %s %d details: %w", mediaType, tmdbID, err)
	}

	return &details, nil
}

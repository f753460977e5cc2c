package controllers

import (
	"context"
	"fmt"

	"github.com/amaumene/seerrdash/internal/models"
	"github.com/amaumene/seerrdash/internal/services/overseerr"
	"github.com/sirupsen/logrus"
)

// ActionsController forwards request mutations to Overseerr. Aggregated
// records expose every constituent request id, so bulk operations act on
// all underlying requests of one show.
type ActionsController struct {
	client *overseerr.Client
	logger *logrus.Logger
}

// NewActionsController creates a new actions controller
func NewActionsController(client *overseerr.Client, logger *logrus.Logger) *ActionsController {
	return &ActionsController{
		client: client,
		logger: logger,
	}
}

// DeleteRequest removes one request
func (c *ActionsController) DeleteRequest(ctx context.Context, id int) error {
	if err := c.client.DeleteRequest(ctx, id); err != nil {
		return err
	}
	c.logger.WithField("request_id", id).Info("Deleted request")
	return nil
}

// BulkDeleteResult reports the outcome of a bulk deletion
type BulkDeleteResult struct {
	Deleted []int          `json:"deleted"`
	Failed  map[int]string `json:"failed,omitempty"`
}

// BulkDelete removes every given request id, continuing past individual
// failures so one dead id cannot block the rest of an aggregated record.
func (c *ActionsController) BulkDelete(ctx context.Context, ids []int) *BulkDeleteResult {
	result := &BulkDeleteResult{Deleted: []int{}}
	for _, id := range ids {
		if err := c.client.DeleteRequest(ctx, id); err != nil {
			c.logger.WithError(err).WithField("request_id", id).Error("Bulk delete: request failed")
			if result.Failed == nil {
				result.Failed = make(map[int]string)
			}
			result.Failed[id] = err.Error()
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	c.logger.WithFields(logrus.Fields{
		"deleted": len(result.Deleted),
		"failed":  len(result.Failed),
	}).Info("Bulk delete completed")
	return result
}

// RetriggerRequest deletes a request and re-submits it with the same
// media and seasons, pushing it back through Overseerr's pipeline.
func (c *ActionsController) RetriggerRequest(ctx context.Context, id int) (*models.Request, error) {
	original, err := c.client.GetRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request before retrigger: %w", err)
	}
	if !original.Valid() {
		return nil, fmt.Errorf("request %d has no usable media reference", id)
	}

	var seasons []int
	for _, season := range requestSeasons(*original) {
		seasons = append(seasons, season.SeasonNumber)
	}

	if err := c.client.DeleteRequest(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete request before retrigger: %w", err)
	}

	recreated, err := c.client.CreateRequest(ctx, overseerr.CreateRequestInput{
		MediaType: original.Media.MediaType,
		MediaID:   original.Media.TmdbID,
		Seasons:   seasons,
		Is4K:      original.Is4K,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to re-create request: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"old_request_id": id,
		"new_request_id": recreated.ID,
	}).Info("Retriggered request")

	return recreated, nil
}

// UpdateRequestStatus approves or declines a request
func (c *ActionsController) UpdateRequestStatus(ctx context.Context, id int, status string) error {
	if status != "approve" && status != "decline" {
		return fmt.Errorf("unsupported status action: %s", status)
	}
	if err := c.client.UpdateRequestStatus(ctx, id, status); err != nil {
		return err
	}
	c.logger.WithFields(logrus.Fields{
		"request_id": id,
		"status":     status,
	}).Info("Updated request status")
	return nil
}

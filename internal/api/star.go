package api

import (
	"context"
	"fmt"

	"github.com/swfz/gh-issues/internal/models"
)

type starPayload struct {
	Starrable *models.StarState `json:"starrable"`
}

type starData struct {
	AddStar    *starPayload `json:"addStar"`
	RemoveStar *starPayload `json:"removeStar"`
}

// AddStar stars the repository
func (c *Client) AddStar(ctx context.Context, repositoryID string) (*models.StarState, error) {
	return c.changeStar(ctx, addStarDocument, repositoryID)
}

// RemoveStar unstars the repository
func (c *Client) RemoveStar(ctx context.Context, repositoryID string) (*models.StarState, error) {
	return c.changeStar(ctx, removeStarDocument, repositoryID)
}

// ToggleStar sends AddStar when starred is false and RemoveStar otherwise.
// starred is the caller's locally held flag, not the snapshot's.
func (c *Client) ToggleStar(ctx context.Context, repositoryID string, starred bool) (*models.StarState, error) {
	if starred {
		return c.RemoveStar(ctx, repositoryID)
	}
	return c.AddStar(ctx, repositoryID)
}

func (c *Client) changeStar(ctx context.Context, doc *document, repositoryID string) (*models.StarState, error) {
	if repositoryID == "" {
		return nil, fmt.Errorf("%s: empty repository id: %w", doc.name, ErrInvalidVariables)
	}

	variables := map[string]interface{}{
		"repositoryId": repositoryID,
	}

	var data *starData
	errs, err := c.execute(ctx, doc, variables, &data)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, &NoDataError{Operation: doc.name, Errors: errs}
	}

	payload := data.AddStar
	if doc == removeStarDocument {
		payload = data.RemoveStar
	}

	if len(errs) > 0 || payload == nil || payload.Starrable == nil {
		return nil, fmt.Errorf("%s: %s: %w", doc.name, JoinMessages(errs), ErrMutationFailed)
	}

	return payload.Starrable, nil
}

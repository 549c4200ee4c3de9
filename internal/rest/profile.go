package rest

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/funthingsnearme/nearby/internal/model"
)

// Favorites returns the caller's favorited activities. A response without
// the expected {"favorites": [...]} shape degrades to an empty list plus a
// logged warning rather than an error.
func (c *Client) Favorites(ctx context.Context, token string) ([]model.Activity, error) {
	return c.activityList(ctx, token, "core/get-user-favorites", "favorites")
}

// Created returns the activities the caller submitted, with the same
// shape handling as Favorites.
func (c *Client) Created(ctx context.Context, token string) ([]model.Activity, error) {
	return c.activityList(ctx, token, "core/get-user-created", "created_activities")
}

func (c *Client) activityList(ctx context.Context, token, path, key string) ([]model.Activity, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint(path, nil), "", token, http.NoBody)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(raw, key)
	if !list.IsArray() {
		log.Warn().Str("key", key).Msg("response did not carry the expected array; treating as empty")
		return []model.Activity{}, nil
	}

	activities := make([]model.Activity, 0)
	if err := json.Unmarshal([]byte(list.Raw), &activities); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", key)
	}
	return activities, nil
}

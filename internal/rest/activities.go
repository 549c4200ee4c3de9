package rest

import (
	"context"
	"net/url"
	"strconv"

	"gopkg.in/guregu/null.v3"

	"github.com/funthingsnearme/nearby/internal/model"
)

// CreateActivityRequest is the JSON payload of the creation endpoint. The
// image URL is filled in by the caller after the standalone upload step, or
// left empty when that step failed or was skipped.
type CreateActivityRequest struct {
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	Description   string      `json:"description"`
	ImageURL      string      `json:"image_url"`
	PetsAllowed   bool        `json:"pets_allowed"`
	Accessibility bool        `json:"accessibility"`
	Location      string      `json:"location,omitempty"`
	Latitude      null.Float  `json:"latitude"`
	Longitude     null.Float  `json:"longitude"`
}

type createActivityResponse struct {
	Message  string         `json:"message"`
	Activity model.Activity `json:"activity"`
}

// GetActivity asks the server for one activity near the given coordinates.
// Variety and non-repetition are the server's responsibility; the client
// applies no dedup of its own.
func (c *Client) GetActivity(ctx context.Context, coords model.Coordinates) (*model.Activity, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))

	var activity model.Activity
	if err := c.getJSON(ctx, c.endpoint("core/get-activity", query), "", &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetActivityByID fetches one activity by its explicit identifier, e.g. when
// the feed is opened from a shared link.
func (c *Client) GetActivityByID(ctx context.Context, id int) (*model.Activity, error) {
	var activity model.Activity
	if err := c.getJSON(ctx, c.endpoint("core/get-activity-details/"+strconv.Itoa(id), nil), "", &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreateActivity posts the assembled record under the caller's bearer token
// and returns the server-assigned document.
func (c *Client) CreateActivity(ctx context.Context, token string, req *CreateActivityRequest) (*model.Activity, error) {
	var res createActivityResponse
	if err := c.postJSON(ctx, c.endpoint("core/create-activity", nil), token, req, &res); err != nil {
		return nil, err
	}
	return &res.Activity, nil
}

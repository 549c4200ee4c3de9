package rest

import (
	"context"

	"github.com/funthingsnearme/nearby/internal/model"
)

type updatePreferenceRequest struct {
	ActivityID int                    `json:"activity_id"`
	Action     model.PreferenceAction `json:"action"`
}

// PreferenceReceipt echoes the server's view of the activity after the
// preference was applied. Counts on it are informational; the client keeps
// no tally of its own.
type PreferenceReceipt struct {
	Message  string                 `json:"message"`
	Action   model.PreferenceAction `json:"action"`
	Activity model.Activity         `json:"activity"`
}

// UpdatePreference posts a favorite/upvote/downvote intent for one activity
// under the caller's bearer token.
func (c *Client) UpdatePreference(ctx context.Context, token string, activityID int, action model.PreferenceAction) (*PreferenceReceipt, error) {
	var receipt PreferenceReceipt
	err := c.postJSON(ctx, c.endpoint("core/update-preference", nil), token, &updatePreferenceRequest{
		ActivityID: activityID,
		Action:     action,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// RegisterOrLogin upserts the backend-side user bound to the bearer token.
func (c *Client) RegisterOrLogin(ctx context.Context, token string) (newUser bool, err error) {
	var res struct {
		Message string `json:"message"`
		NewUser bool   `json:"new_user"`
	}
	if err := c.postJSON(ctx, c.endpoint("core/register-or-login", nil), token, struct{}{}, &res); err != nil {
		return false, err
	}
	return res.NewUser, nil
}

// Package prefs sends the user's reactions to a card: favoriting it, or
// voting it up or down. Votes double as the signal to advance the feed.
package prefs

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
	"github.com/funthingsnearme/nearby/internal/rest"
)

type Actions struct {
	session *auth.Session
	api     *rest.Client

	mu    sync.RWMutex
	saved map[int]struct{}

	advance func()
}

func NewActions(session *auth.Session, api *rest.Client) *Actions {
	return &Actions{
		session: session,
		api:     api,
		saved:   make(map[int]struct{}),
	}
}

// OnAdvance registers the fetch-next callback a successful vote triggers.
func (a *Actions) OnAdvance(fn func()) {
	a.advance = fn
}

// Saved reports whether the activity is in the local saved set.
func (a *Actions) Saved(activityID int) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.saved[activityID]
	return ok
}

// SeedSaved populates the saved set from the user's favorites, so cards
// already favorited render as such. A failed read only logs; an empty set is
// an acceptable starting point.
func (a *Actions) SeedSaved(ctx context.Context) {
	if !a.session.Authenticated() {
		return
	}

	token, err := a.session.IDToken(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not get a token to seed the saved set")
		return
	}

	favorites, err := a.api.Favorites(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("failed to seed the saved set")
		return
	}

	ids := lo.Map(favorites, func(activity model.Activity, _ int) int {
		return activity.ID
	})

	a.mu.Lock()
	for _, id := range ids {
		a.saved[id] = struct{}{}
	}
	a.mu.Unlock()
}

// Apply sends one preference action. Unauthenticated callers get the
// login-required error with nothing sent. A favorite toggles the local saved
// set optimistically and reverts it if the server refuses; a successful vote
// triggers the advance callback.
func (a *Actions) Apply(ctx context.Context, activityID int, action model.PreferenceAction) (*rest.PreferenceReceipt, error) {
	if err := a.session.Require(); err != nil {
		return nil, err
	}
	if !action.Valid() {
		return nil, fterr.ErrInvalidRequest
	}

	if action == model.ActionFavorite {
		a.toggleSaved(activityID)
	}

	token, err := a.session.IDToken(ctx)
	if err != nil {
		if action == model.ActionFavorite {
			a.toggleSaved(activityID)
		}
		return nil, err
	}

	receipt, err := a.api.UpdatePreference(ctx, token, activityID, action)
	if err != nil {
		if action == model.ActionFavorite {
			a.toggleSaved(activityID)
		}
		return nil, err
	}

	if action != model.ActionFavorite && a.advance != nil {
		a.advance()
	}

	return receipt, nil
}

func (a *Actions) toggleSaved(activityID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.saved[activityID]; ok {
		delete(a.saved, activityID)
	} else {
		a.saved[activityID] = struct{}{}
	}
}

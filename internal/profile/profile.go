// Package profile assembles the signed-in user's overview: the activities
// they favorited and the ones they created.
package profile

import (
	"context"

	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/async"
	"github.com/funthingsnearme/nearby/internal/rest"
)

// Overview is the profile screen's data: both lists, fetched independently.
type Overview struct {
	Email     string
	Favorites []model.Activity
	Created   []model.Activity
}

type Aggregator struct {
	session *auth.Session
	api     *rest.Client
}

func NewAggregator(session *auth.Session, api *rest.Client) *Aggregator {
	return &Aggregator{
		session: session,
		api:     api,
	}
}

// Overview gates on the session and then issues the two reads in parallel.
// The reads are independent and unordered; either one failing fails the
// whole aggregate.
func (a *Aggregator) Overview(ctx context.Context) (*Overview, error) {
	if err := a.session.Require(); err != nil {
		return nil, err
	}

	token, err := a.session.IDToken(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Email: a.session.Email(),
	}

	if err := async.WaitAll(
		async.Errable(func() error {
			favorites, err := a.api.Favorites(ctx, token)
			if err != nil {
				return err
			}
			overview.Favorites = favorites
			return nil
		}),
		async.Errable(func() error {
			created, err := a.api.Created(ctx, token)
			if err != nil {
				return err
			}
			overview.Created = created
			return nil
		}),
	); err != nil {
		return nil, err
	}

	return overview, nil
}

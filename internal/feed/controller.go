// Package feed drives the one-card-at-a-time activity stream: one read per
// request, the single returned record held as current, and the next card
// fetched on demand. The server owns variety; the client never dedups.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/funthingsnearme/nearby/internal/location"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/rest"
)

// Phase tells the presentation layer which kind of wait is in progress, so
// a refresh keeps the previous card on screen instead of flashing empty.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitialLoading
	PhaseRefreshing
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialLoading:
		return "initial-loading"
	case PhaseRefreshing:
		return "refreshing"
	}
	return "idle"
}

type Controller struct {
	api      *rest.Client
	resolver *location.Resolver

	started atomic.Bool
	gen     atomic.Uint64

	mu      sync.RWMutex
	current *model.Activity
	phase   Phase
}

func NewController(api *rest.Client, resolver *location.Resolver) *Controller {
	return &Controller{
		api:      api,
		resolver: resolver,
	}
}

// Current returns the record on display, if any.
func (c *Controller) Current() *model.Activity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

// Start performs the initial fetch: by explicit id when one was handed in
// (a deep link), otherwise by the resolved coordinates. The latch makes the
// initial fetch one-shot, so an id and a coordinate pair resolving
// near-simultaneously cannot double-request.
func (c *Controller) Start(ctx context.Context, activityID int) (*model.Activity, error) {
	if !c.started.CompareAndSwap(false, true) {
		log.Debug().Msg("feed already started; skipping duplicate initial fetch")
		return c.Current(), nil
	}

	gen := c.gen.Add(1)
	c.setPhase(PhaseInitialLoading)
	defer c.restorePhase(gen)

	var (
		activity *model.Activity
		err      error
	)
	if activityID > 0 {
		activity, err = c.api.GetActivityByID(ctx, activityID)
	} else {
		activity, err = c.fetchByCoordinates(ctx)
	}
	if err != nil {
		// a failed start may be retried once location or connectivity recovers
		c.started.Store(false)
		return nil, err
	}

	return c.adopt(gen, activity), nil
}

// Next re-issues the coordinate-based read. Overlapping calls race freely;
// the newest request wins and responses carrying a stale generation are
// discarded, so the current card never moves backwards in time.
func (c *Controller) Next(ctx context.Context) (*model.Activity, error) {
	gen := c.gen.Add(1)
	c.setPhase(PhaseRefreshing)
	defer c.restorePhase(gen)

	activity, err := c.fetchByCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	return c.adopt(gen, activity), nil
}

func (c *Controller) fetchByCoordinates(ctx context.Context) (*model.Activity, error) {
	coords, err := c.resolver.Resolve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "location is not ready")
	}
	return c.api.GetActivity(ctx, coords)
}

// adopt installs a fetched record as current unless a newer request has
// started since, in which case the stale record is dropped and whatever is
// current stands.
func (c *Controller) adopt(gen uint64, activity *model.Activity) *model.Activity {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen.Load() != gen {
		log.Debug().Uint64("gen", gen).Msg("discarding stale feed response")
		return c.current
	}

	c.current = activity
	return activity
}

func (c *Controller) setPhase(phase Phase) {
	c.mu.Lock()
	c.phase = phase
	c.mu.Unlock()
}

// restorePhase returns the controller to idle only when the finishing
// request is still the newest one, so an overlapped older call cannot
// report idle while a fresh request is in flight.
func (c *Controller) restorePhase(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() == gen {
		c.phase = PhaseIdle
	}
}

// Package wizard is the activity-creation flow: a sequence of explicit
// states collecting the draft, a pure validation pass, and the
// upload-then-create submission.
package wizard

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
	"github.com/funthingsnearme/nearby/internal/places"
	"github.com/funthingsnearme/nearby/internal/rest"
)

// Draft is the record under construction. Coords is populated exclusively
// by SelectSuggestion.
type Draft struct {
	Title       string
	URL         string
	Description string

	Address string
	Coords  *model.Coordinates

	PetsAllowed   bool
	Accessibility bool

	ImagePath string
}

// Wizard is read by the render loop while submission runs on another
// goroutine, so all draft/state/errors access goes through the mutex.
type Wizard struct {
	session *auth.Session
	api     *rest.Client
	places  *places.Client
	rules   Rules

	mu     sync.RWMutex
	state  State
	draft  Draft
	errors map[string]string
}

func New(conf *appconfig.Config, session *auth.Session, api *rest.Client, placesClient *places.Client) *Wizard {
	return &Wizard{
		session: session,
		api:     api,
		places:  placesClient,
		rules: Rules{
			RequireImage:    conf.RequireImage,
			RequireLocation: conf.RequireLocation,
		},
		state:  StateEnteringTitle,
		errors: make(map[string]string),
	}
}

func (w *Wizard) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Draft returns a snapshot of the record under construction.
func (w *Wizard) Draft() Draft {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.draft
}

// Errors returns a copy of the failing fields from the last validation.
func (w *Wizard) Errors() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	errs := make(map[string]string, len(w.errors))
	for field, message := range w.errors {
		errs[field] = message
	}
	return errs
}

func (w *Wizard) Rules() Rules { return w.rules }

// Advance moves to the next state. It reports false once the wizard is
// already at Ready.
func (w *Wizard) Advance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, ok := w.state.next(w.rules.RequireLocation)
	if ok {
		w.state = next
	}
	return ok
}

func (w *Wizard) SetTitle(title string)             { w.set(func(d *Draft) { d.Title = title }) }
func (w *Wizard) SetURL(url string)                 { w.set(func(d *Draft) { d.URL = url }) }
func (w *Wizard) SetDescription(description string) { w.set(func(d *Draft) { d.Description = description }) }
func (w *Wizard) AttachImage(path string)           { w.set(func(d *Draft) { d.ImagePath = path }) }

func (w *Wizard) TogglePetsAllowed()   { w.set(func(d *Draft) { d.PetsAllowed = !d.PetsAllowed }) }
func (w *Wizard) ToggleAccessibility() { w.set(func(d *Draft) { d.Accessibility = !d.Accessibility }) }

func (w *Wizard) set(mutate func(d *Draft)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	mutate(&w.draft)
}

// SuggestLocations forwards a typed query to the autocomplete client.
// Typing alone never touches the draft's coordinates.
func (w *Wizard) SuggestLocations(ctx context.Context, query string) ([]places.Suggestion, error) {
	return w.places.Suggest(ctx, query)
}

// SelectSuggestion resolves a chosen suggestion into the draft's address
// and coordinate pair. This is the only path that sets Coords.
func (w *Wizard) SelectSuggestion(ctx context.Context, suggestion places.Suggestion) error {
	place, err := w.places.Resolve(ctx, suggestion.PlaceID)
	if err != nil {
		return err
	}

	w.set(func(d *Draft) {
		d.Address = place.FormattedAddress
		d.Coords = &model.Coordinates{
			Latitude:  place.Latitude,
			Longitude: place.Longitude,
		}
	})
	return nil
}

// Validate runs the pure validation pass and records the failing fields.
func (w *Wizard) Validate() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errors = Validate(&w.draft, w.rules)
	return w.errors
}

// Submit runs the full submission sequence: gate on the session, validate,
// best-effort image upload, then the JSON creation request under a fresh
// bearer token. Success clears the whole draft; failure surfaces the
// server's error text as-is.
func (w *Wizard) Submit(ctx context.Context) (*model.Activity, error) {
	if err := w.session.Require(); err != nil {
		return nil, err
	}

	if errs := w.Validate(); len(errs) > 0 {
		return nil, fterr.NewInvalidViolations(errs)
	}

	// work off a snapshot so edits during the round trips cannot tear it
	draft := w.Draft()

	token, err := w.session.IDToken(ctx)
	if err != nil {
		return nil, err
	}

	// The upload is strictly ordered before record creation, and its
	// failure is not fatal: the record goes out with an empty image_url.
	imageURL := ""
	if draft.ImagePath != "" {
		result := uploadImage(ctx, w.api, token, draft.ImagePath)
		if result.OK() {
			imageURL = result.URL
		} else {
			log.Warn().Err(result.Reason).Str("image", draft.ImagePath).Msg("image upload failed; creating the activity without one")
		}
	}

	req := &rest.CreateActivityRequest{
		Title:         draft.Title,
		URL:           draft.URL,
		Description:   draft.Description,
		ImageURL:      imageURL,
		PetsAllowed:   draft.PetsAllowed,
		Accessibility: draft.Accessibility,
	}
	if draft.Coords != nil {
		req.Location = draft.Address
		req.Latitude = null.FloatFrom(draft.Coords.Latitude)
		req.Longitude = null.FloatFrom(draft.Coords.Longitude)
	}

	activity, err := w.api.CreateActivity(ctx, token, req)
	if err != nil {
		return nil, err
	}

	w.Reset()
	return activity, nil
}

func uploadImage(ctx context.Context, api *rest.Client, token, path string) rest.UploadResult {
	file, err := os.Open(path)
	if err != nil {
		return rest.Failed(err)
	}
	defer file.Close()

	return api.UploadImage(ctx, token, filepath.Base(path), file)
}

// Reset clears every field and any live preview state, returning the wizard
// to its first step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = Draft{}
	w.errors = make(map[string]string)
	w.state = StateEnteringTitle
}

// Package location resolves the device's coordinates once and caches the
// last known pair. Absent coordinates mean "not ready": consumers withhold
// coordinate-based requests instead of substituting a default.
package location

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

const memKey = "coordinates"

// Provider is a one-shot device geolocation query.
type Provider interface {
	Current(ctx context.Context) (model.Coordinates, error)
}

// Resolver answers coordinate lookups from its cache when it can and from
// the provider when it must. The cache survives process restarts as a
// single overwritten key-value file.
type Resolver struct {
	provider Provider
	mem      *cache.Cache
	path     string
}

func NewResolver(conf *appconfig.Config, provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		mem:      cache.New(cache.NoExpiration, 0),
		path:     filepath.Join(conf.DataDir, "location.json"),
	}
}

// Cached returns the last known coordinates without any device query. The
// in-memory layer is consulted first, then the durable file.
func (r *Resolver) Cached() (model.Coordinates, bool) {
	if v, ok := r.mem.Get(memKey); ok {
		return v.(model.Coordinates), true
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("failed to read cached location")
		}
		return model.Coordinates{}, false
	}

	var coords model.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		log.Warn().Err(err).Msg("cached location is corrupt; ignoring it")
		return model.Coordinates{}, false
	}

	r.mem.Set(memKey, coords, cache.NoExpiration)
	return coords, true
}

// Resolve returns the cached pair when present, synchronously and with zero
// device queries; otherwise it performs the one-shot provider query.
func (r *Resolver) Resolve(ctx context.Context) (model.Coordinates, error) {
	if coords, ok := r.Cached(); ok {
		return coords, nil
	}
	return r.Refresh(ctx)
}

// Refresh bypasses the cache and queries the provider. Success overwrites
// the cached pair; failure leaves it untouched, with the permission-denied
// variant passed through distinct from all other failures.
func (r *Resolver) Refresh(ctx context.Context) (model.Coordinates, error) {
	coords, err := r.provider.Current(ctx)
	if err != nil {
		if fterr.Code(err) == fterr.CodeLocationDenied {
			return model.Coordinates{}, err
		}
		return model.Coordinates{}, errors.Wrap(err, "could not retrieve location")
	}

	r.store(coords)
	return coords, nil
}

func (r *Resolver) store(coords model.Coordinates) {
	r.mem.Set(memKey, coords, cache.NoExpiration)

	raw, err := json.Marshal(coords)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode location")
		return
	}
	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		log.Warn().Err(err).Msg("failed to persist location")
	}
}

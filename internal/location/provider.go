package location

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/oschwald/geoip2-golang"
	"github.com/pkg/errors"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

// NewProvider selects the geolocation backend from configuration.
func NewProvider(conf *appconfig.Config) (Provider, error) {
	switch conf.LocationProvider {
	case "remote":
		return newRemoteProvider(conf), nil
	case "geoip":
		return newGeoIPProvider(conf)
	}
	return nil, errors.Errorf("unknown location provider %q", conf.LocationProvider)
}

// remoteProvider asks a geolocation HTTP service where the caller is. A 401
// or 403 answer is the permission-denied variant.
type remoteProvider struct {
	url    string
	client *http.Client
}

func newRemoteProvider(conf *appconfig.Config) *remoteProvider {
	return &remoteProvider{
		url: conf.GeoServiceURL,
		client: &http.Client{
			Timeout: conf.HTTPTimeout,
		},
	}
}

func (p *remoteProvider) Current(ctx context.Context) (model.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "failed to build geolocation request")
	}

	res, err := p.client.Do(req)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "geolocation request failed")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return model.Coordinates{}, fterr.ErrLocationDenied
	}
	if res.StatusCode != http.StatusOK {
		return model.Coordinates{}, errors.Errorf("geolocation service answered %d", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "failed to read geolocation response")
	}

	var coords model.Coordinates
	if err := json.Unmarshal(raw, &coords); err != nil {
		return model.Coordinates{}, errors.Wrap(err, "failed to decode geolocation response")
	}
	return coords, nil
}

// geoIPProvider looks the caller's public IP up in a local MaxMind City
// database.
type geoIPProvider struct {
	db      *geoip2.Reader
	echoURL string
	client  *http.Client
}

func newGeoIPProvider(conf *appconfig.Config) (*geoIPProvider, error) {
	db, err := geoip2.Open(conf.GeoIPDBPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open GeoIP database")
	}

	return &geoIPProvider{
		db:      db,
		echoURL: conf.EchoIPURL,
		client: &http.Client{
			Timeout: conf.HTTPTimeout,
		},
	}, nil
}

func (p *geoIPProvider) Current(ctx context.Context) (model.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.echoURL, http.NoBody)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "failed to build IP echo request")
	}

	res, err := p.client.Do(req)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "IP echo request failed")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "failed to read IP echo response")
	}

	ip := net.ParseIP(strings.TrimSpace(string(raw)))
	if ip == nil {
		return model.Coordinates{}, errors.Errorf("IP echo service answered garbage: %q", string(raw))
	}

	city, err := p.db.City(ip)
	if err != nil {
		return model.Coordinates{}, errors.Wrap(err, "GeoIP lookup failed")
	}

	return model.Coordinates{
		Latitude:  city.Location.Latitude,
		Longitude: city.Location.Longitude,
	}, nil
}

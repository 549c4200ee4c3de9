// Package places is the map-autocomplete client. Selecting one of its
// suggestions is the only way a coordinate pair enters the creation wizard;
// free-typed text never resolves to coordinates.
package places

import (
	"context"
	"io"
	"net/http"
	"net/url"
	gopath "path"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
)

// Suggestion is one autocomplete prediction for a typed query.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Place is a resolved selection: the formatted address plus coordinates.
type Place struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
}

// Client lazily initializes exactly once per process, the way the original
// front-end deduplicates its maps script injection globally.
type Client struct {
	conf *appconfig.Config

	once    sync.Once
	initErr error
	base    *url.URL
	client  *http.Client

	suggestions *cache.Cache
}

func NewClient(conf *appconfig.Config) *Client {
	return &Client{
		conf:        conf,
		suggestions: cache.New(time.Minute, 5*time.Minute),
	}
}

func (c *Client) ensure() error {
	c.once.Do(func() {
		if c.conf.PlacesAPIKey == "" {
			c.initErr = errors.New("no places API key configured")
			return
		}
		base, err := url.Parse(c.conf.PlacesBaseURL)
		if err != nil {
			c.initErr = errors.Wrap(err, "invalid places base URL")
			return
		}
		c.base = base
		c.client = &http.Client{
			Timeout: c.conf.HTTPTimeout,
		}
	})
	return c.initErr
}

// Suggest returns autocomplete predictions for the typed query. Responses
// are briefly memoized so keystroke-by-keystroke lookups stay cheap.
func (c *Client) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, nil
	}

	if cached, ok := c.suggestions.Get(query); ok {
		return cached.([]Suggestion), nil
	}

	params := url.Values{}
	params.Set("input", query)
	params.Set("key", c.conf.PlacesAPIKey)

	var res struct {
		Status      string       `json:"status"`
		Predictions []Suggestion `json:"predictions"`
	}
	if err := c.get(ctx, c.endpoint("autocomplete/json", params), &res); err != nil {
		return nil, err
	}
	if res.Status != "OK" && res.Status != "ZERO_RESULTS" {
		return nil, errors.Errorf("autocomplete answered status %s", res.Status)
	}

	c.suggestions.SetDefault(query, res.Predictions)
	return res.Predictions, nil
}

// Resolve turns a selected suggestion into the formatted address and
// coordinate pair.
func (c *Client) Resolve(ctx context.Context, placeID string) (*Place, error) {
	if err := c.ensure(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_address,geometry")
	params.Set("key", c.conf.PlacesAPIKey)

	var res struct {
		Status string `json:"status"`
		Result struct {
			FormattedAddress string `json:"formatted_address"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"result"`
	}
	if err := c.get(ctx, c.endpoint("details/json", params), &res); err != nil {
		return nil, err
	}
	if res.Status != "OK" {
		return nil, errors.Errorf("place details answered status %s", res.Status)
	}

	return &Place{
		FormattedAddress: res.Result.FormattedAddress,
		Latitude:         res.Result.Geometry.Location.Lat,
		Longitude:        res.Result.Geometry.Location.Lng,
	}, nil
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := *c.base
	u.Path = gopath.Join(u.Path, path)
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to build places request")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "places request failed")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read places response")
	}
	if res.StatusCode != http.StatusOK {
		return errors.Errorf("places service answered %d", res.StatusCode)
	}

	return json.Unmarshal(raw, dest)
}

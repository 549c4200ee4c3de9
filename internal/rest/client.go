// Package rest is the client of the backend REST API. Every endpoint the
// front-end consumes lives here; components above it never build requests
// themselves.
package rest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	gopath "path"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

type Client struct {
	base *url.URL

	client *http.Client
}

func NewClient(conf *appconfig.Config) (*Client, error) {
	base, err := url.Parse(conf.APIBaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid API base URL")
	}

	return &Client{
		base: base,
		client: &http.Client{
			Timeout: conf.HTTPTimeout,
		},
	}, nil
}

// endpoint joins path onto the base URL, keeping the Django-style trailing
// slash the backend routes require.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = gopath.Join(u.Path, path) + "/"
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and returns the raw response body. Responses with an
// error status are turned into a domain error carrying the server-provided
// error text verbatim when there is one.
func (c *Client) do(ctx context.Context, method, endpoint, contentType, token string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	reqID := xid.New().String()
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	log.Debug().
		Str("req.id", reqID).
		Str("req", method+" "+endpoint).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if res.StatusCode >= http.StatusBadRequest {
		return nil, remoteError(res.StatusCode, raw)
	}

	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, token string, dest interface{}) error {
	raw, err := c.do(ctx, http.MethodGet, endpoint, "", token, http.NoBody)
	if err != nil {
		return err
	}
	return decode(raw, dest)
}

func (c *Client) postJSON(ctx context.Context, endpoint, token string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode request body")
	}

	raw, err := c.do(ctx, http.MethodPost, endpoint, "application/json", token, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return decode(raw, dest)
}

func decode(raw []byte, dest interface{}) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}
	return nil
}

// remoteError surfaces the server's {"error": "..."} text verbatim where the
// server supplies one, otherwise falls back to a generic message.
func remoteError(status int, raw []byte) *fterr.Error {
	if msg := gjson.GetBytes(raw, "error"); msg.Exists() && msg.String() != "" {
		return fterr.NewRemote(status, msg.String())
	}
	return fterr.ErrInternalError
}

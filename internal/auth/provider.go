// Package auth talks to the managed auth provider and tracks the resulting
// session. Bearer tokens are issued on demand right before each
// authenticated request; nothing above this package ever stores one.
package auth

import (
	"context"
	"io"
	"net/http"
	"net/url"
	gopath "path"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

// Provider is the email/password identity-toolkit client.
type Provider struct {
	base      *url.URL
	tokenBase *url.URL
	apiKey    string

	client *http.Client
}

// Credentials is one issued provider session: a short-lived ID token plus
// the refresh token that renews it.
type Credentials struct {
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	Email        string    `json:"email"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the ID token needs a refresh before use. The
// margin keeps a token from expiring mid-request.
func (c *Credentials) Expired() bool {
	return time.Until(c.ExpiresAt) < 30*time.Second
}

func NewProvider(conf *appconfig.Config) (*Provider, error) {
	base, err := url.Parse(conf.AuthBaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid auth base URL")
	}
	tokenBase, err := url.Parse(conf.AuthTokenBaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid auth token base URL")
	}

	return &Provider{
		base:      base,
		tokenBase: tokenBase,
		apiKey:    conf.AuthAPIKey,
		client: &http.Client{
			Timeout: conf.HTTPTimeout,
		},
	}, nil
}

// SignIn exchanges an email/password pair for provider credentials.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	return p.passwordGrant(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp creates a provider account and signs it in.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*Credentials, error) {
	return p.passwordGrant(ctx, "accounts:signUp", email, password)
}

func (p *Provider) passwordGrant(ctx context.Context, action, email, password string) (*Credentials, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode auth request")
	}

	raw, err := p.post(ctx, p.keyed(p.base, action), "application/json", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}

	var res struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		Email        string `json:"email"`
		LocalID      string `json:"localId"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "failed to decode auth response")
	}

	return &Credentials{
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
		Email:        res.Email,
		UserID:       res.LocalID,
		ExpiresAt:    expiry(res.ExpiresIn),
	}, nil
}

// Refresh trades a refresh token for a fresh short-lived ID token.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	raw, err := p.post(ctx, p.keyed(p.tokenBase, "token"), "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	var res struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		UserID       string `json:"user_id"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errors.Wrap(err, "failed to decode refresh response")
	}

	return &Credentials{
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
		UserID:       res.UserID,
		ExpiresAt:    expiry(res.ExpiresIn),
	}, nil
}

func (p *Provider) keyed(base *url.URL, action string) string {
	u := *base
	u.Path = gopath.Join(u.Path, action)
	query := url.Values{}
	query.Set("key", p.apiKey)
	u.RawQuery = query.Encode()
	return u.String()
}

func (p *Provider) post(ctx context.Context, endpoint, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build auth request")
	}
	req.Header.Set("Content-Type", contentType)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "auth request failed")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read auth response")
	}

	if res.StatusCode >= http.StatusBadRequest {
		if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() {
			return nil, fterr.NewRemote(res.StatusCode, msg.String())
		}
		return nil, fterr.ErrInternalError
	}

	return raw, nil
}

func expiry(expiresIn string) time.Time {
	seconds, err := strconv.Atoi(expiresIn)
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	return time.Now().Add(time.Duration(seconds) * time.Second)
}

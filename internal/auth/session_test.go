package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

func testConfig(t *testing.T, authURL string) *appconfig.Config {
	t.Helper()
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			AuthBaseURL:      authURL + "/",
			AuthTokenBaseURL: authURL + "/",
			AuthAPIKey:       "test-key",
			DataDir:          t.TempDir(),
			HTTPTimeout:      5 * time.Second,
		},
	}
}

func newTestSession(t *testing.T, conf *appconfig.Config) *Session {
	t.Helper()
	provider, err := NewProvider(conf)
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	session := NewSession(conf, provider, lc)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return session
}

func authStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"idToken": "id-1", "refreshToken": "ref-1", "expiresIn": "3600", "email": "sam@example.org", "localId": "u1"}`))
	})
	mux.HandleFunc("/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"idToken": "id-new", "refreshToken": "ref-new", "expiresIn": "3600", "email": "new@example.org", "localId": "u2"}`))
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{"id_token": "id-2", "refresh_token": "ref-2", "expires_in": "3600", "user_id": "u1"}`))
	})
	return httptest.NewServer(mux)
}

func TestSessionGate(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	session := newTestSession(t, testConfig(t, srv.URL))

	assert.False(t, session.Authenticated())
	assert.Equal(t, fterr.ErrAuthRequired, session.Require())

	_, err := session.IDToken(context.Background())
	assert.True(t, fterr.IsAuthRequired(err))
}

func TestSignInNotifiesSubscribers(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	session := newTestSession(t, testConfig(t, srv.URL))

	changes, cancel := session.Subscribe()
	defer cancel()

	require.NoError(t, session.SignIn(context.Background(), "sam@example.org", "hunter2"))
	assert.True(t, session.Authenticated())
	assert.NoError(t, session.Require())

	change := <-changes
	assert.True(t, change.Authenticated)
	assert.Equal(t, "sam@example.org", change.Email)

	token, err := session.IDToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id-1", token)

	session.SignOut()
	change = <-changes
	assert.False(t, change.Authenticated)
	assert.False(t, session.Authenticated())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	session := newTestSession(t, testConfig(t, srv.URL))

	changes, cancel := session.Subscribe()
	cancel()

	require.NoError(t, session.SignIn(context.Background(), "sam@example.org", "hunter2"))
	_, open := <-changes
	assert.False(t, open)
}

func TestExpiredTokenIsRefreshed(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	conf := testConfig(t, srv.URL)
	session := newTestSession(t, conf)

	require.NoError(t, session.SignIn(context.Background(), "sam@example.org", "hunter2"))

	session.mu.Lock()
	session.creds.ExpiresAt = time.Now().Add(-time.Minute)
	session.mu.Unlock()

	token, err := session.IDToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id-2", token)
	// email survives the refresh even though the token endpoint omits it
	assert.Equal(t, "sam@example.org", session.Email())
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	conf := testConfig(t, srv.URL)

	first := newTestSession(t, conf)
	require.NoError(t, first.SignIn(context.Background(), "sam@example.org", "hunter2"))

	second := newTestSession(t, conf)
	assert.True(t, second.Authenticated())
	assert.Equal(t, "sam@example.org", second.Email())
}

func TestLegacyTokens(t *testing.T) {
	srv := authStub(t)
	defer srv.Close()
	conf := testConfig(t, srv.URL)
	conf.LegacyAuth = true
	session := newTestSession(t, conf)

	assert.Equal(t, fterr.ErrAuthRequired, session.Require())

	session.AdoptLegacy(&model.TokenPair{AccessToken: "acc", RefreshToken: "ref"})
	assert.True(t, session.Authenticated())

	token, err := session.IDToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acc", token)
}

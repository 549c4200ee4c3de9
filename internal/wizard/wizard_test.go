package wizard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/fx/fxtest"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
	"github.com/funthingsnearme/nearby/internal/places"
	"github.com/funthingsnearme/nearby/internal/rest"
)

func testWizard(t *testing.T, apiURL string, signedIn bool) *Wizard {
	t.Helper()

	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			APIBaseURL:  apiURL,
			LegacyAuth:  true,
			DataDir:     t.TempDir(),
			HTTPTimeout: 5 * time.Second,
		},
	}

	lc := fxtest.NewLifecycle(t)
	session := auth.NewSession(conf, nil, lc)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	if signedIn {
		session.AdoptLegacy(&model.TokenPair{AccessToken: "legacy-token"})
	}

	api, err := rest.NewClient(conf)
	require.NoError(t, err)

	return New(conf, session, api, places.NewClient(conf))
}

func TestStateTransitions(t *testing.T) {
	t.Run("WithLocationStep", func(t *testing.T) {
		w := testWizard(t, "http://localhost", false)
		w.rules.RequireLocation = true

		want := []State{
			StateEnteringURL,
			StateEnteringDescription,
			StateChoosingLocation,
			StateChoosingFeatures,
			StateReady,
		}
		assert.Equal(t, StateEnteringTitle, w.State())
		for _, state := range want {
			require.True(t, w.Advance())
			assert.Equal(t, state, w.State())
		}

		// the flow never advances past the final step
		assert.False(t, w.Advance())
		assert.Equal(t, StateReady, w.State())
	})

	t.Run("LocationStepSkipped", func(t *testing.T) {
		w := testWizard(t, "http://localhost", false)
		w.rules.RequireLocation = false

		require.True(t, w.Advance())
		require.True(t, w.Advance())
		require.True(t, w.Advance())
		assert.Equal(t, StateChoosingFeatures, w.State())
	})

	t.Run("ResetReturnsToStart", func(t *testing.T) {
		w := testWizard(t, "http://localhost", false)
		w.SetTitle("x")
		require.True(t, w.Advance())

		w.Reset()
		assert.Equal(t, StateEnteringTitle, w.State())
		assert.Empty(t, w.Draft().Title)
	})
}

func TestSubmitRequiresSession(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	w := testWizard(t, srv.URL, false)
	w.SetTitle("Kayak")
	w.SetURL("https://example.org/kayak")
	w.SetDescription("Rent one at the pier.")

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, fterr.ErrAuthRequired)
	assert.Zero(t, hits, "an unauthenticated submit must not reach the network")
}

func TestSubmitRejectsInvalidDraft(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	w := testWizard(t, srv.URL, true)
	w.SetTitle("Kayak")
	w.SetURL("not-a-url")
	w.SetDescription("Rent one at the pier.")

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, fterr.CodeInvalidRequest, fterr.Code(err))
	assert.Contains(t, w.Errors(), "url")
	assert.Zero(t, hits)
}

func TestSubmitCreatesActivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/core/create-activity/", r.URL.Path)
		assert.Equal(t, "Bearer legacy-token", r.Header.Get("Authorization"))

		body, err := readAll(r)
		require.NoError(t, err)
		assert.Equal(t, "Kayak the harbor", gjson.GetBytes(body, "title").String())
		assert.False(t, gjson.GetBytes(body, "location").Exists())

		_, _ = w.Write([]byte(`{"message": "Activity created successfully", "activity": {"id": 7, "title": "Kayak the harbor"}}`))
	}))
	defer srv.Close()

	w := testWizard(t, srv.URL, true)
	w.SetTitle("Kayak the harbor")
	w.SetURL("https://example.org/kayak")
	w.SetDescription("Rent one at the pier.")
	w.TogglePetsAllowed()

	activity, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, activity.ID)

	// success clears the draft and rewinds the flow
	assert.Empty(t, w.Draft().Title)
	assert.Equal(t, StateEnteringTitle, w.State())
}

func TestSubmitUploadFailureIsNotFatal(t *testing.T) {
	var createBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/core/upload-image/":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "storage backend unavailable"}`))
		case "/core/create-activity/":
			var err error
			createBody, err = readAll(r)
			require.NoError(t, err)
			_, _ = w.Write([]byte(`{"message": "Activity created successfully", "activity": {"id": 8, "title": "Kayak"}}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	image := filepath.Join(t.TempDir(), "pier.jpg")
	require.NoError(t, os.WriteFile(image, []byte("jpeg-bytes"), 0o600))

	w := testWizard(t, srv.URL, true)
	w.SetTitle("Kayak")
	w.SetURL("https://example.org/kayak")
	w.SetDescription("Rent one at the pier.")
	w.AttachImage(image)

	activity, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, activity.ID)

	// the record went out anyway, just without an image
	url := gjson.GetBytes(createBody, "image_url")
	require.True(t, url.Exists())
	assert.Empty(t, url.String())
}

func TestSubmitSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "An activity with this URL already exists"}`))
	}))
	defer srv.Close()

	w := testWizard(t, srv.URL, true)
	w.SetTitle("Kayak")
	w.SetURL("https://example.org/kayak")
	w.SetDescription("Rent one at the pier.")

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "An activity with this URL already exists")

	// the draft survives so the user can correct and retry
	assert.Equal(t, "Kayak", w.Draft().Title)
}

func TestSubmitDoesNotRaceRenderReads(t *testing.T) {
	requestArrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(requestArrived)
		<-release
		_, _ = w.Write([]byte(`{"message": "Activity created successfully", "activity": {"id": 9, "title": "Kayak"}}`))
	}))
	defer srv.Close()

	w := testWizard(t, srv.URL, true)
	w.SetTitle("Kayak")
	w.SetURL("https://example.org/kayak")
	w.SetDescription("Rent one at the pier.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := w.Submit(context.Background())
		assert.NoError(t, err)
	}()

	// the render loop keeps reading while the submission round trip runs
	<-requestArrived
	for i := 0; i < 100; i++ {
		_ = w.State()
		_ = w.Draft()
		for field, message := range w.Errors() {
			_, _ = field, message
		}
	}

	close(release)
	<-done
	assert.Equal(t, StateEnteringTitle, w.State())
}

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
)

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(&appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			APIBaseURL:  srv.URL,
			HTTPTimeout: 5 * time.Second,
		},
	})
	require.NoError(t, err)
	return client
}

func TestGetActivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/get-activity/", r.URL.Path)
		assert.Equal(t, "52.52", r.URL.Query().Get("latitude"))
		assert.Equal(t, "13.405", r.URL.Query().Get("longitude"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "title": "Hike the Grunewald", "url": "https://example.org/hike", "description": "A forest walk."}`))
	}))
	defer srv.Close()

	activity, err := testClient(t, srv).GetActivity(context.Background(), model.Coordinates{Latitude: 52.52, Longitude: 13.405})
	require.NoError(t, err)
	assert.Equal(t, 7, activity.ID)
	assert.Equal(t, "Hike the Grunewald", activity.Title)
}

func TestGetActivityByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/get-activity-details/42/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "title": "Boat tour"}`))
	}))
	defer srv.Close()

	activity, err := testClient(t, srv).GetActivityByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, activity.ID)
}

func TestRemoteErrorSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Activity not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv).GetActivityByID(context.Background(), 999)
	require.Error(t, err)

	ftErr, ok := err.(*fterr.Error)
	require.True(t, ok)
	assert.Equal(t, fterr.CodeRemoteError, ftErr.ErrorCode)
	assert.Equal(t, "Activity not found", ftErr.Message)
}

func TestRemoteErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := testClient(t, srv).GetActivityByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, fterr.CodeInternalError, fterr.Code(err))
}

func TestCreateActivityCarriesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/create-activity/", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"title":"Picnic"`)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message": "Activity created successfully", "activity": {"id": 11, "title": "Picnic"}}`))
	}))
	defer srv.Close()

	activity, err := testClient(t, srv).CreateActivity(context.Background(), "tok-123", &CreateActivityRequest{
		Title:       "Picnic",
		URL:         "https://example.org/picnic",
		Description: "Bring sandwiches.",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, activity.ID)
}

func TestUploadImage(t *testing.T) {
	t.Run("Uploaded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/core/upload-image/", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "pier.jpg", header.Filename)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"image_url": "http://cdn.example.org/media/activities/pier.jpg", "image_path": "activities/pier.jpg"}`))
		}))
		defer srv.Close()

		res := testClient(t, srv).UploadImage(context.Background(), "tok", "pier.jpg", strings.NewReader("jpegbytes"))
		require.True(t, res.OK())
		assert.Equal(t, "http://cdn.example.org/media/activities/pier.jpg", res.URL)
	})

	t.Run("Failed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "disk full"}`))
		}))
		defer srv.Close()

		res := testClient(t, srv).UploadImage(context.Background(), "tok", "pier.jpg", strings.NewReader("jpegbytes"))
		assert.False(t, res.OK())
		assert.Contains(t, res.Reason.Error(), "disk full")
	})
}

func TestFavoritesShape(t *testing.T) {
	t.Run("WellFormed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/core/get-user-favorites/", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"favorites": [{"id": 1, "title": "A"}, {"id": 2, "title": "B"}]}`))
		}))
		defer srv.Close()

		favorites, err := testClient(t, srv).Favorites(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, favorites, 2)
		assert.Equal(t, "B", favorites[1].Title)
	})

	t.Run("MalformedDegradesToEmpty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		favorites, err := testClient(t, srv).Favorites(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})
}

func TestUpdatePreference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/update-preference/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"activity_id": 5, "action": "favorite"}`, string(body))

		_, _ = w.Write([]byte(`{"message": "Activity added to favorites", "action": "favorite", "activity": {"id": 5}}`))
	}))
	defer srv.Close()

	receipt, err := testClient(t, srv).UpdatePreference(context.Background(), "tok", 5, model.ActionFavorite)
	require.NoError(t, err)
	assert.Equal(t, model.ActionFavorite, receipt.Action)
	assert.Equal(t, 5, receipt.Activity.ID)
}

func TestLegacyLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/login/", r.URL.Path)
		_, _ = w.Write([]byte(`{"access_token": "acc", "refresh_token": "ref"}`))
	}))
	defer srv.Close()

	tokens, err := testClient(t, srv).LegacyLogin(context.Background(), "sam", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.AccessToken)
	assert.Equal(t, "ref", tokens.RefreshToken)
}

package appconfig

import (
	"time"

	"github.com/funthingsnearme/nearby/internal/app/appcontext"
)

type ConfigSpec struct {
	// APIBaseURL is the base URL of the Fun Things backend REST API. All
	// activity, upload, preference and profile endpoints hang off this URL.
	APIBaseURL string `required:"true" split_words:"true" default:"http://127.0.0.1:8000/"`

	// AuthBaseURL is the base URL of the managed auth provider's identity
	// toolkit API (email/password sign-in and sign-up).
	AuthBaseURL string `split_words:"true" default:"https://identitytoolkit.googleapis.com/v1/"`

	// AuthTokenBaseURL is the base URL of the managed auth provider's token
	// exchange API, used to refresh short-lived ID tokens on demand.
	AuthTokenBaseURL string `split_words:"true" default:"https://securetoken.googleapis.com/v1/"`

	// AuthAPIKey is the web API key identifying the managed auth project.
	AuthAPIKey string `split_words:"true"`

	// LegacyAuth switches the account commands to the pre-managed-auth
	// register/login endpoints that return a stored access/refresh token pair.
	LegacyAuth bool `split_words:"true"`

	// PlacesBaseURL is the base URL of the map autocomplete API.
	PlacesBaseURL string `split_words:"true" default:"https://maps.googleapis.com/maps/api/place/"`

	// PlacesAPIKey is the API key for the map autocomplete API. When empty,
	// the location step of the creation wizard cannot resolve coordinates.
	PlacesAPIKey string `split_words:"true"`

	// LocationProvider selects the geolocation backend.
	// Valid values are: remote, geoip.
	LocationProvider string `split_words:"true" default:"remote"`

	// GeoServiceURL is the remote geolocation endpoint used by the "remote"
	// provider. It must answer a JSON document carrying latitude/longitude.
	GeoServiceURL string `split_words:"true" default:"https://ipapi.co/json/"`

	// GeoIPDBPath is the path to a MaxMind City database used by the "geoip"
	// provider. Leaving this empty disables the provider.
	GeoIPDBPath string `split_words:"true"`

	// EchoIPURL answers the caller's public IP as plain text; the "geoip"
	// provider resolves it before the database lookup.
	EchoIPURL string `split_words:"true" default:"https://api.ipify.org"`

	// RequireImage controls whether the creation wizard treats the image as
	// a required field. Earlier revisions required it, later ones did not.
	RequireImage bool `split_words:"true"`

	// RequireLocation controls whether the creation wizard includes the
	// location step with address + resolved coordinates.
	RequireLocation bool `split_words:"true" default:"true"`

	// HTTPTimeout bounds every outgoing request of every client component.
	HTTPTimeout time.Duration `split_words:"true" default:"15s"`

	// DataDir is where durable client state lives: the cached last-known
	// coordinates, the persisted auth session and the log files. Defaults to
	// the user config dir when empty.
	DataDir string `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout
	// for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program logs at
	// trace level and keeps full error stacks in the log file.
	DevMode bool `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}

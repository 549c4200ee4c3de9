package model

// TokenPair is the access/refresh pair issued by the legacy auth endpoints.
// The managed provider uses its own Credentials type instead.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

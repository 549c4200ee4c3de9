package model

// Coordinates is a resolved latitude/longitude pair. Its absence means
// "location not ready": consumers withhold coordinate-based requests rather
// than substituting a default.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

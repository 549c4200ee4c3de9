package model

import (
	"gopkg.in/guregu/null.v3"
)

// Activity is the externally-owned record representing a discoverable
// place or thing to do. The server assigns IDs; the client never edits
// or deletes an existing Activity, and the derived counts are read-only
// on this side of the wire.
type Activity struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`

	// ImageURL is populated by a separate upload step that runs strictly
	// before record creation. An upload failure leaves it empty; there is
	// no atomicity between the image and the record.
	ImageURL null.String `json:"image_url"`

	PetsAllowed   bool `json:"pets_allowed"`
	Accessibility bool `json:"accessibility"`

	// Location carries the formatted address; the coordinate pair is only
	// ever populated through an autocomplete selection.
	Location  null.String `json:"location"`
	Latitude  null.Float  `json:"latitude"`
	Longitude null.Float  `json:"longitude"`

	FavoritesCount  int `json:"favorites_count"`
	ThumbsUpCount   int `json:"thumbs_up_count"`
	ThumbsDownCount int `json:"thumbs_down_count"`
}

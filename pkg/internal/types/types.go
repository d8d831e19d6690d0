// Package types holds the request payloads accepted by the HTTP API.
package types

import "time"

// NewItem is the create payload for an item. All fields are optional; absent
// fields decode to their zero value.
type NewItem struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateOrigin  time.Time `json:"date_origin"`
}

// NewLocation is the create/update payload for a location.
type NewLocation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewCategory is the create/update payload for a category.
type NewCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewGifter is the create payload for a gifter.
type NewGifter struct {
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Notes     string    `json:"notes"`
	DateAdded time.Time `json:"date_added"`
}

// Package model defines the persisted records. Table and JSON field names are
// part of the public API surface and must stay snake_case.
package model

import (
	"time"
)

// Item is the primary inventory record.
type Item struct {
	ID          int32     `gorm:"primaryKey"         json:"id"`
	Name        string    `gorm:"size:255"           json:"name"`
	Description string    `gorm:"type:text"          json:"description"`
	DateOrigin  time.Time `gorm:"column:date_origin" json:"date_origin"`
}

func (Item) TableName() string { return "items" }

// Location is a grouping tag for where an item lives.
type Location struct {
	ID          int32  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255"   json:"name"`
	Description string `gorm:"type:text"  json:"description"`
}

func (Location) TableName() string { return "locations" }

// Category is a grouping tag.
type Category struct {
	ID          int32  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255"   json:"name"`
	Description string `gorm:"type:text"  json:"description"`
}

func (Category) TableName() string { return "categories" }

// Gifter is a provenance record. Append-only: no update or delete operations
// exist for it.
type Gifter struct {
	ID        int32     `gorm:"primaryKey"        json:"id"`
	Firstname string    `gorm:"size:255"          json:"firstname"`
	Lastname  string    `gorm:"size:255"          json:"lastname"`
	Notes     string    `gorm:"type:text"         json:"notes"`
	DateAdded time.Time `gorm:"column:date_added" json:"date_added"`
}

func (Gifter) TableName() string { return "gifters" }

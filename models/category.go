package models

import (
	"time"

	"gorm.io/datatypes"
)

type Genre string

const (
	GenreHomme Genre = "Homme"
	GenreFemme Genre = "Femme"
	GenreMixte Genre = "Mixte"
)

// ValidGenre reports whether g is one of the three catalog genres.
func ValidGenre(g string) bool {
	switch Genre(g) {
	case GenreHomme, GenreFemme, GenreMixte:
		return true
	}
	return false
}

type Category struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:TEXT" json:"description"`
	Genre         Genre          `gorm:"type:VARCHAR(10);default:'Mixte'" json:"genre"`
	Subcategories datatypes.JSON `json:"subcategories"`
	Products      []Product      `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CategorySummary is the projection attached to product listings.
type CategorySummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Genre Genre  `json:"genre"`
}

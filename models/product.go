package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:TEXT" json:"description"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Genre       Genre     `gorm:"type:VARCHAR(10);default:'Mixte'" json:"genre"`
	ImageURL    string    `json:"image_url"`
	ImageID     string    `json:"-"` // object-storage key for the current image
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

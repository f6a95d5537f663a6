package model

import (
	"time"
)

// Color is referenced by product images and variants. HexCode is validated
// against ^#[0-9A-Fa-f]{6}$ before any write reaches the store.
type Color struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	HexCode   string    `gorm:"type:varchar(7);not null" json:"hex_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Color) TableName() string {
	return "colors"
}

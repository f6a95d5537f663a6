package model

import (
	"time"
)

// ProductImage is a storefront photo. ColorID is nil for the "no color"
// bucket; the catalog groups images by this field.
type ProductImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ProductID    uint      `gorm:"index;not null" json:"product_id"`
	ColorID      *uint     `gorm:"index" json:"color_id,omitempty"`
	ImageURL     string    `gorm:"not null" json:"image_url"`
	AltText      string    `gorm:"type:varchar(200)" json:"alt_text"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	Color   *Color  `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

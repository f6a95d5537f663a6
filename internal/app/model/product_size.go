package model

import (
	"time"
)

// ProductSize is the single size model: prices and variants reference it by
// foreign key. There is no global size table to join against by name.
type ProductSize struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ProductID    uint      `gorm:"uniqueIndex:idx_product_size_name;not null" json:"product_id"`
	Name         string    `gorm:"type:varchar(10);uniqueIndex:idx_product_size_name;not null" json:"name"`
	Dimensions   string    `gorm:"type:varchar(100)" json:"dimensions"`
	WidthCm      float64   `json:"width_cm"`
	HeightCm     float64   `json:"height_cm"`
	DepthCm      float64   `json:"depth_cm"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductSize) TableName() string {
	return "product_sizes"
}

// DefaultSizeSpec describes one of the sizes created with every new product.
type DefaultSizeSpec struct {
	Name       string
	Dimensions string
	WidthCm    float64
	HeightCm   float64
	DepthCm    float64
}

// DefaultSizes are seeded on product creation (P/M/G/GG with fixed
// dimensions). Prices for them start at DefaultPlaceholderPrice.
var DefaultSizes = []DefaultSizeSpec{
	{Name: "P", Dimensions: "50x40x17cm", WidthCm: 50, HeightCm: 17, DepthCm: 40},
	{Name: "M", Dimensions: "60x50x17cm", WidthCm: 60, HeightCm: 17, DepthCm: 50},
	{Name: "G", Dimensions: "70x60x17cm", WidthCm: 70, HeightCm: 17, DepthCm: 60},
	{Name: "GG", Dimensions: "80x70x17cm", WidthCm: 80, HeightCm: 17, DepthCm: 70},
}

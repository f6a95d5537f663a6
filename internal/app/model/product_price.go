package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPlaceholderPrice is assigned to every size of a newly created
// product until the admin sets real values.
var DefaultPlaceholderPrice = decimal.NewFromInt(100)

// ProductPrice holds the price for one size of a product. Exactly one row
// exists per (product, size) pair.
type ProductPrice struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	ProductID     uint            `gorm:"not null;uniqueIndex:idx_product_size_price" json:"product_id"`
	ProductSizeID uint            `gorm:"not null;uniqueIndex:idx_product_size_price" json:"product_size_id"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Product Product     `gorm:"foreignKey:ProductID" json:"-"`
	Size    ProductSize `gorm:"foreignKey:ProductSizeID" json:"size,omitempty"`
}

func (ProductPrice) TableName() string {
	return "product_prices"
}

package model

import (
	"time"
)

// ProductVariant is one sellable size+color combination. VariantCode is
// unique across the whole store; it is assigned at creation time and never
// recomputed by the store itself. Deleting a variant is permanent and frees
// its code for a later create of the same combination.
type ProductVariant struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	ProductSizeID uint      `gorm:"index;not null" json:"product_size_id"`
	ColorID       *uint     `gorm:"index" json:"color_id,omitempty"`
	VariantCode   string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"variant_code"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	IsAvailable   bool      `gorm:"default:true" json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Product Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size    ProductSize `gorm:"foreignKey:ProductSizeID" json:"size,omitempty"`
	Color   *Color      `gorm:"foreignKey:ColorID" json:"color,omitempty"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

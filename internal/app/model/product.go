package model

import (
	"time"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
	StatusDraft    ProductStatus = "draft"
)

// Product is the aggregate root: it owns its sizes, prices, images and
// variants, and all of them are deleted with it. Deletes are permanent;
// product codes are never reissued, so a deleted code stays retired.
type Product struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	Name          string        `gorm:"not null" json:"name"`
	Description   string        `gorm:"type:text" json:"description"`
	ProductCode   string        `gorm:"type:varchar(30);uniqueIndex;not null" json:"product_code"`
	CategoryID    uint          `gorm:"index;not null" json:"category_id"`
	Observations  string        `gorm:"type:text" json:"observations"`
	IsCustomOrder bool          `gorm:"default:false" json:"is_custom_order"`
	Status        ProductStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sizes    []ProductSize    `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`
	Prices   []ProductPrice   `gorm:"foreignKey:ProductID" json:"prices,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductPriceRepository interface {
	Create(price *model.ProductPrice) error
	FindByProductID(productID uint) ([]model.ProductPrice, error)
	FindByProductAndSize(productID, sizeID uint) (*model.ProductPrice, error)
	UpdatePrice(id uint, price decimal.Decimal) error
}

type productPriceRepository struct {
	db *gorm.DB
}

func NewProductPriceRepository(db *gorm.DB) ProductPriceRepository {
	return &productPriceRepository{db: db}
}

func (r *productPriceRepository) Create(price *model.ProductPrice) error {
	if err := r.db.Create(price).Error; err != nil {
		logger.Error("Failed to create product price in database", err, map[string]interface{}{
			"product_id":      price.ProductID,
			"product_size_id": price.ProductSizeID,
		})
		return err
	}
	return nil
}

func (r *productPriceRepository) FindByProductID(productID uint) ([]model.ProductPrice, error) {
	var prices []model.ProductPrice
	err := r.db.Preload("Size").
		Where("product_id = ?", productID).
		Find(&prices).Error
	if err != nil {
		logger.Error("Failed to list product prices", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return prices, nil
}

func (r *productPriceRepository) FindByProductAndSize(productID, sizeID uint) (*model.ProductPrice, error) {
	var price model.ProductPrice
	err := r.db.Where("product_id = ? AND product_size_id = ?", productID, sizeID).
		First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *productPriceRepository) UpdatePrice(id uint, price decimal.Decimal) error {
	if err := r.db.Model(&model.ProductPrice{}).Where("id = ?", id).
		Update("price", price).Error; err != nil {
		logger.Error("Failed to update product price in database", err, map[string]interface{}{
			"price_id": id,
		})
		return err
	}
	return nil
}

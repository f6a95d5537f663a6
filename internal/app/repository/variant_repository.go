package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindAll() ([]model.ProductVariant, error)
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	Delete(id uint) error
	MarkZeroStockUnavailable() (int64, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) joinedQuery() *gorm.DB {
	return r.db.Model(&model.ProductVariant{}).
		Preload("Product").
		Preload("Size").
		Preload("Color")
}

func (r *variantRepository) Create(variant *model.ProductVariant) error {
	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant in database", err, map[string]interface{}{
			"product_id":   variant.ProductID,
			"variant_code": variant.VariantCode,
		})
		return err
	}

	logger.Debug("Variant created in database", map[string]interface{}{
		"variant_id":   variant.ID,
		"variant_code": variant.VariantCode,
	})
	return nil
}

// FindAll returns every variant joined with its product, size and color.
// No pagination: the variant count stays small for this storefront.
func (r *variantRepository) FindAll() ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.joinedQuery().Order("created_at DESC").Find(&variants).Error; err != nil {
		logger.Error("Failed to list variants", err, nil)
		return nil, err
	}
	return variants, nil
}

func (r *variantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.joinedQuery().First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	err := r.joinedQuery().
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to list variants by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *variantRepository) Update(variant *model.ProductVariant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

func (r *variantRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ProductVariant{}, id).Error; err != nil {
		logger.Error("Failed to delete variant from database", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}
	return nil
}

// MarkZeroStockUnavailable flips is_available off for variants whose stock
// has run out. Used by the nightly sweep.
func (r *variantRepository) MarkZeroStockUnavailable() (int64, error) {
	result := r.db.Model(&model.ProductVariant{}).
		Where("stock_quantity <= 0 AND is_available = ?", true).
		Update("is_available", false)
	if result.Error != nil {
		logger.Error("Failed to mark zero-stock variants unavailable", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSizeRepository interface {
	Create(size *model.ProductSize) error
	FindByProductID(productID uint) ([]model.ProductSize, error)
	FindByID(id uint) (*model.ProductSize, error)
	Update(size *model.ProductSize) error
	Delete(id uint) error
	CountReferences(id uint) (int64, error)
}

type productSizeRepository struct {
	db *gorm.DB
}

func NewProductSizeRepository(db *gorm.DB) ProductSizeRepository {
	return &productSizeRepository{db: db}
}

func (r *productSizeRepository) Create(size *model.ProductSize) error {
	if err := r.db.Create(size).Error; err != nil {
		logger.Error("Failed to create product size in database", err, map[string]interface{}{
			"product_id": size.ProductID,
			"name":       size.Name,
		})
		return err
	}
	return nil
}

func (r *productSizeRepository) FindByProductID(productID uint) ([]model.ProductSize, error) {
	var sizes []model.ProductSize
	err := r.db.Where("product_id = ?", productID).
		Order("display_order ASC, id ASC").
		Find(&sizes).Error
	if err != nil {
		logger.Error("Failed to list product sizes", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return sizes, nil
}

func (r *productSizeRepository) FindByID(id uint) (*model.ProductSize, error) {
	var size model.ProductSize
	if err := r.db.First(&size, id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *productSizeRepository) Update(size *model.ProductSize) error {
	if err := r.db.Save(size).Error; err != nil {
		logger.Error("Failed to update product size in database", err, map[string]interface{}{
			"size_id": size.ID,
		})
		return err
	}
	return nil
}

// Delete removes the size together with its price row. The price is owned
// one-to-one by the size and has no life of its own.
func (r *productSizeRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_size_id = ?", id).Delete(&model.ProductPrice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProductSize{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product size from database", err, map[string]interface{}{
			"size_id": id,
		})
		return err
	}
	return nil
}

// CountReferences counts variants still pointing at the size. The price row
// does not count: it belongs to the size and is deleted with it.
func (r *productSizeRepository) CountReferences(id uint) (int64, error) {
	var variantCount int64
	if err := r.db.Model(&model.ProductVariant{}).Where("product_size_id = ?", id).Count(&variantCount).Error; err != nil {
		return 0, err
	}
	return variantCount, nil
}

package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductImageRepository interface {
	Create(image *model.ProductImage) error
	FindByProductID(productID uint) ([]model.ProductImage, error)
	FindByID(id uint) (*model.ProductImage, error)
	Delete(id uint) error
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	return &productImageRepository{db: db}
}

func (r *productImageRepository) Create(image *model.ProductImage) error {
	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create product image in database", err, map[string]interface{}{
			"product_id": image.ProductID,
			"color_id":   image.ColorID,
		})
		return err
	}

	logger.Debug("Product image created in database", map[string]interface{}{
		"image_id":   image.ID,
		"product_id": image.ProductID,
	})
	return nil
}

func (r *productImageRepository) FindByProductID(productID uint) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.Preload("Color").
		Where("product_id = ?", productID).
		Order("display_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to list product images", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) FindByID(id uint) (*model.ProductImage, error) {
	var image model.ProductImage
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ProductImage{}, id).Error; err != nil {
		logger.Error("Failed to delete product image from database", err, map[string]interface{}{
			"image_id": id,
		})
		return err
	}
	return nil
}

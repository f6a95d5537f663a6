package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorRepository interface {
	Create(color *model.Color) error
	FindAll() ([]model.Color, error)
	FindByID(id uint) (*model.Color, error)
	Update(color *model.Color) error
	Delete(id uint) error
	CountReferences(id uint) (int64, error)
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(color *model.Color) error {
	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create color in database", err, map[string]interface{}{
			"name":     color.Name,
			"hex_code": color.HexCode,
		})
		return err
	}

	logger.Debug("Color created in database", map[string]interface{}{
		"color_id": color.ID,
		"name":     color.Name,
	})
	return nil
}

func (r *colorRepository) FindAll() ([]model.Color, error) {
	var colors []model.Color
	if err := r.db.Order("name ASC").Find(&colors).Error; err != nil {
		logger.Error("Failed to list colors", err, nil)
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) FindByID(id uint) (*model.Color, error) {
	var color model.Color
	if err := r.db.First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) Update(color *model.Color) error {
	if err := r.db.Save(color).Error; err != nil {
		logger.Error("Failed to update color in database", err, map[string]interface{}{
			"color_id": color.ID,
		})
		return err
	}
	return nil
}

func (r *colorRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Color{}, id).Error; err != nil {
		logger.Error("Failed to delete color from database", err, map[string]interface{}{
			"color_id": id,
		})
		return err
	}
	return nil
}

// CountReferences counts images and variants still pointing at the color.
func (r *colorRepository) CountReferences(id uint) (int64, error) {
	var imageCount int64
	if err := r.db.Model(&model.ProductImage{}).Where("color_id = ?", id).Count(&imageCount).Error; err != nil {
		return 0, err
	}

	var variantCount int64
	if err := r.db.Model(&model.ProductVariant{}).Where("color_id = ?", id).Count(&variantCount).Error; err != nil {
		return 0, err
	}

	return imageCount + variantCount, nil
}

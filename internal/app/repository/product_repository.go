package repository

import (
	"fmt"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	CategoryName string
	CategoryID   *uint
	Status       *model.ProductStatus
	Search       string
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	Update(product *model.Product) error
	UpdateChecked(product *model.Product, expectedVersion time.Time) (bool, error)
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// aggregateQuery preloads everything the catalog and the admin editor need:
// category, sizes in display order, prices with their size, images with
// their color, variants.
func (r *productRepository) aggregateQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_sizes.display_order ASC, product_sizes.id ASC")
		}).
		Preload("Prices.Size").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.display_order ASC, product_images.id ASC")
		}).
		Preload("Images.Color").
		Preload("Variants")
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":         product.Name,
			"product_code": product.ProductCode,
			"category_id":  product.CategoryID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	})
	return nil
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	query := r.aggregateQuery()

	if filter.CategoryName != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", filter.CategoryName)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("products.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.CategoryName,
			"search":   filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.aggregateQuery().First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	if err := r.aggregateQuery().Where("products.product_code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// UpdateChecked writes the product only if its stored updated_at still
// matches expectedVersion (microsecond precision). Check and write are one
// conditional UPDATE, so two writers holding the same version cannot both
// pass. Returns false when the row was changed by someone else since the
// caller read it.
func (r *productRepository) UpdateChecked(product *model.Product, expectedVersion time.Time) (bool, error) {
	// The stored timestamp may carry more precision than the version token,
	// so the match is a microsecond-wide window rather than equality.
	lower := expectedVersion.Truncate(time.Microsecond)
	upper := lower.Add(time.Microsecond)

	result := r.db.Model(&model.Product{}).
		Where("id = ? AND updated_at >= ? AND updated_at < ?", product.ID, lower, upper).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(product)
	if result.Error != nil {
		logger.Error("Failed to update product in database", result.Error, map[string]interface{}{
			"product_id": product.ID,
		})
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		var current model.Product
		if err := r.db.Select("id", "updated_at").First(&current, product.ID).Error; err != nil {
			return false, err
		}
		logger.Warn("Stale product write rejected", map[string]interface{}{
			"product_id":       product.ID,
			"expected_version": expectedVersion,
			"stored_version":   current.UpdatedAt,
		})
		return false, nil
	}
	return true, nil
}

// Delete removes the product and every owned child row in one transaction.
func (r *productRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&model.ProductVariant{},
			&model.ProductImage{},
			&model.ProductPrice{},
			&model.ProductSize{},
		}
		for _, child := range children {
			if err := tx.Where("product_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete product aggregate from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product aggregate deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

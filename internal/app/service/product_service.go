package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNameRequired  = errors.New("product name is required")
	ErrCategoryRequired     = errors.New("product category is required")
	ErrInvalidPrice         = errors.New("price must be greater than zero")
	ErrStaleProductWrite    = errors.New("product was modified by someone else")
	ErrDuplicateProductCode = errors.New("product code already exists")
)

// ImageStore uploads image bytes and returns the public URL. Implemented by
// the S3 storage; stubbed in tests.
type ImageStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

type CreateProductInput struct {
	Name          string
	Description   string
	CategoryID    uint
	Observations  string
	IsCustomOrder bool
	Status        model.ProductStatus
}

type UpdateProductInput struct {
	ID            uint
	Name          string
	Description   string
	CategoryID    uint
	Observations  string
	IsCustomOrder bool
	Status        model.ProductStatus
	// Version is the updated_at the client read. A mismatch means another
	// admin saved in between; the write is rejected instead of overwriting.
	Version time.Time
}

type PriceInput struct {
	ProductSizeID uint
	Price         decimal.Decimal
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	ColorID     *uint
	AltText     string
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(input CreateProductInput) (*model.Product, error)
	UpdateProduct(input UpdateProductInput) (*model.Product, error)
	UpdatePrices(productID uint, prices []PriceInput) error
	DeleteProduct(id uint) error
	AttachImages(ctx context.Context, productID uint, uploads []ImageUpload) ([]model.ProductImage, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageRepo    repository.ProductImageRepository
	generator    codegen.Generator
	imageStore   ImageStore
	db           *gorm.DB
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	imageRepo repository.ProductImageRepository,
	generator codegen.Generator,
	imageStore ImageStore,
	db *gorm.DB,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		generator:    generator,
		imageStore:   imageStore,
		db:           db,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// CreateProduct creates the whole aggregate in one transaction: product row
// with a generated code, the four default sizes and a placeholder price per
// size. A failure at any step rolls everything back; there is no partial
// product to clean up afterwards.
func (s *productService) CreateProduct(input CreateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, ErrProductNameRequired
	}
	if input.CategoryID == 0 {
		return nil, ErrCategoryRequired
	}

	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create product: category not found", map[string]interface{}{
				"category_id": input.CategoryID,
			})
			return nil, ErrCategoryRequired
		}
		return nil, err
	}

	code, err := s.generator.ProductCode(category)
	if err != nil {
		logger.Error("Failed to generate product code", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.StatusDraft
	}

	product := &model.Product{
		Name:          input.Name,
		Description:   input.Description,
		ProductCode:   code,
		CategoryID:    category.ID,
		Observations:  input.Observations,
		IsCustomOrder: input.IsCustomOrder,
		Status:        status,
	}

	logger.Info("Creating product aggregate", map[string]interface{}{
		"name":         product.Name,
		"product_code": product.ProductCode,
		"category_id":  category.ID,
	})

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		for order, spec := range model.DefaultSizes {
			size := model.ProductSize{
				ProductID:    product.ID,
				Name:         spec.Name,
				Dimensions:   spec.Dimensions,
				WidthCm:      spec.WidthCm,
				HeightCm:     spec.HeightCm,
				DepthCm:      spec.DepthCm,
				DisplayOrder: order,
			}
			if err := tx.Create(&size).Error; err != nil {
				return err
			}

			price := model.ProductPrice{
				ProductID:     product.ID,
				ProductSizeID: size.ID,
				Price:         model.DefaultPlaceholderPrice,
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Product code conflict on create", map[string]interface{}{
				"product_code": product.ProductCode,
			})
			return nil, ErrDuplicateProductCode
		}
		logger.Error("Failed to create product aggregate", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product aggregate created", map[string]interface{}{
		"product_id":   product.ID,
		"product_code": product.ProductCode,
	})

	return s.GetProductByID(product.ID)
}

// UpdateProduct rewrites the product's base fields. The write is rejected
// when the stored version no longer matches input.Version.
func (s *productService) UpdateProduct(input UpdateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, ErrProductNameRequired
	}
	if input.CategoryID == 0 {
		return nil, ErrCategoryRequired
	}

	existing, err := s.productRepo.FindByID(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.CategoryID = input.CategoryID
	existing.Observations = input.Observations
	existing.IsCustomOrder = input.IsCustomOrder
	if input.Status != "" {
		existing.Status = input.Status
	}

	updated, err := s.productRepo.UpdateChecked(existing, input.Version)
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": input.ID,
		})
		return nil, err
	}
	if !updated {
		return nil, ErrStaleProductWrite
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": input.ID,
	})
	return s.GetProductByID(input.ID)
}

// UpdatePrices rewrites the given price rows in one transaction. Every
// price is validated before any store call; sizes not mentioned keep their
// current price.
func (s *productService) UpdatePrices(productID uint, prices []PriceInput) error {
	for _, p := range prices {
		if !p.Price.IsPositive() {
			logger.Warn("Rejected non-positive price", map[string]interface{}{
				"product_id":      productID,
				"product_size_id": p.ProductSizeID,
				"price":           p.Price.String(),
			})
			return ErrInvalidPrice
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range prices {
			result := tx.Model(&model.ProductPrice{}).
				Where("product_id = ? AND product_size_id = ?", productID, p.ProductSizeID).
				Update("price", p.Price)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("no price row for product %d size %d: %w", productID, p.ProductSizeID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to update product prices", err, map[string]interface{}{
			"product_id": productID,
			"count":      len(prices),
		})
		return err
	}

	logger.Info("Product prices updated", map[string]interface{}{
		"product_id": productID,
		"count":      len(prices),
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted with owned prices, images and variants", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// AttachImages uploads each image to its color folder and inserts the row.
// Pairs are independent: a failure stops the loop and reports the error, but
// already-stored pairs stay (upload+insert has no aggregate rollback).
func (s *productService) AttachImages(ctx context.Context, productID uint, uploads []ImageUpload) ([]model.ProductImage, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var stored []model.ProductImage
	for order, upload := range uploads {
		folder := fmt.Sprintf("products/%d/no-color", productID)
		if upload.ColorID != nil {
			folder = fmt.Sprintf("products/%d/color-%d", productID, *upload.ColorID)
		}

		url, err := s.imageStore.Upload(ctx, folder, upload.Filename, upload.ContentType, upload.Data)
		if err != nil {
			logger.Error("Failed to upload product image", err, map[string]interface{}{
				"product_id": productID,
				"filename":   upload.Filename,
			})
			return stored, err
		}

		image := model.ProductImage{
			ProductID:    productID,
			ColorID:      upload.ColorID,
			ImageURL:     url,
			AltText:      upload.AltText,
			DisplayOrder: order,
		}
		if err := s.imageRepo.Create(&image); err != nil {
			return stored, err
		}
		stored = append(stored, image)
	}

	logger.Info("Product images attached", map[string]interface{}{
		"product_id": productID,
		"count":      len(stored),
	})
	return stored, nil
}

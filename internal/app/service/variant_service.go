package service

import (
	"errors"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVariantNotFound      = errors.New("variant not found")
	ErrDuplicateVariantCode = errors.New("variant code already exists")
	ErrInvalidStock         = errors.New("stock quantity cannot be negative")
	ErrSizeNotFound         = errors.New("product size not found")
	ErrSizeNotOfProduct     = errors.New("size does not belong to product")
	ErrColorNotFound        = errors.New("color not found")
)

type VariantInput struct {
	ProductID     uint
	ProductSizeID uint
	ColorID       *uint
	StockQuantity int
	IsAvailable   bool
}

type VariantService interface {
	ListVariants() ([]model.ProductVariant, error)
	ListByProduct(productID uint) ([]model.ProductVariant, error)
	GetVariantByID(id uint) (*model.ProductVariant, error)
	CreateVariant(input VariantInput) (*model.ProductVariant, error)
	UpdateVariant(id uint, input VariantInput) (*model.ProductVariant, error)
	DeleteVariant(id uint) error
}

type variantService struct {
	variantRepo repository.VariantRepository
	productRepo repository.ProductRepository
	sizeRepo    repository.ProductSizeRepository
	colorRepo   repository.ColorRepository
	generator   codegen.Generator
}

func NewVariantService(
	variantRepo repository.VariantRepository,
	productRepo repository.ProductRepository,
	sizeRepo repository.ProductSizeRepository,
	colorRepo repository.ColorRepository,
	generator codegen.Generator,
) VariantService {
	return &variantService{
		variantRepo: variantRepo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
		colorRepo:   colorRepo,
		generator:   generator,
	}
}

func (s *variantService) ListVariants() ([]model.ProductVariant, error) {
	variants, err := s.variantRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list variants", err)
		return nil, err
	}
	return variants, nil
}

func (s *variantService) ListByProduct(productID uint) ([]model.ProductVariant, error) {
	variants, err := s.variantRepo.FindByProductID(productID)
	if err != nil {
		logger.Error("Failed to list variants by product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (s *variantService) GetVariantByID(id uint) (*model.ProductVariant, error) {
	variant, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		logger.Error("Failed to fetch variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}
	return variant, nil
}

// resolveRefs loads and validates the product, size and optional color the
// variant points at.
func (s *variantService) resolveRefs(input VariantInput) (*model.Product, *model.ProductSize, *model.Color, error) {
	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrProductNotFound
		}
		return nil, nil, nil, err
	}

	size, err := s.sizeRepo.FindByID(input.ProductSizeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrSizeNotFound
		}
		return nil, nil, nil, err
	}
	if size.ProductID != product.ID {
		logger.Warn("Variant size does not belong to product", map[string]interface{}{
			"product_id": product.ID,
			"size_id":    size.ID,
		})
		return nil, nil, nil, ErrSizeNotOfProduct
	}

	var color *model.Color
	if input.ColorID != nil {
		color, err = s.colorRepo.FindByID(*input.ColorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, nil, ErrColorNotFound
			}
			return nil, nil, nil, err
		}
	}

	return product, size, color, nil
}

// assignCode asks the generator for a code; on failure it falls back to a
// timestamp-based placeholder. The fallback is a documented degraded mode,
// logged loudly so a generator outage cannot pass unnoticed.
func (s *variantService) assignCode(product *model.Product, size *model.ProductSize, color *model.Color) string {
	code, err := s.generator.VariantCode(product, size, color)
	if err != nil {
		code = codegen.FallbackVariantCode(time.Now())
		logger.Warn("Variant code generator failed, using fallback code", map[string]interface{}{
			"product_id": product.ID,
			"size_id":    size.ID,
			"fallback":   code,
			"error":      err.Error(),
		})
	}
	return code
}

func (s *variantService) CreateVariant(input VariantInput) (*model.ProductVariant, error) {
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	product, size, color, err := s.resolveRefs(input)
	if err != nil {
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		ProductSizeID: size.ID,
		ColorID:       input.ColorID,
		VariantCode:   s.assignCode(product, size, color),
		StockQuantity: input.StockQuantity,
		IsAvailable:   input.IsAvailable,
	}

	logger.Info("Creating variant", map[string]interface{}{
		"product_id":   product.ID,
		"variant_code": variant.VariantCode,
	})

	if err := s.variantRepo.Create(variant); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Duplicate variant code rejected", map[string]interface{}{
				"variant_code": variant.VariantCode,
			})
			return nil, ErrDuplicateVariantCode
		}
		return nil, err
	}

	return s.GetVariantByID(variant.ID)
}

// UpdateVariant rewrites the variant. The code is regenerated
// unconditionally from the (possibly new) size and color.
func (s *variantService) UpdateVariant(id uint, input VariantInput) (*model.ProductVariant, error) {
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	existing, err := s.variantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	if input.ProductID == 0 {
		input.ProductID = existing.ProductID
	}

	product, size, color, err := s.resolveRefs(input)
	if err != nil {
		return nil, err
	}

	updated := &model.ProductVariant{
		ID:            existing.ID,
		ProductID:     product.ID,
		ProductSizeID: size.ID,
		ColorID:       input.ColorID,
		VariantCode:   s.assignCode(product, size, color),
		StockQuantity: input.StockQuantity,
		IsAvailable:   input.IsAvailable,
		CreatedAt:     existing.CreatedAt,
	}

	if err := s.variantRepo.Update(updated); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Duplicate variant code rejected on update", map[string]interface{}{
				"variant_id":   id,
				"variant_code": updated.VariantCode,
			})
			return nil, ErrDuplicateVariantCode
		}
		return nil, err
	}

	logger.Info("Variant updated", map[string]interface{}{
		"variant_id":   id,
		"variant_code": updated.VariantCode,
	})
	return s.GetVariantByID(id)
}

func (s *variantService) DeleteVariant(id uint) error {
	if _, err := s.variantRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}

	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Variant deleted", map[string]interface{}{
		"variant_id": id,
	})
	return nil
}

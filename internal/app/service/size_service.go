package service

import (
	"errors"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSizeName          = errors.New("size name is required")
	ErrInvalidDimensions = errors.New("size dimensions must be positive")
	ErrSizeInUse         = errors.New("size is referenced by variants")
	ErrDuplicateSize     = errors.New("size name already exists for this product")
)

type SizeInput struct {
	Name         string
	Dimensions   string
	WidthCm      float64
	HeightCm     float64
	DepthCm      float64
	DisplayOrder int
}

type SizeService interface {
	ListSizes(productID uint) ([]model.ProductSize, error)
	GetSizeByID(id uint) (*model.ProductSize, error)
	CreateSize(productID uint, input SizeInput) (*model.ProductSize, error)
	UpdateSize(id uint, input SizeInput) (*model.ProductSize, error)
	DeleteSize(id uint) error
}

type sizeService struct {
	sizeRepo    repository.ProductSizeRepository
	priceRepo   repository.ProductPriceRepository
	productRepo repository.ProductRepository
}

func NewSizeService(
	sizeRepo repository.ProductSizeRepository,
	priceRepo repository.ProductPriceRepository,
	productRepo repository.ProductRepository,
) SizeService {
	return &sizeService{
		sizeRepo:    sizeRepo,
		priceRepo:   priceRepo,
		productRepo: productRepo,
	}
}

func (s *sizeService) ListSizes(productID uint) ([]model.ProductSize, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.sizeRepo.FindByProductID(productID)
}

func (s *sizeService) GetSizeByID(id uint) (*model.ProductSize, error) {
	size, err := s.sizeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSizeNotFound
		}
		return nil, err
	}
	return size, nil
}

func (s *sizeService) CreateSize(productID uint, input SizeInput) (*model.ProductSize, error) {
	if err := validateSizeInput(input); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	size := &model.ProductSize{
		ProductID:    productID,
		Name:         input.Name,
		Dimensions:   input.Dimensions,
		WidthCm:      input.WidthCm,
		HeightCm:     input.HeightCm,
		DepthCm:      input.DepthCm,
		DisplayOrder: input.DisplayOrder,
	}

	if err := s.sizeRepo.Create(size); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateSize
		}
		return nil, err
	}

	// Every size carries a price row; it starts at the placeholder until an
	// admin sets the real value.
	price := &model.ProductPrice{
		ProductID:     productID,
		ProductSizeID: size.ID,
		Price:         model.DefaultPlaceholderPrice,
	}
	if err := s.priceRepo.Create(price); err != nil {
		logger.Error("Failed to create placeholder price for new size", err, map[string]interface{}{
			"product_id": productID,
			"size_id":    size.ID,
		})
		return nil, err
	}

	logger.Info("Product size created", map[string]interface{}{
		"product_id": productID,
		"size_id":    size.ID,
		"name":       size.Name,
	})
	return size, nil
}

func (s *sizeService) UpdateSize(id uint, input SizeInput) (*model.ProductSize, error) {
	if err := validateSizeInput(input); err != nil {
		return nil, err
	}

	size, err := s.GetSizeByID(id)
	if err != nil {
		return nil, err
	}

	size.Name = input.Name
	size.Dimensions = input.Dimensions
	size.WidthCm = input.WidthCm
	size.HeightCm = input.HeightCm
	size.DepthCm = input.DepthCm
	size.DisplayOrder = input.DisplayOrder

	if err := s.sizeRepo.Update(size); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateSize
		}
		return nil, err
	}

	logger.Info("Product size updated", map[string]interface{}{
		"size_id": id,
	})
	return size, nil
}

// DeleteSize refuses to delete a size still referenced by variants. Its
// price row is removed along with it.
func (s *sizeService) DeleteSize(id uint) error {
	if _, err := s.GetSizeByID(id); err != nil {
		return err
	}

	count, err := s.sizeRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete size in use", map[string]interface{}{
			"size_id":         id,
			"reference_count": count,
		})
		return ErrSizeInUse
	}

	if err := s.sizeRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product size deleted", map[string]interface{}{
		"size_id": id,
	})
	return nil
}

func validateSizeInput(input SizeInput) error {
	if input.Name == "" {
		return ErrSizeName
	}
	if input.WidthCm <= 0 || input.HeightCm <= 0 || input.DepthCm <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}

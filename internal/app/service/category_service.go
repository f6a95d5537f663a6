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
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryName      = errors.New("category name is required")
	ErrCategoryInUse     = errors.New("category is referenced by products")
	ErrDuplicateCategory = errors.New("category name already exists")
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	CreateCategory(name, description, icon string) (*model.Category, error)
	UpdateCategory(id uint, name, description, icon string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, description, icon string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryName
	}

	category := &model.Category{
		Name:        name,
		Description: description,
		Icon:        icon,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Duplicate category name rejected", map[string]interface{}{
				"name": name,
			})
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name, description, icon string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryName
	}

	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = description
	category.Icon = icon

	if err := s.categoryRepo.Update(category); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id": id,
	})
	return category, nil
}

// DeleteCategory refuses to delete a category still referenced by products
// (restrict policy).
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategoryByID(id); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete category in use", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

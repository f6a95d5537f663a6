package service

import (
	"errors"
	"regexp"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrColorName      = errors.New("color name is required")
	ErrInvalidHexCode = errors.New("hex code must match #RRGGBB")
	ErrColorInUse     = errors.New("color is referenced by images or variants")
	ErrDuplicateColor = errors.New("color name already exists")
)

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type ColorService interface {
	ListColors() ([]model.Color, error)
	GetColorByID(id uint) (*model.Color, error)
	CreateColor(name, hexCode string) (*model.Color, error)
	UpdateColor(id uint, name, hexCode string) (*model.Color, error)
	DeleteColor(id uint) error
}

type colorService struct {
	colorRepo repository.ColorRepository
}

func NewColorService(colorRepo repository.ColorRepository) ColorService {
	return &colorService{colorRepo: colorRepo}
}

func (s *colorService) ListColors() ([]model.Color, error) {
	colors, err := s.colorRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list colors", err)
		return nil, err
	}
	return colors, nil
}

func (s *colorService) GetColorByID(id uint) (*model.Color, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColorNotFound
		}
		return nil, err
	}
	return color, nil
}

func (s *colorService) CreateColor(name, hexCode string) (*model.Color, error) {
	if err := validateColor(name, hexCode); err != nil {
		return nil, err
	}

	color := &model.Color{
		Name:    name,
		HexCode: hexCode,
	}

	if err := s.colorRepo.Create(color); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateColor
		}
		return nil, err
	}

	logger.Info("Color created", map[string]interface{}{
		"color_id": color.ID,
		"name":     color.Name,
		"hex_code": color.HexCode,
	})
	return color, nil
}

func (s *colorService) UpdateColor(id uint, name, hexCode string) (*model.Color, error) {
	if err := validateColor(name, hexCode); err != nil {
		return nil, err
	}

	color, err := s.GetColorByID(id)
	if err != nil {
		return nil, err
	}

	color.Name = name
	color.HexCode = hexCode

	if err := s.colorRepo.Update(color); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrDuplicateColor
		}
		return nil, err
	}

	logger.Info("Color updated", map[string]interface{}{
		"color_id": id,
	})
	return color, nil
}

// DeleteColor refuses to delete a color still referenced by product images
// or variants (restrict policy).
func (s *colorService) DeleteColor(id uint) error {
	if _, err := s.GetColorByID(id); err != nil {
		return err
	}

	count, err := s.colorRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Refusing to delete color in use", map[string]interface{}{
			"color_id":        id,
			"reference_count": count,
		})
		return ErrColorInUse
	}

	if err := s.colorRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Color deleted", map[string]interface{}{
		"color_id": id,
	})
	return nil
}

func validateColor(name, hexCode string) error {
	if name == "" {
		return ErrColorName
	}
	if !hexPattern.MatchString(hexCode) {
		return ErrInvalidHexCode
	}
	return nil
}

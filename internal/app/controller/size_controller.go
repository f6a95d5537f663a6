package controller

import (
	"errors"
	"net/http"

	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SizeController struct {
	sizeService service.SizeService
}

func NewSizeController(sizeService service.SizeService) *SizeController {
	return &SizeController{
		sizeService: sizeService,
	}
}

type SizeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Dimensions   string  `json:"dimensions"`
	WidthCm      float64 `json:"width_cm" binding:"required,gt=0"`
	HeightCm     float64 `json:"height_cm" binding:"required,gt=0"`
	DepthCm      float64 `json:"depth_cm" binding:"required,gt=0"`
	DisplayOrder int     `json:"display_order"`
}

// ListSizes returns a product's sizes in display order
// GET /api/v1/admin/products/:id/sizes
func (ctrl *SizeController) ListSizes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	sizes, err := ctrl.sizeService.ListSizes(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to list sizes", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sizes": sizes,
	})
}

// CreateSize adds a size to a product
// POST /api/v1/admin/products/:id/sizes
func (ctrl *SizeController) CreateSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do tamanho inválidos")
		return
	}

	size, err := ctrl.sizeService.CreateSize(productID, service.SizeInput{
		Name:         req.Name,
		Dimensions:   req.Dimensions,
		WidthCm:      req.WidthCm,
		HeightCm:     req.HeightCm,
		DepthCm:      req.DepthCm,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		ctrl.respondSizeError(c, err, log)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"size": size,
	})
}

// UpdateSize saves size fields
// PUT /api/v1/admin/sizes/:id
func (ctrl *SizeController) UpdateSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de tamanho inválido")
		return
	}

	var req SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do tamanho inválidos")
		return
	}

	size, err := ctrl.sizeService.UpdateSize(id, service.SizeInput{
		Name:         req.Name,
		Dimensions:   req.Dimensions,
		WidthCm:      req.WidthCm,
		HeightCm:     req.HeightCm,
		DepthCm:      req.DepthCm,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		ctrl.respondSizeError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"size": size,
	})
}

// DeleteSize removes a size that no price or variant references
// DELETE /api/v1/admin/sizes/:id
func (ctrl *SizeController) DeleteSize(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de tamanho inválido")
		return
	}

	if err := ctrl.sizeService.DeleteSize(id); err != nil {
		switch {
		case errors.Is(err, service.ErrSizeNotFound):
			apperrors.NotFound(c, apperrors.SizeNotFound, "Tamanho não encontrado")
		case errors.Is(err, service.ErrSizeInUse):
			apperrors.Conflict(c, apperrors.SizeInUse, "Este tamanho possui variações e não pode ser removido")
		default:
			log.Error("Failed to delete size", err, map[string]interface{}{
				"size_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tamanho removido",
	})
}

func (ctrl *SizeController) respondSizeError(c *gin.Context, err error, log *logger.Logger) {
	switch {
	case errors.Is(err, service.ErrSizeNotFound):
		apperrors.NotFound(c, apperrors.SizeNotFound, "Tamanho não encontrado")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
	case errors.Is(err, service.ErrSizeName), errors.Is(err, service.ErrInvalidDimensions):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Nome e dimensões do tamanho são obrigatórios")
	case errors.Is(err, service.ErrDuplicateSize):
		apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Já existe um tamanho com este nome para o produto")
	default:
		log.Error("Size operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

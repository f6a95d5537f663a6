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

type VariantController struct {
	variantService service.VariantService
}

func NewVariantController(variantService service.VariantService) *VariantController {
	return &VariantController{
		variantService: variantService,
	}
}

type VariantRequest struct {
	ProductID     uint  `json:"product_id" binding:"required"`
	ProductSizeID uint  `json:"product_size_id" binding:"required"`
	ColorID       *uint `json:"color_id"`
	StockQuantity int   `json:"stock_quantity" binding:"gte=0"`
	IsAvailable   bool  `json:"is_available"`
}

// ListVariants returns every variant, or one product's variants
// GET /api/v1/admin/variants?product_id=3
func (ctrl *VariantController) ListVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		variants interface{}
		err      error
	)
	if productID, ok := parseQueryID(c, "product_id"); ok {
		variants, err = ctrl.variantService.ListByProduct(productID)
	} else {
		variants, err = ctrl.variantService.ListVariants()
	}
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to list variants", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variants": variants,
	})
}

// GetVariant returns one variant with product, size and color
// GET /api/v1/admin/variants/:id
func (ctrl *VariantController) GetVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de variação inválido")
		return
	}

	variant, err := ctrl.variantService.GetVariantByID(id)
	if err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variação não encontrada")
			return
		}
		log.Error("Failed to fetch variant", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// CreateVariant registers a size+color combination with its own code
// POST /api/v1/admin/variants
func (ctrl *VariantController) CreateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da variação inválidos")
		return
	}

	variant, err := ctrl.variantService.CreateVariant(service.VariantInput{
		ProductID:     req.ProductID,
		ProductSizeID: req.ProductSizeID,
		ColorID:       req.ColorID,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		ctrl.respondVariantError(c, err, log)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}

// UpdateVariant saves variant fields and refreshes its code
// PUT /api/v1/admin/variants/:id
func (ctrl *VariantController) UpdateVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de variação inválido")
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da variação inválidos")
		return
	}

	variant, err := ctrl.variantService.UpdateVariant(id, service.VariantInput{
		ProductID:     req.ProductID,
		ProductSizeID: req.ProductSizeID,
		ColorID:       req.ColorID,
		StockQuantity: req.StockQuantity,
		IsAvailable:   req.IsAvailable,
	})
	if err != nil {
		ctrl.respondVariantError(c, err, log)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
	})
}

// DeleteVariant removes the variant
// DELETE /api/v1/admin/variants/:id
func (ctrl *VariantController) DeleteVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de variação inválido")
		return
	}

	if err := ctrl.variantService.DeleteVariant(id); err != nil {
		if errors.Is(err, service.ErrVariantNotFound) {
			apperrors.NotFound(c, apperrors.VariantNotFound, "Variação não encontrada")
			return
		}
		log.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Variação removida",
	})
}

func (ctrl *VariantController) respondVariantError(c *gin.Context, err error, log *logger.Logger) {
	switch {
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.VariantNotFound, "Variação não encontrada")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
	case errors.Is(err, service.ErrSizeNotFound), errors.Is(err, service.ErrSizeNotOfProduct):
		apperrors.NotFound(c, apperrors.SizeNotFound, "Tamanho não encontrado para este produto")
	case errors.Is(err, service.ErrColorNotFound):
		apperrors.NotFound(c, apperrors.ColorNotFound, "Cor não encontrada")
	case errors.Is(err, service.ErrInvalidStock):
		apperrors.BadRequest(c, apperrors.ValidationInvalidStock, "Quantidade em estoque inválida")
	case errors.Is(err, service.ErrDuplicateVariantCode):
		apperrors.Conflict(c, apperrors.VariantCodeExists, "Já existe uma variação com esta combinação de tamanho e cor")
	default:
		log.Error("Variant operation failed", err, nil)
		apperrors.InternalError(c, "")
	}
}

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

type ColorController struct {
	colorService service.ColorService
}

func NewColorController(colorService service.ColorService) *ColorController {
	return &ColorController{
		colorService: colorService,
	}
}

type ColorRequest struct {
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code" binding:"required"`
}

// ListColors returns all colors
// GET /api/v1/colors
func (ctrl *ColorController) ListColors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	colors, err := ctrl.colorService.ListColors()
	if err != nil {
		log.Error("Failed to list colors", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"colors": colors,
	})
}

// CreateColor creates a color
// POST /api/v1/admin/colors
func (ctrl *ColorController) CreateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome e código hexadecimal são obrigatórios")
		return
	}

	color, err := ctrl.colorService.CreateColor(req.Name, req.HexCode)
	if err != nil {
		ctrl.respondColorError(c, err, log, 0)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"color": color,
	})
}

// UpdateColor saves color fields
// PUT /api/v1/admin/colors/:id
func (ctrl *ColorController) UpdateColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cor inválido")
		return
	}

	var req ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome e código hexadecimal são obrigatórios")
		return
	}

	color, err := ctrl.colorService.UpdateColor(id, req.Name, req.HexCode)
	if err != nil {
		ctrl.respondColorError(c, err, log, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"color": color,
	})
}

// DeleteColor removes a color that no image or variant references
// DELETE /api/v1/admin/colors/:id
func (ctrl *ColorController) DeleteColor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cor inválido")
		return
	}

	if err := ctrl.colorService.DeleteColor(id); err != nil {
		switch {
		case errors.Is(err, service.ErrColorNotFound):
			apperrors.NotFound(c, apperrors.ColorNotFound, "Cor não encontrada")
		case errors.Is(err, service.ErrColorInUse):
			apperrors.Conflict(c, apperrors.ColorInUse, "Esta cor está em uso e não pode ser removida")
		default:
			log.Error("Failed to delete color", err, map[string]interface{}{
				"color_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cor removida",
	})
}

func (ctrl *ColorController) respondColorError(c *gin.Context, err error, log *logger.Logger, id uint) {
	switch {
	case errors.Is(err, service.ErrColorNotFound):
		apperrors.NotFound(c, apperrors.ColorNotFound, "Cor não encontrada")
	case errors.Is(err, service.ErrInvalidHexCode):
		apperrors.BadRequest(c, apperrors.ValidationInvalidHex, "Código hexadecimal inválido. Use o formato #RRGGBB")
	case errors.Is(err, service.ErrColorName):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome da cor é obrigatório")
	case errors.Is(err, service.ErrDuplicateColor):
		apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Já existe uma cor com este nome")
	default:
		log.Error("Color operation failed", err, map[string]interface{}{
			"color_id": id,
		})
		apperrors.InternalError(c, "")
	}
}

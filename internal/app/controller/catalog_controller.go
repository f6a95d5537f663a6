package controller

import (
	"errors"
	"net/http"

	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListCatalog returns the public catalog, optionally filtered by category
// GET /api/v1/catalog?category=camas
func (ctrl *CatalogController) ListCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := c.Query("category")

	entries, err := ctrl.catalogService.ListCatalog(category)
	if err != nil {
		log.Error("Failed to assemble catalog", err, map[string]interface{}{
			"category": category,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": entries,
		"count":    len(entries),
	})
}

// GetCatalogEntry returns one product with its sizes, prices and images
// GET /api/v1/catalog/:id
func (ctrl *CatalogController) GetCatalogEntry(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	entry, err := ctrl.catalogService.GetEntry(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to fetch catalog entry", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": entry,
	})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ListCategories returns all categories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory creates a category
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome da categoria é obrigatório")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name, req.Description, req.Icon)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Já existe uma categoria com este nome")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory saves category fields
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de categoria inválido")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome da categoria é obrigatório")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, req.Name, req.Description, req.Icon)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
		case errors.Is(err, service.ErrDuplicateCategory):
			apperrors.Conflict(c, apperrors.CategoryNameExists, "Já existe uma categoria com este nome")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes a category that no product references
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de categoria inválido")
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
		case errors.Is(err, service.ErrCategoryInUse):
			apperrors.Conflict(c, apperrors.CategoryInUse, "Esta categoria possui produtos e não pode ser removida")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categoria removida",
	})
}

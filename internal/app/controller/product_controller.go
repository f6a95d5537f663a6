package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductController struct {
	productService service.ProductService
	exportService  service.ExportService
}

func NewProductController(productService service.ProductService, exportService service.ExportService) *ProductController {
	return &ProductController{
		productService: productService,
		exportService:  exportService,
	}
}

type CreateProductRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	CategoryID    uint                `json:"category_id" binding:"required"`
	Observations  string              `json:"observations"`
	IsCustomOrder bool                `json:"is_custom_order"`
	Status        model.ProductStatus `json:"status"`
}

type UpdateProductRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	CategoryID    uint                `json:"category_id" binding:"required"`
	Observations  string              `json:"observations"`
	IsCustomOrder bool                `json:"is_custom_order"`
	Status        model.ProductStatus `json:"status"`
	Version       time.Time           `json:"version" binding:"required"`
}

type PriceRequest struct {
	ProductSizeID uint            `json:"product_size_id" binding:"required"`
	Price         decimal.Decimal `json:"price" binding:"required"`
}

type UpdatePricesRequest struct {
	Prices []PriceRequest `json:"prices" binding:"required,min=1,dive"`
}

// ListProducts returns products for the back-office, unfiltered by status
// GET /api/v1/admin/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		CategoryName: c.Query("category"),
		Search:       c.Query("search"),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := model.ProductStatus(statusStr)
		filter.Status = &status
	}
	if idStr := c.Query("category_id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		filter.Limit, _ = strconv.Atoi(limitStr)
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		filter.Offset, _ = strconv.Atoi(offsetStr)
	}

	products, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns the full product aggregate
// GET /api/v1/admin/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product with its default sizes and prices
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Observations:  req.Observations,
		IsCustomOrder: req.IsCustomOrder,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNameRequired), errors.Is(err, service.ErrCategoryRequired):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome e categoria são obrigatórios")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
		case errors.Is(err, service.ErrDuplicateProductCode):
			apperrors.Conflict(c, apperrors.ProductCodeExists, "Já existe um produto com este código")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct saves product fields, rejecting stale writes
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	product, err := ctrl.productService.UpdateProduct(service.UpdateProductInput{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Observations:  req.Observations,
		IsCustomOrder: req.IsCustomOrder,
		Status:        req.Status,
		Version:       req.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
		case errors.Is(err, service.ErrStaleProductWrite):
			apperrors.Conflict(c, apperrors.ResourceStaleWrite, "O produto foi alterado por outro usuário. Recarregue e tente novamente")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// UpdatePrices replaces the price of each listed size
// PUT /api/v1/admin/products/:id/prices
func (ctrl *ProductController) UpdatePrices(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	var req UpdatePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados de preço inválidos")
		return
	}

	prices := make([]service.PriceInput, 0, len(req.Prices))
	for _, p := range req.Prices {
		prices = append(prices, service.PriceInput{
			ProductSizeID: p.ProductSizeID,
			Price:         p.Price,
		})
	}

	if err := ctrl.productService.UpdatePrices(id, prices); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidPrice, "Todos os preços devem ser maiores que zero")
		case errors.Is(err, gorm.ErrRecordNotFound):
			apperrors.NotFound(c, apperrors.SizeNotFound, "Tamanho sem preço cadastrado para este produto")
		default:
			log.Error("Failed to update prices", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preços atualizados",
	})
}

// DeleteProduct removes the product and everything it owns
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produto removido",
	})
}

// UploadImages attaches one or more images, optionally tied to a color
// POST /api/v1/admin/products/:id/images
func (ctrl *ProductController) UploadImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de produto inválido")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Envio de imagens inválido")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nenhuma imagem enviada")
		return
	}

	var colorID *uint
	if colorStr := c.PostForm("color_id"); colorStr != "" {
		parsed, err := strconv.ParseUint(colorStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de cor inválido")
			return
		}
		cid := uint(parsed)
		colorID = &cid
	}
	altText := c.PostForm("alt_text")

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			apperrors.BadRequest(c, apperrors.UploadFailed, "Não foi possível ler a imagem enviada")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			apperrors.BadRequest(c, apperrors.UploadFailed, "Não foi possível ler a imagem enviada")
			return
		}

		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
			ColorID:     colorID,
			AltText:     altText,
		})
	}

	images, err := ctrl.productService.AttachImages(c.Request.Context(), id, uploads)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		default:
			log.Error("Failed to upload product images", err, map[string]interface{}{
				"product_id": id,
				"files":      len(uploads),
			})
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "Falha ao enviar as imagens")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// ExportCatalog streams the products and variants workbook
// GET /api/v1/admin/products/export
func (ctrl *ProductController) ExportCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	buf, err := ctrl.exportService.ExportCatalog()
	if err != nil {
		log.Error("Failed to export catalog", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	filename := "catalogo-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

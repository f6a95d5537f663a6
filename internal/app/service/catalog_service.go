package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogImage is one storefront photo, tagged with its color bucket.
type CatalogImage struct {
	ID           uint   `json:"id"`
	ColorID      *uint  `json:"color_id,omitempty"`
	ColorName    string `json:"color_name,omitempty"`
	ImageURL     string `json:"image_url"`
	AltText      string `json:"alt_text,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// CatalogPrice is the price entry for one size, with the size dimensions
// resolved through the foreign key.
type CatalogPrice struct {
	SizeID     uint            `json:"size_id"`
	SizeName   string          `json:"size_name"`
	Dimensions string          `json:"dimensions"`
	WidthCm    float64         `json:"width_cm"`
	HeightCm   float64         `json:"height_cm"`
	DepthCm    float64         `json:"depth_cm"`
	Price      decimal.Decimal `json:"price"`
}

// CatalogEntry is a display-ready product for the public catalog.
type CatalogEntry struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	ProductCode   string         `json:"product_code"`
	CategoryName  string         `json:"category_name"`
	Observations  string         `json:"observations,omitempty"`
	IsCustomOrder bool           `json:"is_custom_order"`
	Images        []CatalogImage `json:"images"`
	Prices        []CatalogPrice `json:"prices"`
	DefaultImage  string         `json:"default_image"`
	WhatsAppURL   string         `json:"whatsapp_url"`
}

// ImageForColor picks the image shown when a color is selected: the first
// image tagged with that color, else the first image overall (so selecting a
// color with no tagged image keeps the default), else the placeholder the
// entry was assembled with.
func (e *CatalogEntry) ImageForColor(colorID *uint) string {
	if colorID != nil {
		for _, img := range e.Images {
			if img.ColorID != nil && *img.ColorID == *colorID {
				return img.ImageURL
			}
		}
	}
	if len(e.Images) > 0 {
		return e.Images[0].ImageURL
	}
	return e.DefaultImage
}

type CatalogService interface {
	ListCatalog(categoryName string) ([]CatalogEntry, error)
	GetEntry(id uint) (*CatalogEntry, error)
}

type catalogService struct {
	productRepo    repository.ProductRepository
	whatsAppNumber string
	placeholderURL string
}

func NewCatalogService(productRepo repository.ProductRepository, whatsAppNumber, placeholderURL string) CatalogService {
	return &catalogService{
		productRepo:    productRepo,
		whatsAppNumber: whatsAppNumber,
		placeholderURL: placeholderURL,
	}
}

// ListCatalog returns the public catalog, optionally filtered by category
// name. Only active products are listed. Any read failure fails the whole
// listing; the page never renders partially.
func (s *catalogService) ListCatalog(categoryName string) ([]CatalogEntry, error) {
	logger.Debug("Assembling catalog", map[string]interface{}{
		"category": categoryName,
	})

	status := model.StatusActive
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		CategoryName: categoryName,
		Status:       &status,
	})
	if err != nil {
		logger.Error("Failed to fetch products for catalog", err, map[string]interface{}{
			"category": categoryName,
		})
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(products))
	for i := range products {
		entries = append(entries, s.assemble(&products[i]))
	}

	logger.Info("Catalog assembled", map[string]interface{}{
		"category": categoryName,
		"count":    len(entries),
	})
	return entries, nil
}

func (s *catalogService) GetEntry(id uint) (*CatalogEntry, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for catalog", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	if product.Status != model.StatusActive {
		return nil, ErrProductNotFound
	}

	entry := s.assemble(product)
	return &entry, nil
}

func (s *catalogService) assemble(product *model.Product) CatalogEntry {
	entry := CatalogEntry{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		ProductCode:   product.ProductCode,
		CategoryName:  product.Category.Name,
		Observations:  product.Observations,
		IsCustomOrder: product.IsCustomOrder,
		DefaultImage:  s.placeholderURL,
		WhatsAppURL:   s.checkoutURL(product),
	}

	for _, img := range product.Images {
		catalogImage := CatalogImage{
			ID:           img.ID,
			ColorID:      img.ColorID,
			ImageURL:     img.ImageURL,
			AltText:      img.AltText,
			DisplayOrder: img.DisplayOrder,
		}
		if img.Color != nil {
			catalogImage.ColorName = img.Color.Name
		}
		entry.Images = append(entry.Images, catalogImage)
	}
	if len(entry.Images) > 0 {
		entry.DefaultImage = entry.Images[0].ImageURL
	}

	// One price entry per size, in the size display order.
	priceBySize := make(map[uint]model.ProductPrice, len(product.Prices))
	for _, price := range product.Prices {
		priceBySize[price.ProductSizeID] = price
	}
	for _, size := range product.Sizes {
		price, ok := priceBySize[size.ID]
		if !ok {
			continue
		}
		entry.Prices = append(entry.Prices, CatalogPrice{
			SizeID:     size.ID,
			SizeName:   size.Name,
			Dimensions: size.Dimensions,
			WidthCm:    size.WidthCm,
			HeightCm:   size.HeightCm,
			DepthCm:    size.DepthCm,
			Price:      price.Price,
		})
	}

	return entry
}

// checkoutURL builds the prefilled WhatsApp link the storefront uses as its
// checkout.
func (s *catalogService) checkoutURL(product *model.Product) string {
	text := fmt.Sprintf("Olá! Tenho interesse no produto %s (%s)", product.Name, product.ProductCode)
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, url.QueryEscape(text))
}

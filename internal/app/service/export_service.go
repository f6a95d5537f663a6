package service

import (
	"bytes"
	"fmt"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	ExportCatalog() (*bytes.Buffer, error)
}

type exportService struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

func NewExportService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository) ExportService {
	return &exportService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// ExportCatalog builds an XLSX workbook with one sheet of products and one
// of variants, for the back-office download button.
func (s *exportService) ExportCatalog() (*bytes.Buffer, error) {
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeProductSheet(f, products); err != nil {
		return nil, err
	}
	if err := writeVariantSheet(f, variants); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is replaced by Products.
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to serialize export workbook", err, nil)
		return nil, err
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"products": len(products),
		"variants": len(variants),
	})
	return buf, nil
}

func writeProductSheet(f *excelize.File, products []model.Product) error {
	const sheet = "Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Código", "Nome", "Categoria", "Status", "Sob Encomenda", "Tamanhos", "Criado em"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, p := range products {
		sizes := ""
		for i, size := range p.Sizes {
			if i > 0 {
				sizes += ", "
			}
			sizes += size.Name
		}

		values := []interface{}{
			p.ProductCode,
			p.Name,
			p.Category.Name,
			string(p.Status),
			p.IsCustomOrder,
			sizes,
			p.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVariantSheet(f *excelize.File, variants []model.ProductVariant) error {
	const sheet = "Variants"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Código", "Produto", "Tamanho", "Cor", "Estoque", "Disponível"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, v := range variants {
		colorName := ""
		if v.Color != nil {
			colorName = v.Color.Name
		}

		values := []interface{}{
			v.VariantCode,
			fmt.Sprintf("%s (%s)", v.Product.Name, v.Product.ProductCode),
			v.Size.Name,
			colorName,
			v.StockQuantity,
			v.IsAvailable,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

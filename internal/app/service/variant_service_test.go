package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingGenerator forces the degraded path where a code cannot be derived.
type failingGenerator struct{}

func (failingGenerator) ProductCode(*model.Category) (string, error) {
	return "", fmt.Errorf("generator down")
}

func (failingGenerator) VariantCode(*model.Product, *model.ProductSize, *model.Color) (string, error) {
	return "", fmt.Errorf("generator down")
}

type variantServiceFixture struct {
	variantService VariantService
	productService ProductService
	testDB         *gorm.DB
	product        *model.Product
	color          *model.Color
}

func setupVariantServiceTest(t *testing.T, generator codegen.Generator) variantServiceFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	productService := NewProductService(
		productRepo,
		repository.NewCategoryRepository(testDB),
		repository.NewProductImageRepository(testDB),
		codegen.New(testDB),
		newStubImageStore(),
		testDB,
	)
	variantService := NewVariantService(
		repository.NewVariantRepository(testDB),
		productRepo,
		repository.NewProductSizeRepository(testDB),
		repository.NewColorRepository(testDB),
		generator,
	)

	category := createTestCategory(t, testDB, "Camas")
	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
		Status:     model.StatusActive,
	})
	require.NoError(t, err)

	color := &model.Color{Name: "Preto", HexCode: "#1A1A1A"}
	require.NoError(t, testDB.Create(color).Error)

	return variantServiceFixture{
		variantService: variantService,
		productService: productService,
		testDB:         testDB,
		product:        product,
		color:          color,
	}
}

func TestVariantService_CreateVariant(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))
	sizeP := f.product.Sizes[0]

	t.Run("With color", func(t *testing.T) {
		variant, err := f.variantService.CreateVariant(VariantInput{
			ProductID:     f.product.ID,
			ProductSizeID: sizeP.ID,
			ColorID:       &f.color.ID,
			StockQuantity: 5,
			IsAvailable:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "CAM-0001-P-PRE", variant.VariantCode)
		assert.Equal(t, 5, variant.StockQuantity)
		assert.Equal(t, "Preto", variant.Color.Name)
	})

	t.Run("Without color", func(t *testing.T) {
		variant, err := f.variantService.CreateVariant(VariantInput{
			ProductID:     f.product.ID,
			ProductSizeID: f.product.Sizes[1].ID,
			IsAvailable:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "CAM-0001-M-NC", variant.VariantCode)
		assert.Nil(t, variant.ColorID)
	})

	t.Run("Same size and color collides", func(t *testing.T) {
		variant, err := f.variantService.CreateVariant(VariantInput{
			ProductID:     f.product.ID,
			ProductSizeID: sizeP.ID,
			ColorID:       &f.color.ID,
		})
		assert.ErrorIs(t, err, ErrDuplicateVariantCode)
		assert.Nil(t, variant)
	})
}

func TestVariantService_CreateVariant_Validation(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))
	sizeP := f.product.Sizes[0]

	otherCategory := createTestCategory(t, f.testDB, "Roupas")
	otherProduct, err := f.productService.CreateProduct(CreateProductInput{
		Name:       "Moletom Pet",
		CategoryID: otherCategory.ID,
	})
	require.NoError(t, err)

	missingColor := uint(9999)

	tests := []struct {
		name    string
		input   VariantInput
		wantErr error
	}{
		{
			name: "Negative stock",
			input: VariantInput{
				ProductID:     f.product.ID,
				ProductSizeID: sizeP.ID,
				StockQuantity: -1,
			},
			wantErr: ErrInvalidStock,
		},
		{
			name: "Missing product",
			input: VariantInput{
				ProductID:     9999,
				ProductSizeID: sizeP.ID,
			},
			wantErr: ErrProductNotFound,
		},
		{
			name: "Missing size",
			input: VariantInput{
				ProductID:     f.product.ID,
				ProductSizeID: 9999,
			},
			wantErr: ErrSizeNotFound,
		},
		{
			name: "Size of another product",
			input: VariantInput{
				ProductID:     f.product.ID,
				ProductSizeID: otherProduct.Sizes[0].ID,
			},
			wantErr: ErrSizeNotOfProduct,
		},
		{
			name: "Missing color",
			input: VariantInput{
				ProductID:     f.product.ID,
				ProductSizeID: sizeP.ID,
				ColorID:       &missingColor,
			},
			wantErr: ErrColorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant, err := f.variantService.CreateVariant(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, variant)
		})
	}
}

func TestVariantService_CreateVariant_FallbackCode(t *testing.T) {
	f := setupVariantServiceTest(t, failingGenerator{})

	variant, err := f.variantService.CreateVariant(VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[0].ID,
		IsAvailable:   true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(variant.VariantCode, "VAR-"))
}

func TestVariantService_UpdateVariant(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))

	variant, err := f.variantService.CreateVariant(VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[0].ID,
		StockQuantity: 2,
		IsAvailable:   true,
	})
	require.NoError(t, err)

	t.Run("Code follows the new size and color", func(t *testing.T) {
		updated, err := f.variantService.UpdateVariant(variant.ID, VariantInput{
			ProductSizeID: f.product.Sizes[2].ID,
			ColorID:       &f.color.ID,
			StockQuantity: 7,
			IsAvailable:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "CAM-0001-G-PRE", updated.VariantCode)
		assert.Equal(t, 7, updated.StockQuantity)
	})

	t.Run("Missing variant", func(t *testing.T) {
		_, err := f.variantService.UpdateVariant(9999, VariantInput{
			ProductSizeID: f.product.Sizes[0].ID,
		})
		assert.ErrorIs(t, err, ErrVariantNotFound)
	})

	t.Run("Negative stock", func(t *testing.T) {
		_, err := f.variantService.UpdateVariant(variant.ID, VariantInput{
			ProductSizeID: f.product.Sizes[0].ID,
			StockQuantity: -5,
		})
		assert.ErrorIs(t, err, ErrInvalidStock)
	})
}

func TestVariantService_DeleteVariant(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))

	variant, err := f.variantService.CreateVariant(VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[0].ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.variantService.DeleteVariant(9999), ErrVariantNotFound)

	require.NoError(t, f.variantService.DeleteVariant(variant.ID))
	_, err = f.variantService.GetVariantByID(variant.ID)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestVariantService_CreateVariant_AfterDelete(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))
	input := VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[0].ID,
		ColorID:       &f.color.ID,
		StockQuantity: 3,
		IsAvailable:   true,
	}

	variant, err := f.variantService.CreateVariant(input)
	require.NoError(t, err)
	assert.Equal(t, "CAM-0001-P-PRE", variant.VariantCode)

	require.NoError(t, f.variantService.DeleteVariant(variant.ID))

	// The deterministic code is free again once the variant is gone.
	recreated, err := f.variantService.CreateVariant(input)
	require.NoError(t, err)
	assert.Equal(t, "CAM-0001-P-PRE", recreated.VariantCode)
	assert.NotEqual(t, variant.ID, recreated.ID)
}

func TestVariantService_ListByProduct(t *testing.T) {
	f := setupVariantServiceTest(t, codegen.New(nil))

	_, err := f.variantService.CreateVariant(VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[0].ID,
	})
	require.NoError(t, err)
	_, err = f.variantService.CreateVariant(VariantInput{
		ProductID:     f.product.ID,
		ProductSizeID: f.product.Sizes[1].ID,
	})
	require.NoError(t, err)

	variants, err := f.variantService.ListByProduct(f.product.ID)
	require.NoError(t, err)
	assert.Len(t, variants, 2)

	all, err := f.variantService.ListVariants()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

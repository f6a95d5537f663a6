package service

import (
	"testing"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSizeServiceTest(t *testing.T) (SizeService, *model.Product, *gorm.DB) {
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
	sizeService := NewSizeService(
		repository.NewProductSizeRepository(testDB),
		repository.NewProductPriceRepository(testDB),
		productRepo,
	)

	category := createTestCategory(t, testDB, "Camas")
	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	return sizeService, product, testDB
}

func TestSizeService_ListSizes(t *testing.T) {
	sizeService, product, _ := setupSizeServiceTest(t)

	sizes, err := sizeService.ListSizes(product.ID)
	require.NoError(t, err)
	assert.Len(t, sizes, 4)

	_, err = sizeService.ListSizes(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSizeService_CreateSize(t *testing.T) {
	sizeService, product, testDB := setupSizeServiceTest(t)

	input := SizeInput{
		Name:         "XG",
		Dimensions:   "90x80x17cm",
		WidthCm:      90,
		HeightCm:     17,
		DepthCm:      80,
		DisplayOrder: 4,
	}

	size, err := sizeService.CreateSize(product.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "XG", size.Name)

	// The new size gets a placeholder price row right away.
	var price model.ProductPrice
	require.NoError(t, testDB.Where("product_size_id = ?", size.ID).First(&price).Error)
	assert.True(t, model.DefaultPlaceholderPrice.Equal(price.Price))

	t.Run("Duplicate name for the same product", func(t *testing.T) {
		_, err := sizeService.CreateSize(product.ID, input)
		assert.ErrorIs(t, err, ErrDuplicateSize)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := sizeService.CreateSize(9999, input)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestSizeService_CreateSize_Validation(t *testing.T) {
	sizeService, product, _ := setupSizeServiceTest(t)

	tests := []struct {
		name    string
		input   SizeInput
		wantErr error
	}{
		{
			name:    "Empty name",
			input:   SizeInput{WidthCm: 10, HeightCm: 10, DepthCm: 10},
			wantErr: ErrSizeName,
		},
		{
			name:    "Zero width",
			input:   SizeInput{Name: "XG", HeightCm: 10, DepthCm: 10},
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "Negative depth",
			input:   SizeInput{Name: "XG", WidthCm: 10, HeightCm: 10, DepthCm: -1},
			wantErr: ErrInvalidDimensions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := sizeService.CreateSize(product.ID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, size)
		})
	}
}

func TestSizeService_UpdateSize(t *testing.T) {
	sizeService, product, _ := setupSizeServiceTest(t)
	sizeP := product.Sizes[0]

	updated, err := sizeService.UpdateSize(sizeP.ID, SizeInput{
		Name:         "PP",
		Dimensions:   "40x30x15cm",
		WidthCm:      40,
		HeightCm:     15,
		DepthCm:      30,
		DisplayOrder: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, "PP", updated.Name)
	assert.Equal(t, 40.0, updated.WidthCm)

	t.Run("Missing size", func(t *testing.T) {
		_, err := sizeService.UpdateSize(9999, SizeInput{
			Name: "XG", WidthCm: 10, HeightCm: 10, DepthCm: 10,
		})
		assert.ErrorIs(t, err, ErrSizeNotFound)
	})

	t.Run("Name taken by a sibling size", func(t *testing.T) {
		_, err := sizeService.UpdateSize(sizeP.ID, SizeInput{
			Name: "M", WidthCm: 40, HeightCm: 15, DepthCm: 30,
		})
		assert.ErrorIs(t, err, ErrDuplicateSize)
	})
}

func TestSizeService_DeleteSize(t *testing.T) {
	sizeService, product, testDB := setupSizeServiceTest(t)
	sizeP := product.Sizes[0]
	sizeM := product.Sizes[1]

	t.Run("Missing size", func(t *testing.T) {
		assert.ErrorIs(t, sizeService.DeleteSize(9999), ErrSizeNotFound)
	})

	t.Run("Size with variants is kept", func(t *testing.T) {
		require.NoError(t, testDB.Create(&model.ProductVariant{
			ProductID:     product.ID,
			ProductSizeID: sizeP.ID,
			VariantCode:   "CAM-0001-P-NC",
		}).Error)

		assert.ErrorIs(t, sizeService.DeleteSize(sizeP.ID), ErrSizeInUse)
	})

	t.Run("Size without variants goes with its price", func(t *testing.T) {
		require.NoError(t, sizeService.DeleteSize(sizeM.ID))

		_, err := sizeService.GetSizeByID(sizeM.ID)
		assert.ErrorIs(t, err, ErrSizeNotFound)

		var count int64
		require.NoError(t, testDB.Model(&model.ProductPrice{}).Where("product_size_id = ?", sizeM.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Deleted name can be created again", func(t *testing.T) {
		recreated, err := sizeService.CreateSize(product.ID, SizeInput{
			Name:       "M",
			Dimensions: "60x50x17cm",
			WidthCm:    60,
			HeightCm:   17,
			DepthCm:    50,
		})
		require.NoError(t, err)
		assert.Equal(t, "M", recreated.Name)
		assert.NotEqual(t, sizeM.ID, recreated.ID)
	})
}

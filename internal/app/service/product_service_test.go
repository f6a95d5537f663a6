package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/codegen"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubImageStore stands in for S3 in tests. It fails after failAfter
// uploads when failAfter is non-negative.
type stubImageStore struct {
	uploads   int
	failAfter int
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{failAfter: -1}
}

func (s *stubImageStore) Upload(_ context.Context, folder, filename, _ string, _ []byte) (string, error) {
	if s.failAfter >= 0 && s.uploads >= s.failAfter {
		return "", fmt.Errorf("upload refused")
	}
	s.uploads++
	return fmt.Sprintf("https://cdn.test/%s/%s", folder, filename), nil
}

func setupProductServiceTest(t *testing.T) (ProductService, *gorm.DB, *stubImageStore) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	store := newStubImageStore()
	productService := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewCategoryRepository(testDB),
		repository.NewProductImageRepository(testDB),
		codegen.New(testDB),
		store,
		testDB,
	)
	return productService, testDB, store
}

func createTestCategory(t *testing.T, testDB *gorm.DB, name string) *model.Category {
	category := &model.Category{Name: name}
	require.NoError(t, testDB.Create(category).Error)
	return category
}

func TestProductService_CreateProduct(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "CAM-0001", product.ProductCode)
	assert.Equal(t, model.StatusDraft, product.Status)
	assert.Equal(t, "Camas", product.Category.Name)

	// The aggregate comes with the default sizes, each priced at the
	// placeholder until the admin sets real values.
	require.Len(t, product.Sizes, 4)
	assert.Equal(t, "P", product.Sizes[0].Name)
	assert.Equal(t, "M", product.Sizes[1].Name)
	assert.Equal(t, "G", product.Sizes[2].Name)
	assert.Equal(t, "GG", product.Sizes[3].Name)

	require.Len(t, product.Prices, 4)
	for _, price := range product.Prices {
		assert.True(t, model.DefaultPlaceholderPrice.Equal(price.Price))
	}

	// The next product in the same category gets the next sequence number.
	second, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Donut",
		CategoryID: category.ID,
		Status:     model.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAM-0002", second.ProductCode)
	assert.Equal(t, model.StatusActive, second.Status)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr error
	}{
		{
			name:    "Missing name",
			input:   CreateProductInput{CategoryID: category.ID},
			wantErr: ErrProductNameRequired,
		},
		{
			name:    "Missing category",
			input:   CreateProductInput{Name: "Cama Nuvem"},
			wantErr: ErrCategoryRequired,
		},
		{
			name:    "Unknown category",
			input:   CreateProductInput{Name: "Cama Nuvem", CategoryID: 9999},
			wantErr: ErrCategoryRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := productService.CreateProduct(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, product)
		})
	}

	// Nothing reached the store.
	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductService_GetProductByID(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      uint
		wantErr error
	}{
		{
			name:    "Existing product",
			id:      product.ID,
			wantErr: nil,
		},
		{
			name:    "Missing product",
			id:      9999,
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := productService.GetProductByID(tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				assert.Equal(t, product.Name, found.Name)
			}
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	t.Run("Current version writes", func(t *testing.T) {
		updated, err := productService.UpdateProduct(UpdateProductInput{
			ID:         product.ID,
			Name:       "Cama Nuvem Premium",
			CategoryID: category.ID,
			Status:     model.StatusActive,
			Version:    product.UpdatedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "Cama Nuvem Premium", updated.Name)
		assert.Equal(t, model.StatusActive, updated.Status)
	})

	t.Run("Stale version is rejected", func(t *testing.T) {
		updated, err := productService.UpdateProduct(UpdateProductInput{
			ID:         product.ID,
			Name:       "Escrita perdida",
			CategoryID: category.ID,
			Version:    product.UpdatedAt.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, ErrStaleProductWrite)
		assert.Nil(t, updated)

		kept, err := productService.GetProductByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cama Nuvem Premium", kept.Name)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := productService.UpdateProduct(UpdateProductInput{
			ID:         9999,
			Name:       "Fantasma",
			CategoryID: category.ID,
			Version:    time.Now(),
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_UpdatePrices(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	sizeP := product.Sizes[0]
	sizeM := product.Sizes[1]

	t.Run("Updates only the given sizes", func(t *testing.T) {
		err := productService.UpdatePrices(product.ID, []PriceInput{
			{ProductSizeID: sizeP.ID, Price: decimal.NewFromFloat(189.90)},
		})
		require.NoError(t, err)

		fresh, err := productService.GetProductByID(product.ID)
		require.NoError(t, err)
		for _, price := range fresh.Prices {
			if price.ProductSizeID == sizeP.ID {
				assert.True(t, decimal.NewFromFloat(189.90).Equal(price.Price))
			} else {
				assert.True(t, model.DefaultPlaceholderPrice.Equal(price.Price))
			}
		}
	})

	t.Run("Non-positive price is rejected before any write", func(t *testing.T) {
		err := productService.UpdatePrices(product.ID, []PriceInput{
			{ProductSizeID: sizeM.ID, Price: decimal.NewFromInt(250)},
			{ProductSizeID: sizeP.ID, Price: decimal.Zero},
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		fresh, err := productService.GetProductByID(product.ID)
		require.NoError(t, err)
		for _, price := range fresh.Prices {
			if price.ProductSizeID == sizeM.ID {
				assert.True(t, model.DefaultPlaceholderPrice.Equal(price.Price))
			}
		}
	})

	t.Run("Unknown size rolls the batch back", func(t *testing.T) {
		err := productService.UpdatePrices(product.ID, []PriceInput{
			{ProductSizeID: sizeM.ID, Price: decimal.NewFromInt(250)},
			{ProductSizeID: 9999, Price: decimal.NewFromInt(300)},
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		fresh, err := productService.GetProductByID(product.ID)
		require.NoError(t, err)
		for _, price := range fresh.Prices {
			if price.ProductSizeID == sizeM.ID {
				assert.True(t, model.DefaultPlaceholderPrice.Equal(price.Price))
			}
		}
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	t.Run("Missing product", func(t *testing.T) {
		assert.ErrorIs(t, productService.DeleteProduct(9999), ErrProductNotFound)
	})

	t.Run("Deletes the whole aggregate", func(t *testing.T) {
		require.NoError(t, productService.DeleteProduct(product.ID))

		_, err := productService.GetProductByID(product.ID)
		assert.ErrorIs(t, err, ErrProductNotFound)

		var count int64
		require.NoError(t, testDB.Model(&model.ProductSize{}).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, testDB.Model(&model.ProductPrice{}).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestProductService_CreateProduct_AfterDelete(t *testing.T) {
	productService, testDB, _ := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	first, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAM-0001", first.ProductCode)

	second, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Ninho",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAM-0002", second.ProductCode)

	// A delete must not make later creates in the category collide with
	// codes still in use.
	require.NoError(t, productService.DeleteProduct(first.ID))

	third, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Toca",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAM-0003", third.ProductCode)
}

func TestProductService_AttachImages(t *testing.T) {
	productService, testDB, store := setupProductServiceTest(t)
	category := createTestCategory(t, testDB, "Camas")

	color := &model.Color{Name: "Preto", HexCode: "#1A1A1A"}
	require.NoError(t, testDB.Create(color).Error)

	product, err := productService.CreateProduct(CreateProductInput{
		Name:       "Cama Nuvem",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	t.Run("Missing product", func(t *testing.T) {
		_, err := productService.AttachImages(context.Background(), 9999, nil)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Stores each image under its color folder", func(t *testing.T) {
		images, err := productService.AttachImages(context.Background(), product.ID, []ImageUpload{
			{Filename: "frente.jpg", ContentType: "image/jpeg", Data: []byte("jpg"), ColorID: &color.ID},
			{Filename: "lado.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
		})
		require.NoError(t, err)
		require.Len(t, images, 2)

		assert.Equal(t, &color.ID, images[0].ColorID)
		assert.Contains(t, images[0].ImageURL, fmt.Sprintf("color-%d", color.ID))
		assert.Nil(t, images[1].ColorID)
		assert.Contains(t, images[1].ImageURL, "no-color")
		assert.Equal(t, 0, images[0].DisplayOrder)
		assert.Equal(t, 1, images[1].DisplayOrder)
	})

	t.Run("Upload failure keeps earlier images", func(t *testing.T) {
		store.failAfter = store.uploads + 1

		images, err := productService.AttachImages(context.Background(), product.ID, []ImageUpload{
			{Filename: "cima.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
			{Filename: "baixo.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
		})
		assert.Error(t, err)
		assert.Len(t, images, 1)

		var count int64
		require.NoError(t, testDB.Model(&model.ProductImage{}).Where("product_id = ?", product.ID).Count(&count).Error)
		assert.Equal(t, int64(3), count)
	})
}

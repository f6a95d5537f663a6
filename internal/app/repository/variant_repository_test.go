package repository

import (
	"testing"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupVariantRepositoryTest(t *testing.T) (*gorm.DB, VariantRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return testDB, NewVariantRepository(testDB)
}

func TestVariantRepository_Create_DuplicateCode(t *testing.T) {
	testDB, repo := setupVariantRepositoryTest(t)
	product := seedProductAggregate(t, testDB)

	var size model.ProductSize
	require.NoError(t, testDB.Where("product_id = ?", product.ID).First(&size).Error)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		ProductSizeID: size.ID,
		VariantCode:   "CAM-0001-P-NC",
	}
	err := repo.Create(variant)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint")
}

func TestVariantRepository_MarkZeroStockUnavailable(t *testing.T) {
	testDB, repo := setupVariantRepositoryTest(t)
	product := seedProductAggregate(t, testDB)

	var size model.ProductSize
	require.NoError(t, testDB.Where("product_id = ?", product.ID).First(&size).Error)

	soldOut := &model.ProductVariant{
		ProductID:     product.ID,
		ProductSizeID: size.ID,
		VariantCode:   "CAM-0001-P-AZU",
		StockQuantity: 0,
		IsAvailable:   true,
	}
	require.NoError(t, repo.Create(soldOut))

	alreadyOff := &model.ProductVariant{
		ProductID:     product.ID,
		ProductSizeID: size.ID,
		VariantCode:   "CAM-0001-P-ROS",
		StockQuantity: 0,
		IsAvailable:   false,
	}
	require.NoError(t, repo.Create(alreadyOff))

	affected, err := repo.MarkZeroStockUnavailable()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// The seeded variant still has stock and stays available.
	variants, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	for _, v := range variants {
		if v.StockQuantity > 0 {
			assert.True(t, v.IsAvailable, v.VariantCode)
		} else {
			assert.False(t, v.IsAvailable, v.VariantCode)
		}
	}

	// A second sweep finds nothing left to flip.
	affected, err = repo.MarkZeroStockUnavailable()
	require.NoError(t, err)
	assert.Zero(t, affected)
}

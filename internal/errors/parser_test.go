package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{
			name:     "Nil error",
			err:      nil,
			wantCode: InternalServerError,
		},
		{
			name:     "Record not found",
			err:      gorm.ErrRecordNotFound,
			context:  "produto",
			wantCode: ResourceNotFound,
		},
		{
			name: "Postgres unique violation on product code",
			err: &pq.Error{
				Code:    "23505",
				Message: `duplicate key value violates unique constraint "idx_products_product_code"`,
			},
			wantCode: ProductCodeExists,
		},
		{
			name: "Postgres unique violation on variant code",
			err: &pq.Error{
				Code:    "23505",
				Message: `duplicate key value violates unique constraint "idx_product_variants_variant_code"`,
			},
			wantCode: VariantCodeExists,
		},
		{
			name: "Postgres not-null violation",
			err: &pq.Error{
				Code:    "23502",
				Message: `null value in column "name" violates not-null constraint`,
			},
			wantCode: ValidationRequired,
		},
		{
			name:     "SQLite unique violation on category name",
			err:      errors.New("UNIQUE constraint failed: categories.name"),
			wantCode: CategoryNameExists,
		},
		{
			name:     "SQLite unique violation on size name",
			err:      errors.New("UNIQUE constraint failed: product_sizes.product_id, product_sizes.name"),
			wantCode: ResourceAlreadyExists,
		},
		{
			name:     "SQLite unique violation on color name",
			err:      errors.New("UNIQUE constraint failed: colors.name"),
			wantCode: ResourceAlreadyExists,
		},
		{
			name:     "SQLite unique violation on user email",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			wantCode: AuthEmailAlreadyExists,
		},
		{
			name:     "Connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode: InternalExternalAPI,
		},
		{
			name:     "Unclassified error",
			err:      errors.New("something unexpected"),
			context:  "produto",
			wantCode: InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "Nil error",
			err:  nil,
			want: false,
		},
		{
			name: "Postgres unique violation",
			err:  &pq.Error{Code: "23505"},
			want: true,
		},
		{
			name: "Wrapped postgres unique violation",
			err:  fmt.Errorf("create failed: %w", &pq.Error{Code: "23505"}),
			want: true,
		},
		{
			name: "SQLite unique violation",
			err:  errors.New("UNIQUE constraint failed: products.product_code"),
			want: true,
		},
		{
			name: "Postgres foreign key violation",
			err:  &pq.Error{Code: "23503"},
			want: false,
		},
		{
			name: "Unrelated error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKey(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

// Package codegen assigns the human-readable codes carried by products and
// variants. Codes are deterministic for identical inputs; uniqueness is
// enforced by the store's unique indexes, not here.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type Generator interface {
	// ProductCode derives a code from the category prefix and a sequence
	// number one past the highest code issued in that category
	// (e.g. "CAM-0001"). Deleting a product does not move the sequence
	// backwards, so a retired code never collides with a live one.
	ProductCode(category *model.Category) (string, error)
	// VariantCode derives a code from the product code, size name and color
	// (e.g. "CAM-0001-P-PRE"; "NC" when no color is set). Two calls with the
	// same inputs produce the same code; persisting both surfaces a
	// duplicate-code conflict from the store.
	VariantCode(product *model.Product, size *model.ProductSize, color *model.Color) (string, error)
}

type dbGenerator struct {
	db *gorm.DB
}

func New(db *gorm.DB) Generator {
	return &dbGenerator{db: db}
}

func (g *dbGenerator) ProductCode(category *model.Category) (string, error) {
	if category == nil || category.Name == "" {
		return "", fmt.Errorf("category required for product code")
	}

	// Zero padding keeps lexicographic and numeric order aligned, so the
	// highest code in the category is the last one issued.
	var codes []string
	if err := g.db.Model(&model.Product{}).
		Where("category_id = ?", category.ID).
		Order("product_code DESC").
		Limit(1).
		Pluck("product_code", &codes).Error; err != nil {
		logger.Error("Failed to look up last product code in category", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return "", err
	}

	seq := 1
	if len(codes) > 0 {
		if i := strings.LastIndex(codes[0], "-"); i >= 0 {
			if n, err := strconv.Atoi(codes[0][i+1:]); err == nil {
				seq = n + 1
			}
		}
	}

	code := fmt.Sprintf("%s-%04d", prefix(category.Name, 3), seq)
	logger.Debug("Product code generated", map[string]interface{}{
		"category_id": category.ID,
		"code":        code,
	})
	return code, nil
}

func (g *dbGenerator) VariantCode(product *model.Product, size *model.ProductSize, color *model.Color) (string, error) {
	if product == nil || product.ProductCode == "" {
		return "", fmt.Errorf("product code required for variant code")
	}
	if size == nil || size.Name == "" {
		return "", fmt.Errorf("size required for variant code")
	}

	colorPart := "NC"
	if color != nil {
		colorPart = prefix(color.Name, 3)
	}

	return fmt.Sprintf("%s-%s-%s", product.ProductCode, strings.ToUpper(size.Name), colorPart), nil
}

// FallbackVariantCode is the degraded-mode code used when the generator
// fails: timestamp-based, so effectively unique, but not human-readable.
func FallbackVariantCode(now time.Time) string {
	return fmt.Sprintf("VAR-%d", now.UnixNano())
}

// prefix reduces a name to its first n ASCII letters or digits, uppercased.
// Accented characters are folded to their base letter; anything else is
// skipped. Short names are padded with 'X'.
func prefix(name string, n int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == n {
			break
		}
	}
	for b.Len() < n {
		b.WriteByte('X')
	}
	return b.String()
}

var accentFold = map[rune]rune{
	'Á': 'A', 'À': 'A', 'Â': 'A', 'Ã': 'A',
	'É': 'E', 'Ê': 'E',
	'Í': 'I',
	'Ó': 'O', 'Ô': 'O', 'Õ': 'O',
	'Ú': 'U', 'Ü': 'U',
	'Ç': 'C',
}

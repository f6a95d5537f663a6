package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error classes we classify (https://www.postgresql.org/docs/current/errcodes-appendix.html)
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is the classified form of a store error.
type ErrorInfo struct {
	Code    string // error code constant (codes.go)
	Message string // user-facing message (pt-BR)
}

// ParseError classifies a store error into a user-facing code and message.
// Sensitive detail stays out of the response; the original error is expected
// to have been logged at the call site.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Ocorreu um erro no servidor"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Structured Postgres errors first, message text as fallback. The text
	// matching also covers sqlite in tests ("UNIQUE constraint failed: ...").
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return parseDuplicateKeyError(pqErr.Error(), context)
		case pgForeignKeyViolation:
			return parseForeignKeyError(pqErr.Error(), context)
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationRequired, Message: "Campo obrigatório não informado"}
		case pgCheckViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "Valor inválido"}
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "Campo obrigatório não informado"}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha ao conectar com serviço externo. Tente novamente em instantes",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultErrorMessage(context)}
}

// IsDuplicateKey reports whether the store rejected a write for violating a
// unique index. Callers use this to tell "duplicate code" apart from generic
// failures.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint")
}

// IsForeignKeyViolation reports whether a write was rejected because the row
// is still referenced (or references a missing row).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "variant_code") {
		return ErrorInfo{Code: VariantCodeExists, Message: "Já existe uma variação com este código"}
	}
	if strings.Contains(errLower, "product_code") {
		return ErrorInfo{Code: ProductCodeExists, Message: "Já existe um produto com este código"}
	}
	if strings.Contains(errLower, "categories") && strings.Contains(errLower, "name") {
		return ErrorInfo{Code: CategoryNameExists, Message: "Já existe uma categoria com este nome"}
	}
	if strings.Contains(errLower, "colors") && strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Já existe uma cor com este nome"}
	}
	if strings.Contains(errLower, "idx_product_size_name") ||
		(strings.Contains(errLower, "product_sizes") && strings.Contains(errLower, "name")) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Já existe um tamanho com este nome para o produto"}
	}
	if strings.Contains(errLower, "idx_product_size_price") ||
		(strings.Contains(errLower, "product_prices") && strings.Contains(errLower, "product_size_id")) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Este tamanho já possui um preço cadastrado"}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Este e-mail já está em uso"}
	}
	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Registro já existente. Tente novamente"}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Registro já existente"}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)
	contextLower := strings.ToLower(context)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		switch {
		case strings.Contains(contextLower, "category") || strings.Contains(contextLower, "categoria"):
			return ErrorInfo{Code: CategoryInUse, Message: "Categoria em uso por produtos e não pode ser excluída"}
		case strings.Contains(contextLower, "color") || strings.Contains(contextLower, "cor"):
			return ErrorInfo{Code: ColorInUse, Message: "Cor em uso por imagens ou variações e não pode ser excluída"}
		case strings.Contains(contextLower, "size") || strings.Contains(contextLower, "tamanho"):
			return ErrorInfo{Code: SizeInUse, Message: "Tamanho em uso por variações e não pode ser excluído"}
		}
		return ErrorInfo{Code: ResourceConflict, Message: "Registro em uso e não pode ser excluído"}
	}

	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{Code: CategoryNotFound, Message: "Categoria inexistente"}
	}
	if strings.Contains(errLower, "color_id") {
		return ErrorInfo{Code: ColorNotFound, Message: "Cor inexistente"}
	}
	if strings.Contains(errLower, "product_size_id") {
		return ErrorInfo{Code: SizeNotFound, Message: "Tamanho inexistente"}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{Code: ProductNotFound, Message: "Produto inexistente"}
	}

	return ErrorInfo{Code: ResourceNotFound, Message: "Registro referenciado não encontrado"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"), strings.Contains(contextLower, "produto"):
		return "Produto não encontrado"
	case strings.Contains(contextLower, "variant"), strings.Contains(contextLower, "variação"):
		return "Variação não encontrada"
	case strings.Contains(contextLower, "category"), strings.Contains(contextLower, "categoria"):
		return "Categoria não encontrada"
	case strings.Contains(contextLower, "color"), strings.Contains(contextLower, "cor"):
		return "Cor não encontrada"
	case strings.Contains(contextLower, "size"), strings.Contains(contextLower, "tamanho"):
		return "Tamanho não encontrado"
	case strings.Contains(contextLower, "contact"), strings.Contains(contextLower, "contato"):
		return "Mensagem de contato não encontrada"
	case strings.Contains(contextLower, "user"), strings.Contains(contextLower, "usuário"):
		return "Usuário não encontrado"
	}

	return "Registro não encontrado"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "cadastr"):
		return "Erro ao cadastrar. Tente novamente em instantes"
	case strings.Contains(contextLower, "update"), strings.Contains(contextLower, "atualiza"):
		return "Erro ao atualizar. Tente novamente em instantes"
	case strings.Contains(contextLower, "delete"), strings.Contains(contextLower, "exclu"):
		return "Erro ao excluir. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}

package errors

// Error code constants, format CATEGORY_SPECIFIC_DETAIL. The admin dashboard
// maps these codes to its own messages; the Message field is a fallback.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden      = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound   = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly      = "AUTHZ_ADMIN_ONLY"
	AuthzSuperAdminOnly = "AUTHZ_SUPER_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidHex    = "VALIDATION_INVALID_HEX"
	ValidationInvalidPrice  = "VALIDATION_INVALID_PRICE"
	ValidationInvalidStock  = "VALIDATION_INVALID_STOCK"
	ValidationCaptchaFailed = "VALIDATION_CAPTCHA_FAILED"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"
	ResourceStaleWrite    = "RESOURCE_STALE_WRITE"

	// Products (PRODUCT_)
	ProductNotFound   = "PRODUCT_NOT_FOUND"
	ProductCodeExists = "PRODUCT_CODE_EXISTS"

	// Variants (VARIANT_)
	VariantNotFound   = "VARIANT_NOT_FOUND"
	VariantCodeExists = "VARIANT_CODE_EXISTS"

	// Reference data (CATEGORY_ / COLOR_ / SIZE_)
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	CategoryNameExists = "CATEGORY_NAME_EXISTS"
	CategoryInUse      = "CATEGORY_IN_USE"
	ColorNotFound      = "COLOR_NOT_FOUND"
	ColorInUse         = "COLOR_IN_USE"
	SizeNotFound       = "SIZE_NOT_FOUND"
	SizeInUse          = "SIZE_IN_USE"

	// Contact (CONTACT_)
	ContactNotFound      = "CONTACT_NOT_FOUND"
	ContactInvalidStatus = "CONTACT_INVALID_STATUS"

	// Upload (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)

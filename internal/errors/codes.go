package errors

// Error code constants.
// Format: stable machine-readable codes; clients map them to messages.

const (
	// ==================== Validation (catalog mutations) ====================
	Required                    = "REQUIRED"                        // missing or blank required value
	Invalid                     = "INVALID"                         // malformed value (negative weight, over-precision price, bad reference)
	Unique                      = "UNIQUE"                          // SKU or (variant, warehouse)/(variant, channel) collision
	DuplicatedInputItem         = "DUPLICATED_INPUT_ITEM"           // two items in the same request collide
	NotFound                    = "NOT_FOUND"                       // referenced attribute/channel/warehouse does not exist
	ProductNotAssignedToChannel = "PRODUCT_NOT_ASSIGNED_TO_CHANNEL" // listing requested on a channel the product is not published to
	AttributesRequired          = "ATTRIBUTES_REQUIRED"             // variant-selection attribute missing from the assignment

	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // login required
	AuthTokenExpired = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthzForbidden   = "AUTHZ_FORBIDDEN" // missing permission

	// ==================== Resources ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // addressed entity does not exist

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)

package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ParseDBError translates storage-layer errors into structured validation
// records so that raw driver errors never cross the service boundary.
// Concurrent requests racing on the same SKU or (variant, warehouse) pair
// rely on the database uniqueness constraint as the final authority; the
// resulting violation surfaces here as a UNIQUE record.
//
// Returns nil for errors with no validation meaning (connection failures,
// syntax errors); callers treat those as internal.
func ParseDBError(err error, field string) *ValidationError {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Validation(field, NotFound, "Referenced object does not exist.")
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return uniqueViolation(err.Error(), field)
	}

	// PostgreSQL 23505 / sqlite constraint text; gorm does not wrap every
	// driver's duplicate-key error.
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "unique failed") {
		return uniqueViolation(errStr, field)
	}

	return nil
}

func uniqueViolation(errStr, field string) *ValidationError {
	errStr = strings.ToLower(errStr)

	if strings.Contains(errStr, "sku") {
		return Validation("sku", Unique, "Product variant with this SKU already exists.")
	}
	if strings.Contains(errStr, "warehouse") {
		return Validation("warehouse", Unique, "Stock for this warehouse already exists for this variant.")
	}
	if strings.Contains(errStr, "channel") {
		return Validation("channelId", Unique, "Listing for this channel already exists for this variant.")
	}
	if field == "" {
		field = "id"
	}
	return Validation(field, Unique, "Object with this identifier already exists.")
}

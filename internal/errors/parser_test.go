package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseDBError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		field     string
		wantNil   bool
		wantField string
		wantCode  string
	}{
		{
			name:    "nil error",
			err:     nil,
			wantNil: true,
		},
		{
			name:      "record not found",
			err:       gorm.ErrRecordNotFound,
			field:     "variant",
			wantField: "variant",
			wantCode:  NotFound,
		},
		{
			name:      "gorm duplicated key",
			err:       gorm.ErrDuplicatedKey,
			field:     "sku",
			wantField: "sku",
			wantCode:  Unique,
		},
		{
			name:      "postgres sku violation",
			err:       errors.New(`duplicate key value violates unique constraint "idx_product_variants_sku"`),
			wantField: "sku",
			wantCode:  Unique,
		},
		{
			name:      "sqlite stock violation",
			err:       errors.New("UNIQUE constraint failed: stocks.variant_id, stocks.warehouse_id"),
			wantField: "warehouse",
			wantCode:  Unique,
		},
		{
			name:      "channel listing violation",
			err:       errors.New(`duplicate key value violates unique constraint "idx_variant_channel_listings"`),
			wantField: "channelId",
			wantCode:  Unique,
		},
		{
			name:    "connection error is not a validation error",
			err:     errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ParseDBError(tt.err, tt.field)

			if tt.wantNil {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantCode, verr.Code)
		})
	}
}

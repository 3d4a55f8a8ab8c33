package pagination

import (
	"encoding/base64"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 3, 14, 22, 30, 45, 123456789, time.UTC),
		ID:        "8f14e45f-ceea-467f-a0e6-5a1b2b1c2d3e",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Equal(t, token, url.QueryEscape(token), "Token should be safe in a query string")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, cursor.Date.Equal(decoded.Date))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, cursor.ID, decoded.ID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!"},
		{"missing id", base64.RawURLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z|2026-03-14T00:00:00Z"))},
		{"bad date", base64.RawURLEncoding.EncodeToString([]byte("yesterday|2026-03-14T00:00:00Z|id"))},
		{"bad created_at", base64.RawURLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z|later|id"))},
		{"id is not a uuid", base64.RawURLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z|2026-03-14T00:00:00Z|not-a-uuid"))},
		{"id with sql", base64.RawURLEncoding.EncodeToString([]byte("2026-03-14T00:00:00Z|2026-03-14T00:00:00Z|x'; drop table cash_registers; --"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}

package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountRequest struct {
	Amount  decimal.Decimal `validate:"gt=0"`
	Opening decimal.Decimal `validate:"gte=0"`
	Phone   string          `validate:"omitempty,phone"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestDecimalAmounts(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(amountRequest{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(amountRequest{Amount: decimal.Zero}))
	assert.Error(t, v.Struct(amountRequest{Amount: decimal.RequireFromString("-5")}))
	assert.Error(t, v.Struct(amountRequest{Amount: decimal.RequireFromString("1"), Opening: decimal.RequireFromString("-0.50")}))
}

func TestPhone(t *testing.T) {
	v := newValidator(t)

	for _, phone := range []string{"", "+51 987 654 321", "987654321", "01-234-5678"} {
		assert.NoError(t, v.Struct(amountRequest{Amount: decimal.NewFromInt(1), Phone: phone}), phone)
	}
	for _, phone := range []string{"12345", "call me", "+51 987 654 321 999 999"} {
		assert.Error(t, v.Struct(amountRequest{Amount: decimal.NewFromInt(1), Phone: phone}), phone)
	}
}

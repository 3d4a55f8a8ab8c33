// Package validation registers the custom binding rules used by request DTOs.
package validation

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// phonePattern accepts an optional leading + followed by 7 to 15 digits, with spaces or dashes between groups.
var phonePattern = regexp.MustCompile(`^\+?[0-9](?:[ -]?[0-9]){6,14}$`)

// RegisterGinValidators installs the custom rules on gin's default validator engine.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// Register adds the decimal type func and the phone rule to v.
func Register(v *validator.Validate) error {
	// Lets numeric tags such as gt=0 and gte=0 apply to decimal amounts.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return fmt.Errorf("failed to register phone validator: %w", err)
	}
	return nil
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

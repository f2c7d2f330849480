package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/mini-bank/internal/accountfactory"
)

// ValidAccountKind validates whether the account kind is supported.
var ValidAccountKind validator.Func = func(fl validator.FieldLevel) bool {
	if k, ok := fl.Field().Interface().(string); ok {
		return accountfactory.IsSupportedKind(k)
	}

	return false
}

// Package web defines common components for a web application.
package web

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns a readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "invalid request"
	}

	fe := ve[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " field is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "alphanum":
		return field + " accepts only alphanumeric characters"
	case "accountkind":
		return field + " is not a supported account kind"
	case "decimal":
		return fmt.Sprintf("%s must be a decimal number below 1e%d with at most %d decimal places",
			field, MaxAmountExpTen, MaxAmountScale)
	}

	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

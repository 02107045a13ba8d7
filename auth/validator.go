package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoginRequest is the credential payload for the dashboard login endpoint.
type LoginRequest struct {
	Operator string `json:"operator" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// ValidateLogin checks the structural constraints of a login request before
// any password comparison happens.
func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}

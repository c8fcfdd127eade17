package user

import "github.com/bccsims/asset-inventory/internal"

// DefaultPassword is issued to new accounts when no password is supplied.
// Staff are expected to change it on first sign-in.
const DefaultPassword = "Bcc12345!"

type CreateUserDTO struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (d CreateUserDTO) Validate() error {
	if d.Username == "" {
		return internal.NewValidationError("username is required")
	}
	if d.FullName == "" {
		return internal.NewValidationError("fullName is required")
	}
	return nil
}

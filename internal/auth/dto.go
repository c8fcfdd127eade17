package auth

import "github.com/bccsims/asset-inventory/internal"

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return internal.NewValidationError("username is required")
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required")
	}
	return nil
}

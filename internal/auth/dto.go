package auth

import "github.com/frahmantamala/hr-management/internal"

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the payload returned on successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// Validate checks required fields before the credential store is touched.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("Email is required")
	}
	if d.Password == "" {
		return internal.NewValidationError("Password is required")
	}
	return nil
}

package dto

// LoginRequest carries the identity-provider ID token obtained by the client.
type LoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginResponse returns the API token issued after the allow-list check.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresIn int64  `json:"expires_in"`
}

// IdentityResponse echoes the identity carried by the request token.
type IdentityResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

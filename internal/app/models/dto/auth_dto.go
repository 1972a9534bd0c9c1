package dto

// AdminLoginRequest represents admin login credentials
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,max=150" example:"admin"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// AdminLoginResponse is returned on a successful admin login
type AdminLoginResponse struct {
	Refresh  string `json:"refresh"`
	Access   string `json:"access"`
	Username string `json:"username" example:"admin"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshTokenResponse carries the newly issued access token
type RefreshTokenResponse struct {
	Access string `json:"access"`
}

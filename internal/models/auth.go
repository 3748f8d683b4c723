package models

// AuthResponse is the ledger API login response body.
type AuthResponse struct {
	AccessToken string `json:"access_token"` // AccessToken is the bearer token for subsequent requests.
	TokenType   string `json:"token_type"`   // TokenType is typically "bearer".
}

package models

import "time"

// AdminLoginRequest represents the operator login payload
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AdminLoginResponse represents the login response
type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	Email       string    `json:"email"`
}

// LeadList is one page of persisted requests of a single kind
type LeadList struct {
	Kind  RequestType `json:"kind"`
	Count int         `json:"count"`
	Leads interface{} `json:"leads"`
}

package auth

import "github.com/daybookhq/daybook-backend/internal/domain"

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

package domain

import "strings"

// Role is the closed set of account roles. Authorization checks switch over
// these values instead of comparing raw strings.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleOwner    Role = "owner"
)

// ParseRole normalizes and validates a stored role value.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleDriver:
		return RoleDriver, true
	case RoleOwner:
		return RoleOwner, true
	default:
		return "", false
	}
}

// RequestContext carries the authenticated user attached by the session
// middleware.
type RequestContext struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

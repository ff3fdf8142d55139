package models

import (
	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
)

// JWTClaims represents the JWT claims. A token carries exactly one organization.
type JWTClaims struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email,omitempty"`
	OrganizationID string   `json:"organization_id"`
	Role           UserRole `json:"role"`

	jwt.RegisteredClaims
}

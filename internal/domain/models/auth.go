package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the JWT claims carried by an admin session token.
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// RoleAdmin is the only role the write surface accepts.
const RoleAdmin = "admin"

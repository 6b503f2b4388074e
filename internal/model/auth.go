package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the staff login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the staff JWT
type LoginResponse struct {
	Token   string `json:"token"`
	StaffID string `json:"staffId"`
}

// StaffClaims are the JWT claims for a front-of-house staff member
type StaffClaims struct {
	StaffID string `json:"staffId"`
	jwt.RegisteredClaims
}

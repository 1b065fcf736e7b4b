package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWTClaims struct {
	StaffID uint   `json:"staff_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// GenerateToken signs an HS256 token for the staff member.
func GenerateToken(secret string, staffID uint, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrJWTSecretMissing
	}

	now := time.Now()
	claims := JWTClaims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(staffID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates the signature and expiry and returns the claims.
func VerifyToken(secret, tokenStr string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

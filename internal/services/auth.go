package services

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminSubject is the fixed subject claim carried by every admin token.
const AdminSubject = "admin"

var (
	ErrExpiredToken = ServiceError{Status: 401, Message: "Token expired"}
	ErrInvalidToken = ServiceError{Status: 401, Message: "Invalid token"}
)

// TokenService issues and verifies the signed bearer tokens that gate the
// admin API. Tokens carry no server-side state; validity is a function of the
// token bytes, the signing secret and the clock.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (t TokenService) CreateAccessToken() (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss": t.Issuer,
		"sub": AdminSubject,
		"iat": now.Unix(),
		"exp": now.Add(t.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// ParseToken decodes and verifies a token. It reports only two failure modes:
// ErrExpiredToken when the expiry has passed, ErrInvalidToken for anything
// else (bad signature, wrong algorithm, corrupt payload).
func (t TokenService) ParseToken(tokenStr string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authorize verifies the token and additionally requires the admin subject.
func (t TokenService) Authorize(tokenStr string) (jwt.MapClaims, error) {
	claims, err := t.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if sub, _ := claims["sub"].(string); sub != AdminSubject {
		return nil, ErrUnauthorized("Invalid authentication credentials")
	}
	return claims, nil
}

// VerifyAdminPassword checks a submitted password against the configured
// admin secret. A secret that looks like a bcrypt hash is verified as one so
// deployments may keep a hash in the environment instead of the plaintext.
func VerifyAdminPassword(submitted, configured string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(configured)) == 1
}

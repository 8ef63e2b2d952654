package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenOptions describes the local HS256 tokens accepted when Auth0 is not
// configured.
type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// CreateToken signs a token for subject. The nickname claim feeds the
// user sync middleware.
func CreateToken(opts TokenOptions, subject, nickname string) (string, error) {
	if opts.Secret == "" {
		return "", errors.New("auth: JWT secret key not set")
	}
	if subject == "" {
		return "", errors.New("auth: subject is required")
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": opts.Issuer,
		"aud": []string{opts.Audience},
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if nickname != "" {
		claims["nickname"] = nickname
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature, expiry, issuer and audience and returns the subject.
func VerifyToken(opts TokenOptions, tokenString string) (string, error) {
	if opts.Secret == "" {
		return "", errors.New("auth: JWT secret key not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(opts.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(opts.Issuer),
		jwt.WithAudience(opts.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("auth: invalid token")
	}
	return token.Claims.GetSubject()
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pennywise/client/internal/models"
)

var (
	ErrNoToken      = errors.New("no bearer token available")
	ErrTokenExpired = errors.New("bearer token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenSource supplies the bearer credential attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// Inspect reads the claims of a JWT without verifying its signature; the
// signing key belongs to the identity provider. Opaque tokens yield a user
// with no expiry.
func Inspect(token string) models.User {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return models.User{}
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}
	}
	return userFromClaims(claims)
}

func userFromClaims(claims jwt.MapClaims) models.User {
	var user models.User
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		user.ID = sub
	} else if id, ok := claims["user_id"]; ok {
		user.ID = fmt.Sprintf("%v", id)
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		user.ExpiresAt = exp.Time
	}
	return user
}

// Issuer signs and verifies HS256 tokens for the development server.
type Issuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer using secret; expiry <= 0 defaults to 24h.
func NewIssuer(secret string, expiry time.Duration) *Issuer {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Issue returns a signed token for the given user.
func (i *Issuer) Issue(userID, email string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID,
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(i.expiry).Unix(),
	})
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the token's user.
func (i *Issuer) Verify(tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, ErrInvalidToken
	}
	return userFromClaims(claims), nil
}

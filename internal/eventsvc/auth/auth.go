package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid authentication credentials")

// Tokens issues and validates HS256 bearer tokens whose only identity
// claim is the subject user id.
type Tokens struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		ja:  jwtauth.New("HS256", []byte(secret), nil),
		ttl: ttl,
		now: time.Now,
	}
}

// JWTAuth exposes the underlying signer for the jwtauth.Verifier middleware.
func (t *Tokens) JWTAuth() *jwtauth.JWTAuth {
	return t.ja
}

func (t *Tokens) Issue(userID string) (string, error) {
	_, tokenString, err := t.ja.Encode(map[string]interface{}{
		"sub": userID,
		"exp": t.now().Add(t.ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return tokenString, nil
}

// Subject verifies the token signature and expiry and returns its subject.
func (t *Tokens) Subject(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(t.ja, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	sub := token.Subject()
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// SubjectFromClaims reads the subject from claims already verified by
// jwtauth.Verifier.
func SubjectFromClaims(claims map[string]interface{}) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

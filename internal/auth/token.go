package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType identifies the purpose a token was issued for.
type TokenType string

// Token types carried in the "typ" claim.
const (
	TokenAccess            TokenType = "access"
	TokenEmailVerification TokenType = "email_verification"
	TokenPasswordReset     TokenType = "password_reset"
)

// Token lifetimes per type.
const (
	AccessTokenTTL       = 7 * 24 * time.Hour
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = 30 * time.Minute
)

// Sentinel errors for token verification failures.
var (
	ErrTokenInvalid   = errors.New("auth: invalid token")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrWrongTokenType = errors.New("auth: wrong token type")
)

// Claims are the JWT claims issued by TokenIssuer. Subject holds the
// user's email address.
type Claims struct {
	Type TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies JWT tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret.
func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret, now: time.Now}
}

// IssueAccess issues a 7-day access token for the given user email.
func (t *TokenIssuer) IssueAccess(email string) (string, error) {
	return t.issue(email, TokenAccess, AccessTokenTTL)
}

// IssueEmailVerification issues a 24-hour email verification token.
func (t *TokenIssuer) IssueEmailVerification(email string) (string, error) {
	return t.issue(email, TokenEmailVerification, VerificationTokenTTL)
}

// IssuePasswordReset issues a 30-minute password reset token.
func (t *TokenIssuer) IssuePasswordReset(email string) (string, error) {
	return t.issue(email, TokenPasswordReset, ResetTokenTTL)
}

func (t *TokenIssuer) issue(email string, typ TokenType, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", typ, err)
	}
	return signed, nil
}

// Verify parses and validates a token, requiring the given token type.
// Returns the user email on success.
func (t *TokenIssuer) Verify(tokenString string, want TokenType) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Type != want {
		return "", fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.Type, want)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims.Subject, nil
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// DefaultSessionExpiry is the duration for which session tokens are valid.
	DefaultSessionExpiry = time.Hour
	// DefaultActionTokenExpiry is the duration for which email action tokens are valid.
	DefaultActionTokenExpiry = 7 * 24 * time.Hour
)

// Email action token purposes.
const (
	ActionApproveAdmin = "approve_admin"
	ActionRejectAdmin  = "reject_admin"
)

// ErrInvalidToken is returned when a token fails signature, expiry, or purpose checks.
var ErrInvalidToken = errors.New("invalid token")

// Audience values keep session and action tokens from being interchangeable.
const (
	audSession = "session"
	audAction  = "action"
)

// Claims represents session token claims.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsSessionToken reports whether the claims were minted for API sessions,
// as opposed to email action links.
func (c *Claims) IsSessionToken() bool {
	return c.VerifyAudience(audSession, true)
}

// ActionClaims represents email-link action token claims. These are distinct
// from session claims: they carry a purpose and never grant API access.
type ActionClaims struct {
	Email  string `json:"email"`
	Action string `json:"action"`
	jwt.RegisteredClaims
}

// JWTService handles session and action token generation and validation.
type JWTService struct {
	secret     []byte
	sessionTTL time.Duration
	actionTTL  time.Duration
}

// NewJWTService creates a new JWT service with the given secret. Zero TTLs
// fall back to the defaults.
func NewJWTService(secret string, sessionTTL, actionTTL time.Duration) *JWTService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionExpiry
	}
	if actionTTL <= 0 {
		actionTTL = DefaultActionTokenExpiry
	}
	return &JWTService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		actionTTL:  actionTTL,
	}
}

// GenerateSessionToken generates a signed session token for the subject.
// Role is empty for users that have not declared a role yet.
func (s *JWTService) GenerateSessionToken(email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Audience:  jwt.ClaimStrings{audSession},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken validates a session token and returns the claims.
func (s *JWTService) ValidateSessionToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.VerifyAudience(audSession, true) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateActionToken generates a purpose-scoped token for email approve/reject links.
func (s *JWTService) GenerateActionToken(action, email string) (string, error) {
	now := time.Now()
	claims := &ActionClaims{
		Email:  email,
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Audience:  jwt.ClaimStrings{audAction},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.actionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateActionToken validates an action token and returns the subject email.
// A token minted for a different action fails validation.
func (s *JWTService) ValidateActionToken(tokenString, action string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActionClaims{}, s.keyFunc)
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*ActionClaims)
	if !ok || !token.Valid || claims.Action != action || !claims.VerifyAudience(audAction, true) {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}

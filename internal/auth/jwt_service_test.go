package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_SessionToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 0)

	token, err := svc.GenerateSessionToken("student@campus.edu", "student")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "student@campus.edu", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestJWTService_SessionToken_EmptyRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 0)

	token, err := svc.GenerateSessionToken("new@campus.edu", "")
	assert.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Empty(t, claims.Role)
}

func TestJWTService_SessionToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 0)

	token, err := svc.GenerateSessionToken("student@campus.edu", "student")
	assert.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_SessionToken_WrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 0)
	other := NewJWTService("other-secret", time.Hour, 0)

	token, err := svc.GenerateSessionToken("student@campus.edu", "student")
	assert.NoError(t, err)

	_, err = other.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ActionToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 7*24*time.Hour)

	token, err := svc.GenerateActionToken(ActionApproveAdmin, "applicant@campus.edu")
	assert.NoError(t, err)

	email, err := svc.ValidateActionToken(token, ActionApproveAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "applicant@campus.edu", email)
}

func TestJWTService_ActionToken_WrongPurpose(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 7*24*time.Hour)

	token, err := svc.GenerateActionToken(ActionApproveAdmin, "applicant@campus.edu")
	assert.NoError(t, err)

	_, err = svc.ValidateActionToken(token, ActionRejectAdmin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_TokensNotInterchangeable(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 7*24*time.Hour)

	actionToken, err := svc.GenerateActionToken(ActionApproveAdmin, "applicant@campus.edu")
	assert.NoError(t, err)
	_, err = svc.ValidateSessionToken(actionToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	sessionToken, err := svc.GenerateSessionToken("student@campus.edu", "student")
	assert.NoError(t, err)
	_, err = svc.ValidateActionToken(sessionToken, ActionApproveAdmin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

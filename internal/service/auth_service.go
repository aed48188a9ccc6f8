package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubhub/internal/auth"
	"clubhub/internal/errors"
	"clubhub/internal/mail"
	"clubhub/internal/metrics"
	"clubhub/internal/model"
	"clubhub/internal/repository"
)

const bcryptCost = 10

// CodeStore is the OTP ledger contract the auth flow needs.
type CodeStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Consume(ctx context.Context, email, submitted string) (bool, error)
	Revoke(ctx context.Context, email string) error
}

// AuthService handles the OTP and password authentication lifecycle.
type AuthService interface {
	// SendCode issues and delivers an OTP. When delivery fails and the dev
	// fallback is enabled, the code is returned with delivered=false so the
	// handler can surface it directly.
	SendCode(ctx context.Context, email string) (code string, delivered bool, err error)
	Verify(ctx context.Context, email, code, password, confirm string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo    repository.UserRepository
	codes       CodeStore
	mailer      mail.Mailer
	jwtService  *auth.JWTService
	devFallback bool
	logger      *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	codes CodeStore,
	mailer mail.Mailer,
	jwtService *auth.JWTService,
	devFallback bool,
	logger *logrus.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		codes:       codes,
		mailer:      mailer,
		jwtService:  jwtService,
		devFallback: devFallback,
		logger:      logger,
	}
}

// SendCode issues a fresh OTP for the email and delivers it. The send is
// synchronous: the caller needs to know whether the mail went out.
func (s *authService) SendCode(ctx context.Context, email string) (string, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return "", false, fmt.Errorf("issue code: %w", err)
	}
	metrics.OTPIssuedTotal.Inc()

	if err := s.mailer.SendOTP(email, code); err != nil {
		if s.devFallback {
			s.logger.WithError(err).WithField("email", email).
				Warn("otp delivery failed, returning code in response (dev fallback)")
			return code, false, nil
		}
		s.logger.WithError(err).WithField("email", email).Error("otp delivery failed")
		// the user was never told this code, so it must not stay valid
		if revokeErr := s.codes.Revoke(ctx, email); revokeErr != nil {
			s.logger.WithError(revokeErr).WithField("email", email).Warn("revoke undelivered otp failed")
		}
		return "", false, errors.ErrMailDelivery
	}

	return code, true, nil
}

// Verify consumes the OTP and creates or updates the user. A rejected
// password leaves all state untouched: the policy check runs before the
// code is consumed.
func (s *authService) Verify(ctx context.Context, email, code, password, confirm string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if password != "" {
		if len(password) < 6 || password != confirm {
			return "", nil, errors.ErrPasswordPolicy
		}
	}

	ok, err := s.codes.Consume(ctx, email, code)
	if err != nil {
		return "", nil, fmt.Errorf("consume code: %w", err)
	}
	if !ok {
		return "", nil, errors.ErrInvalidCode
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{Email: email}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, fmt.Errorf("create user: %w", err)
		}
	default:
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return "", nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", nil, fmt.Errorf("update user: %w", err)
		}
	}

	token, err := s.jwtService.GenerateSessionToken(user.Email, roleString(user))
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates with email and password.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if user.PasswordHash == "" {
		return "", nil, errors.ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateSessionToken(user.Email, roleString(user))
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

func roleString(user *model.User) string {
	if user.Role == nil {
		return ""
	}
	return *user.Role
}

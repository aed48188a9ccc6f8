package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"clubhub/internal/errors"
	"clubhub/internal/model"
	"clubhub/internal/repository"
)

// UpdateProfileInput carries the profile-update fields. Role and ClubID are
// only honored for the one-time self-declaration.
type UpdateProfileInput struct {
	Name       string
	Branch     string
	RollNumber string
	Role       *string
	ClubID     *uint
}

// UserService exposes profile operations.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	clubRepo repository.ClubRepository
	notifier Notifier
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository, clubRepo repository.ClubRepository, notifier Notifier) UserService {
	return &userService{
		userRepo: userRepo,
		clubRepo: clubRepo,
		notifier: notifier,
	}
}

// GetByEmail loads the current profile.
func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile edits the profile and applies the role self-declaration
// policy: a user with no role may declare exactly once. Declaring student
// assigns the role directly; declaring club_admin records a pending request
// for the coordinator and leaves the role null. Once a role is assigned the
// role and club fields are ignored on subsequent edits.
func (s *userService) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) (*model.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Branch = in.Branch
	user.RollNumber = in.RollNumber

	requestedAdmin := false
	if !user.HasRole() && in.Role != nil {
		switch *in.Role {
		case model.RoleStudent:
			role := model.RoleStudent
			user.Role = &role
		case model.RoleClubAdmin:
			if in.ClubID == nil {
				return nil, errors.ErrClubNotFound
			}
			club, err := s.clubRepo.FindByID(ctx, *in.ClubID)
			if err != nil || !club.Active {
				return nil, errors.ErrClubNotFound
			}
			now := time.Now()
			user.ClubID = in.ClubID
			user.AdminRequested = true
			user.AdminRequestedAt = &now
			requestedAdmin = true
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if requestedAdmin {
		s.notifier.AdminRequested(user)
	}

	return user, nil
}

package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"clubhub/internal/errors"
	"clubhub/internal/model"
	"clubhub/internal/repository"
)

// Stats is the coordinator dashboard projection.
type Stats struct {
	Users           int64 `json:"users"`
	Clubs           int64 `json:"clubs"`
	Announcements   int64 `json:"announcements"`
	Registrations   int64 `json:"registrations"`
	PendingRequests int64 `json:"pending_requests"`
}

// AdminService exposes the coordinator's approval workflow.
type AdminService interface {
	PendingRequests(ctx context.Context) ([]model.User, error)
	Stats(ctx context.Context) (*Stats, error)
	Approve(ctx context.Context, email string) (*model.User, error)
	Reject(ctx context.Context, email string) (*model.User, error)
}

type adminService struct {
	userRepo repository.UserRepository
	clubRepo repository.ClubRepository
	annRepo  repository.AnnouncementRepository
	regRepo  repository.RegistrationRepository
	notifier Notifier
}

// NewAdminService builds an AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	clubRepo repository.ClubRepository,
	annRepo repository.AnnouncementRepository,
	regRepo repository.RegistrationRepository,
	notifier Notifier,
) AdminService {
	return &adminService{
		userRepo: userRepo,
		clubRepo: clubRepo,
		annRepo:  annRepo,
		regRepo:  regRepo,
		notifier: notifier,
	}
}

// PendingRequests lists users awaiting club-admin approval.
func (s *adminService) PendingRequests(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListPendingAdminRequests(ctx)
}

// Stats aggregates the dashboard counts.
func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	clubs, err := s.clubRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count clubs: %w", err)
	}
	anns, err := s.annRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count announcements: %w", err)
	}
	regs, err := s.regRepo.CountAllRegistered(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	pending, err := s.userRepo.ListPendingAdminRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	return &Stats{
		Users:           users,
		Clubs:           clubs,
		Announcements:   anns,
		Registrations:   regs,
		PendingRequests: int64(len(pending)),
	}, nil
}

// Approve grants the pending applicant the club_admin role for the club they
// requested, then notifies them.
func (s *adminService) Approve(ctx context.Context, email string) (*model.User, error) {
	user, err := s.findApplicant(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.ClubID == nil {
		return nil, errors.ErrNoPendingRequest
	}

	role := model.RoleClubAdmin
	user.Role = &role
	user.AdminRequested = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	clubName := ""
	if club, err := s.clubRepo.FindByID(ctx, *user.ClubID); err == nil {
		clubName = club.Name
	}
	s.notifier.AdminApproved(user, clubName)

	return user, nil
}

// Reject clears the pending request. The user keeps a null role and can
// self-declare again.
func (s *adminService) Reject(ctx context.Context, email string) (*model.User, error) {
	user, err := s.findApplicant(ctx, email)
	if err != nil {
		return nil, err
	}

	user.AdminRequested = false
	user.AdminRequestedAt = nil
	user.ClubID = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *adminService) findApplicant(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.AdminRequested || user.HasRole() {
		return nil, errors.ErrNoPendingRequest
	}
	return user, nil
}

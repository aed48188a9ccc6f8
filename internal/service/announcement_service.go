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

// AnnouncementInput carries announcement create/update fields.
type AnnouncementInput struct {
	Title                string
	Content              string
	ImagePath            string
	RegistrationEnabled  bool
	RegistrationDeadline *time.Time
	MaxRegistrations     *int
}

// AnnouncementService exposes club announcement operations.
type AnnouncementService interface {
	List(ctx context.Context) ([]model.Announcement, error)
	Get(ctx context.Context, id uint) (*model.Announcement, error)
	Create(ctx context.Context, creator *model.User, in AnnouncementInput) (*model.Announcement, error)
	Update(ctx context.Context, id uint, editor *model.User, in AnnouncementInput) (*model.Announcement, error)
	Delete(ctx context.Context, id uint, editor *model.User) error
}

type announcementService struct {
	annRepo  repository.AnnouncementRepository
	notifier Notifier
}

// NewAnnouncementService builds an AnnouncementService.
func NewAnnouncementService(annRepo repository.AnnouncementRepository, notifier Notifier) AnnouncementService {
	return &announcementService{
		annRepo:  annRepo,
		notifier: notifier,
	}
}

// List returns active announcements, newest first.
func (s *announcementService) List(ctx context.Context) ([]model.Announcement, error) {
	return s.annRepo.ListActive(ctx)
}

// Get returns one active announcement.
func (s *announcementService) Get(ctx context.Context, id uint) (*model.Announcement, error) {
	ann, err := s.annRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	if !ann.Active {
		return nil, errors.ErrEventNotFound
	}
	return ann, nil
}

// Create posts an announcement for the creator's club and kicks off the
// subscriber notification fan-out. Dispatch failure never fails creation.
func (s *announcementService) Create(ctx context.Context, creator *model.User, in AnnouncementInput) (*model.Announcement, error) {
	if !creator.IsClubAdmin() {
		return nil, errors.ErrForbidden
	}

	ann := &model.Announcement{
		ClubID:               *creator.ClubID,
		CreatedByID:          creator.ID,
		Title:                in.Title,
		Content:              in.Content,
		ImagePath:            in.ImagePath,
		RegistrationEnabled:  in.RegistrationEnabled,
		RegistrationDeadline: in.RegistrationDeadline,
		MaxRegistrations:     in.MaxRegistrations,
		Active:               true,
	}
	if err := s.annRepo.Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.notifier.AnnouncementCreated(ann)
	return ann, nil
}

// Update edits an announcement. Only the owning club's admin may edit.
func (s *announcementService) Update(ctx context.Context, id uint, editor *model.User, in AnnouncementInput) (*model.Announcement, error) {
	ann, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !editor.IsClubAdmin() || *editor.ClubID != ann.ClubID {
		return nil, errors.ErrForbidden
	}

	ann.Title = in.Title
	ann.Content = in.Content
	if in.ImagePath != "" {
		ann.ImagePath = in.ImagePath
	}
	ann.RegistrationEnabled = in.RegistrationEnabled
	ann.RegistrationDeadline = in.RegistrationDeadline
	ann.MaxRegistrations = in.MaxRegistrations

	if err := s.annRepo.Update(ctx, ann); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return ann, nil
}

// Delete soft-deletes an announcement by flipping its active flag.
func (s *announcementService) Delete(ctx context.Context, id uint, editor *model.User) error {
	ann, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !editor.IsClubAdmin() || *editor.ClubID != ann.ClubID {
		return errors.ErrForbidden
	}

	ann.Active = false
	if err := s.annRepo.Update(ctx, ann); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

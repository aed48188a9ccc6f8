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

// SocialService exposes likes and comments on announcements.
type SocialService interface {
	ToggleLike(ctx context.Context, announcementID, userID uint) (liked bool, count int64, err error)
	Liked(ctx context.Context, announcementID, userID uint) (bool, error)
	AddComment(ctx context.Context, announcementID uint, user *model.User, body string) (*model.Comment, error)
	ListComments(ctx context.Context, announcementID uint) ([]model.Comment, error)
	DeleteComment(ctx context.Context, commentID uint, requester *model.User) error
}

type socialService struct {
	socialRepo repository.SocialRepository
	annRepo    repository.AnnouncementRepository
}

// NewSocialService builds a SocialService.
func NewSocialService(socialRepo repository.SocialRepository, annRepo repository.AnnouncementRepository) SocialService {
	return &socialService{
		socialRepo: socialRepo,
		annRepo:    annRepo,
	}
}

// ToggleLike flips the user's like on the announcement and returns the new
// state and count.
func (s *socialService) ToggleLike(ctx context.Context, announcementID, userID uint) (bool, int64, error) {
	if _, err := s.loadAnnouncement(ctx, announcementID); err != nil {
		return false, 0, err
	}

	liked := false
	existing, err := s.socialRepo.FindLike(ctx, announcementID, userID)
	switch {
	case err == nil:
		if err := s.socialRepo.DeleteLike(ctx, existing.ID); err != nil {
			return false, 0, fmt.Errorf("delete like: %w", err)
		}
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		if err := s.socialRepo.CreateLike(ctx, &model.Like{
			AnnouncementID: announcementID,
			UserID:         userID,
		}); err != nil {
			return false, 0, fmt.Errorf("create like: %w", err)
		}
		liked = true
	default:
		return false, 0, fmt.Errorf("find like: %w", err)
	}

	count, err := s.socialRepo.CountLikes(ctx, announcementID)
	if err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}
	return liked, count, nil
}

// Liked reports whether the user liked the announcement.
func (s *socialService) Liked(ctx context.Context, announcementID, userID uint) (bool, error) {
	_, err := s.socialRepo.FindLike(ctx, announcementID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find like: %w", err)
	}
	return true, nil
}

// AddComment posts a comment on an active announcement.
func (s *socialService) AddComment(ctx context.Context, announcementID uint, user *model.User, body string) (*model.Comment, error) {
	if _, err := s.loadAnnouncement(ctx, announcementID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		AnnouncementID: announcementID,
		UserID:         user.ID,
		Body:           body,
	}
	if err := s.socialRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.User = user
	return comment, nil
}

// ListComments lists an announcement's comments oldest first.
func (s *socialService) ListComments(ctx context.Context, announcementID uint) ([]model.Comment, error) {
	if _, err := s.loadAnnouncement(ctx, announcementID); err != nil {
		return nil, err
	}
	return s.socialRepo.ListComments(ctx, announcementID)
}

// DeleteComment removes a comment. Allowed for the author and for the
// owning club's admin.
func (s *socialService) DeleteComment(ctx context.Context, commentID uint, requester *model.User) error {
	comment, err := s.socialRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if comment.UserID != requester.ID {
		ann, err := s.annRepo.FindByID(ctx, comment.AnnouncementID)
		if err != nil {
			return fmt.Errorf("find announcement: %w", err)
		}
		if !requester.IsClubAdmin() || *requester.ClubID != ann.ClubID {
			return errors.ErrForbidden
		}
	}

	return s.socialRepo.DeleteComment(ctx, commentID)
}

func (s *socialService) loadAnnouncement(ctx context.Context, id uint) (*model.Announcement, error) {
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

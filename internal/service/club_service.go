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

// ClubService exposes club reference data and subscription operations.
type ClubService interface {
	List(ctx context.Context) ([]model.Club, error)
	Get(ctx context.Context, id uint) (*model.Club, error)
	Subscribe(ctx context.Context, clubID, userID uint) error
	Unsubscribe(ctx context.Context, clubID, userID uint) error
	SubscriptionStatus(ctx context.Context, clubID, userID uint) (bool, error)
	MySubscriptions(ctx context.Context, userID uint) ([]model.Club, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type clubService struct {
	clubRepo repository.ClubRepository
	subRepo  repository.SubscriptionRepository
}

// NewClubService builds a ClubService.
func NewClubService(clubRepo repository.ClubRepository, subRepo repository.SubscriptionRepository) ClubService {
	return &clubService{
		clubRepo: clubRepo,
		subRepo:  subRepo,
	}
}

// List returns all active clubs.
func (s *clubService) List(ctx context.Context) ([]model.Club, error) {
	return s.clubRepo.ListActive(ctx)
}

// Get returns one club by ID.
func (s *clubService) Get(ctx context.Context, id uint) (*model.Club, error) {
	club, err := s.clubRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrClubNotFound
		}
		return nil, fmt.Errorf("find club: %w", err)
	}
	return club, nil
}

// Subscribe opts the user in to the club's announcement emails. Subscribing
// again is a no-op; an inactive row flips back to active.
func (s *clubService) Subscribe(ctx context.Context, clubID, userID uint) error {
	club, err := s.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if !club.Active {
		return errors.ErrClubNotFound
	}

	sub, err := s.subRepo.Find(ctx, clubID, userID)
	if err != nil {
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find subscription: %w", err)
		}
		return s.subRepo.Create(ctx, &model.ClubSubscription{
			ClubID: clubID,
			UserID: userID,
			Active: true,
		})
	}

	if !sub.Active {
		sub.Active = true
		return s.subRepo.Update(ctx, sub)
	}
	return nil
}

// Unsubscribe opts the user out. Unsubscribing without an active
// subscription is a clean no-op.
func (s *clubService) Unsubscribe(ctx context.Context, clubID, userID uint) error {
	if _, err := s.Get(ctx, clubID); err != nil {
		return err
	}

	sub, err := s.subRepo.Find(ctx, clubID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find subscription: %w", err)
	}

	if sub.Active {
		sub.Active = false
		return s.subRepo.Update(ctx, sub)
	}
	return nil
}

// SubscriptionStatus reports whether the user actively subscribes to the club.
func (s *clubService) SubscriptionStatus(ctx context.Context, clubID, userID uint) (bool, error) {
	sub, err := s.subRepo.Find(ctx, clubID, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find subscription: %w", err)
	}
	return sub.Active, nil
}

// MySubscriptions lists the clubs the user actively subscribes to.
func (s *clubService) MySubscriptions(ctx context.Context, userID uint) ([]model.Club, error) {
	subs, err := s.subRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	clubs := make([]model.Club, 0, len(subs))
	for _, sub := range subs {
		if sub.Club != nil {
			clubs = append(clubs, *sub.Club)
		}
	}
	return clubs, nil
}

// SeedDefaults inserts the campus club reference rows if missing.
func (s *clubService) SeedDefaults(ctx context.Context) (int, error) {
	defaults := []model.Club{
		{Name: "Coding Club", Code: "CODING", Active: true},
		{Name: "Robotics Club", Code: "ROBOTICS", Active: true},
		{Name: "Drama Society", Code: "DRAMA", Active: true},
		{Name: "Music Club", Code: "MUSIC", Active: true},
		{Name: "Photography Club", Code: "PHOTO", Active: true},
		{Name: "Literary Society", Code: "LIT", Active: true},
		{Name: "Sports Club", Code: "SPORTS", Active: true},
	}

	seeded := 0
	for i := range defaults {
		if err := s.clubRepo.UpsertByCode(ctx, &defaults[i]); err != nil {
			return seeded, fmt.Errorf("seed club %s: %w", defaults[i].Code, err)
		}
		seeded++
	}
	return seeded, nil
}

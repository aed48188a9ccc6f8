package repository

import (
	"context"

	"gorm.io/gorm"

	"clubhub/internal/model"
)

// SubscriptionRepository defines club subscription persistence.
type SubscriptionRepository interface {
	Find(ctx context.Context, clubID, userID uint) (*model.ClubSubscription, error)
	Create(ctx context.Context, sub *model.ClubSubscription) error
	Update(ctx context.Context, sub *model.ClubSubscription) error
	ListActiveByUser(ctx context.Context, userID uint) ([]model.ClubSubscription, error)
	ListActiveSubscribers(ctx context.Context, clubID uint) ([]model.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Find returns the single row for the (club, user) pair, any state.
func (r *subscriptionRepository) Find(ctx context.Context, clubID, userID uint) (*model.ClubSubscription, error) {
	var sub model.ClubSubscription
	if err := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a new subscription row.
func (r *subscriptionRepository) Create(ctx context.Context, sub *model.ClubSubscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Update saves an existing subscription row.
func (r *subscriptionRepository) Update(ctx context.Context, sub *model.ClubSubscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// ListActiveByUser lists a user's active subscriptions with clubs preloaded.
func (r *subscriptionRepository) ListActiveByUser(ctx context.Context, userID uint) ([]model.ClubSubscription, error) {
	var subs []model.ClubSubscription
	if err := r.db.WithContext(ctx).Preload("Club").
		Where("user_id = ? AND active = ?", userID, true).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListActiveSubscribers returns the users with an active subscription to the
// club. The notifier fans announcement email out over this set.
func (r *subscriptionRepository) ListActiveSubscribers(ctx context.Context, clubID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN club_subscriptions ON club_subscriptions.user_id = users.id").
		Where("club_subscriptions.club_id = ? AND club_subscriptions.active = ?", clubID, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

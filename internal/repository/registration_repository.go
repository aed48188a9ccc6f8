package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clubhub/internal/model"
)

// RegistrationRepository defines event registration persistence. The
// capacity check must run against a locked announcement row, so the
// interface exposes a transaction scope plus a locking read; concurrent
// registrations near the limit serialize on the row lock instead of racing
// the count.
type RegistrationRepository interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RegistrationRepository) error) error
	FindAnnouncementForUpdate(ctx context.Context, id uint) (*model.Announcement, error)
	CountRegistered(ctx context.Context, announcementID uint) (int64, error)
	FindByAnnouncementAndUser(ctx context.Context, announcementID, userID uint) (*model.EventRegistration, error)
	Create(ctx context.Context, reg *model.EventRegistration) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	ListByAnnouncement(ctx context.Context, announcementID uint) ([]model.EventRegistration, error)
	CountAllRegistered(ctx context.Context) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// WithTransaction executes fn within a database transaction. The repo passed
// to fn is bound to the transaction.
func (r *registrationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RegistrationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &registrationRepository{db: tx})
	})
}

// FindAnnouncementForUpdate loads the announcement with a row-level lock.
func (r *registrationRepository) FindAnnouncementForUpdate(ctx context.Context, id uint) (*model.Announcement, error) {
	var ann model.Announcement
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&ann).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// CountRegistered counts rows with status registered for the announcement.
// Cancelled rows never count against capacity.
func (r *registrationRepository) CountRegistered(ctx context.Context, announcementID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("announcement_id = ? AND status = ?", announcementID, model.RegistrationStatusRegistered).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByAnnouncementAndUser finds the single row for the pair, any status.
func (r *registrationRepository) FindByAnnouncementAndUser(ctx context.Context, announcementID, userID uint) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts a new registration row.
func (r *registrationRepository) Create(ctx context.Context, reg *model.EventRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// UpdateStatus flips the status of an existing row.
func (r *registrationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListByAnnouncement returns all rows for the announcement regardless of
// status, most recent action first, with users preloaded for the roster.
// A re-registration stamps updated_at, so a flipped row sorts by its latest
// registration rather than its original one.
func (r *registrationRepository) ListByAnnouncement(ctx context.Context, announcementID uint) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	if err := r.db.WithContext(ctx).Preload("User").
		Where("announcement_id = ?", announcementID).
		Order("updated_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// CountAllRegistered counts active registrations across all events.
func (r *registrationRepository) CountAllRegistered(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("status = ?", model.RegistrationStatusRegistered).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"clubhub/internal/model"
)

// AnnouncementRepository defines announcement persistence operations.
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *model.Announcement) error
	Update(ctx context.Context, ann *model.Announcement) error
	FindByID(ctx context.Context, id uint) (*model.Announcement, error)
	ListActive(ctx context.Context) ([]model.Announcement, error)
	Count(ctx context.Context) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create creates a new announcement.
func (r *announcementRepository) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

// Update saves an existing announcement. Soft deletion flips Active off.
func (r *announcementRepository) Update(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

// countsSelect pulls the like and comment counts alongside each row.
const countsSelect = "announcements.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.announcement_id = announcements.id) AS like_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.announcement_id = announcements.id) AS comment_count"

// FindByID finds an announcement by ID with its club preloaded.
func (r *announcementRepository) FindByID(ctx context.Context, id uint) (*model.Announcement, error) {
	var ann model.Announcement
	if err := r.db.WithContext(ctx).Preload("Club").
		Select(countsSelect).
		Where("announcements.id = ?", id).First(&ann).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// ListActive lists active announcements, newest first.
func (r *announcementRepository) ListActive(ctx context.Context) ([]model.Announcement, error) {
	var anns []model.Announcement
	if err := r.db.WithContext(ctx).Preload("Club").
		Select(countsSelect).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}

// Count returns the number of active announcements.
func (r *announcementRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Announcement{}).
		Where("active = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

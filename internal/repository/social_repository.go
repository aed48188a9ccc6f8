package repository

import (
	"context"

	"gorm.io/gorm"

	"clubhub/internal/model"
)

// SocialRepository defines like and comment persistence.
type SocialRepository interface {
	FindLike(ctx context.Context, announcementID, userID uint) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, id uint) error
	CountLikes(ctx context.Context, announcementID uint) (int64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	FindCommentByID(ctx context.Context, id uint) (*model.Comment, error)
	ListComments(ctx context.Context, announcementID uint) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social repository.
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) FindLike(ctx context.Context, announcementID, userID uint) (*model.Like, error) {
	var like model.Like
	if err := r.db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *socialRepository) CreateLike(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *socialRepository) DeleteLike(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Like{}, id).Error
}

func (r *socialRepository) CountLikes(ctx context.Context, announcementID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *socialRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *socialRepository) FindCommentByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *socialRepository) ListComments(ctx context.Context, announcementID uint) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).Preload("User").
		Where("announcement_id = ?", announcementID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *socialRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

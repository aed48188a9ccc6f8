package repository

import (
	"context"

	"gorm.io/gorm"

	"clubhub/internal/model"
)

// ClubRepository defines club persistence operations. Clubs are reference
// data; only the seed path writes them.
type ClubRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Club, error)
	ListActive(ctx context.Context) ([]model.Club, error)
	UpsertByCode(ctx context.Context, club *model.Club) error
	Count(ctx context.Context) (int64, error)
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository.
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// FindByID finds a club by ID.
func (r *clubRepository) FindByID(ctx context.Context, id uint) (*model.Club, error) {
	var club model.Club
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// ListActive lists all active clubs.
func (r *clubRepository) ListActive(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// UpsertByCode creates the club if no row with its code exists yet.
func (r *clubRepository) UpsertByCode(ctx context.Context, club *model.Club) error {
	return r.db.WithContext(ctx).
		Where(model.Club{Code: club.Code}).
		FirstOrCreate(club).Error
}

// Count returns the total number of clubs.
func (r *clubRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Club{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

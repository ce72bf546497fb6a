package repositories

import (
	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for review-like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(profileID, reviewID uint) error
	IsLikedBy(reviewID, profileID uint) (bool, error)
	CountForReview(reviewID uint) (int64, error)
	LikedReviewIDs(profileID uint, reviewIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) DeleteLike(profileID, reviewID uint) error {
	res := r.db.Where("profile_id = ? AND review_id = ?", profileID, reviewID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresLikeRepository) IsLikedBy(reviewID, profileID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("review_id = ? AND profile_id = ?", reviewID, profileID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) CountForReview(reviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}

// LikedReviewIDs returns which of the given reviews the profile has liked.
func (r *PostgresLikeRepository) LikedReviewIDs(profileID uint, reviewIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("profile_id = ? AND review_id IN ?", profileID, reviewIDs).
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

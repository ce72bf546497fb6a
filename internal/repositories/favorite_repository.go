package repositories

import (
	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite-film data operations
type FavoriteRepository interface {
	AddFavorite(favorite *models.Favorite) error
	RemoveFavorite(profileID, filmID uint) error
	IsFavorite(profileID, filmID uint) (bool, error)
	GetFavoritesByProfile(profileID uint) ([]models.Film, error)
}

// PostgresFavoriteRepository implements FavoriteRepository for PostgreSQL
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository
func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) AddFavorite(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *PostgresFavoriteRepository) RemoveFavorite(profileID, filmID uint) error {
	res := r.db.Where("profile_id = ? AND film_id = ?", profileID, filmID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFavoriteRepository) IsFavorite(profileID, filmID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Favorite{}).Where("profile_id = ? AND film_id = ?", profileID, filmID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFavoriteRepository) GetFavoritesByProfile(profileID uint) ([]models.Film, error) {
	var films []models.Film
	err := r.db.Where("id IN (?)",
		r.db.Table("favorites").Select("film_id").Where("profile_id = ?", profileID),
	).Find(&films).Error
	return films, err
}

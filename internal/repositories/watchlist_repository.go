package repositories

import (
	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for watchlist data operations
type WatchlistRepository interface {
	AddItem(item *models.WatchlistItem) error
	RemoveItem(profileID, filmID uint) error
	Contains(profileID, filmID uint) (bool, error)
	GetByProfile(profileID uint, limit, offset int) ([]models.Film, error)
	Count(profileID uint) (int64, error)
}

// PostgresWatchlistRepository implements WatchlistRepository for PostgreSQL
type PostgresWatchlistRepository struct {
	db *gorm.DB
}

// NewPostgresWatchlistRepository creates a new PostgresWatchlistRepository
func NewPostgresWatchlistRepository(db *gorm.DB) *PostgresWatchlistRepository {
	return &PostgresWatchlistRepository{db: db}
}

func (r *PostgresWatchlistRepository) AddItem(item *models.WatchlistItem) error {
	return r.db.Create(item).Error
}

func (r *PostgresWatchlistRepository) RemoveItem(profileID, filmID uint) error {
	res := r.db.Where("profile_id = ? AND film_id = ?", profileID, filmID).Delete(&models.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresWatchlistRepository) Contains(profileID, filmID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WatchlistItem{}).Where("profile_id = ? AND film_id = ?", profileID, filmID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByProfile returns the films on a profile's watchlist, most recently
// added first.
func (r *PostgresWatchlistRepository) GetByProfile(profileID uint, limit, offset int) ([]models.Film, error) {
	var films []models.Film
	err := r.db.
		Joins("JOIN watchlist_items ON watchlist_items.film_id = films.id").
		Where("watchlist_items.profile_id = ?", profileID).
		Order("watchlist_items.created_at DESC, watchlist_items.id ASC").
		Limit(limit).Offset(offset).
		Find(&films).Error
	return films, err
}

func (r *PostgresWatchlistRepository) Count(profileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WatchlistItem{}).Where("profile_id = ?", profileID).Count(&count).Error
	return count, err
}

package repositories

import (
	"errors"

	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// FilmRepository defines the interface for locally cached film rows
type FilmRepository interface {
	FindOrCreate(film *models.Film) (*models.Film, error)
	GetByID(id uint) (*models.Film, error)
	GetByTmdbID(tmdbID int) (*models.Film, error)
	GetByTmdbIDs(tmdbIDs []int) ([]models.Film, error)
	Save(film *models.Film) error
}

// PostgresFilmRepository implements FilmRepository for PostgreSQL
type PostgresFilmRepository struct {
	db *gorm.DB
}

// NewPostgresFilmRepository creates a new PostgresFilmRepository
func NewPostgresFilmRepository(db *gorm.DB) *PostgresFilmRepository {
	return &PostgresFilmRepository{db: db}
}

// FindOrCreate returns the existing row for the film's TMDB id, creating it
// from the given template when missing.
func (r *PostgresFilmRepository) FindOrCreate(film *models.Film) (*models.Film, error) {
	var existing models.Film
	err := r.db.Where("tmdb_id = ?", film.TmdbID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.Create(film).Error; err != nil {
		return nil, err
	}
	return film, nil
}

func (r *PostgresFilmRepository) GetByID(id uint) (*models.Film, error) {
	var film models.Film
	if err := r.db.First(&film, id).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *PostgresFilmRepository) GetByTmdbID(tmdbID int) (*models.Film, error) {
	var film models.Film
	if err := r.db.Where("tmdb_id = ?", tmdbID).First(&film).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *PostgresFilmRepository) GetByTmdbIDs(tmdbIDs []int) ([]models.Film, error) {
	var films []models.Film
	if len(tmdbIDs) == 0 {
		return films, nil
	}
	err := r.db.Where("tmdb_id IN ?", tmdbIDs).Find(&films).Error
	return films, err
}

func (r *PostgresFilmRepository) Save(film *models.Film) error {
	return r.db.Save(film).Error
}

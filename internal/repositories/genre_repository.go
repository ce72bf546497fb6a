package repositories

import (
	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// GenreRepository defines the interface for genre data operations
type GenreRepository interface {
	GetAll() ([]models.Genre, error)
	FindByName(name string) (*models.Genre, error)
	Save(genre *models.Genre) error
}

// PostgresGenreRepository implements GenreRepository for PostgreSQL
type PostgresGenreRepository struct {
	db *gorm.DB
}

// NewPostgresGenreRepository creates a new PostgresGenreRepository
func NewPostgresGenreRepository(db *gorm.DB) *PostgresGenreRepository {
	return &PostgresGenreRepository{db: db}
}

func (r *PostgresGenreRepository) GetAll() ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *PostgresGenreRepository) FindByName(name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *PostgresGenreRepository) Save(genre *models.Genre) error {
	return r.db.Save(genre).Error
}

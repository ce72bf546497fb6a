package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

const excerptLength = 200

// ReviewRepository defines the interface for review data operations,
// including the review-backed activity event stream and the local rating
// population.
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	GetReviewByProfileAndFilm(profileID, filmID uint) (*models.Review, error)
	GetReviewsByFilm(filmID uint, limit, offset int) ([]models.Review, error)
	GetReviewsByProfile(profileID uint, limit, offset int) ([]models.Review, error)
	UpdateReview(review *models.Review) error
	DeleteReview(id, profileID uint) error
	RatingStats(filmID uint) (models.RatingStats, error)
	FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error)
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *PostgresReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *PostgresReviewRepository) GetReviewByProfileAndFilm(profileID, filmID uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("profile_id = ? AND film_id = ?", profileID, filmID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *PostgresReviewRepository) GetReviewsByFilm(filmID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("film_id = ?", filmID).
		Order("created_at DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (r *PostgresReviewRepository) GetReviewsByProfile(profileID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("profile_id = ?", profileID).
		Order("created_at DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

func (r *PostgresReviewRepository) UpdateReview(review *models.Review) error {
	return r.db.Save(review).Error
}

func (r *PostgresReviewRepository) DeleteReview(id, profileID uint) error {
	res := r.db.Where("id = ? AND profile_id = ?", id, profileID).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RatingStats recomputes the local user rating population for a film from
// its review rows.
func (r *PostgresReviewRepository) RatingStats(filmID uint) (models.RatingStats, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("film_id = ?", filmID).
		Scan(&row).Error
	if err != nil {
		return models.RatingStats{}, err
	}
	return models.RatingStats{Average: row.Average, Count: row.Count}, nil
}

type reviewEventRow struct {
	ID          uint
	ProfileID   uint
	Rating      float64
	Body        string
	CreatedAt   time.Time
	DisplayName string
	AvatarURL   string
	TmdbID      int
	FilmTitle   string
	PosterURL   string
}

// FeedEvents returns the newest review events, ordered created_at DESC then
// id ASC, enriched with actor and film data. A nil profileIDs means no
// filter; an empty slice matches nothing.
func (r *PostgresReviewRepository) FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error) {
	q := r.db.WithContext(ctx).Table("reviews").
		Select(`reviews.id, reviews.profile_id, reviews.rating, reviews.body, reviews.created_at,
			profiles.display_name, profiles.avatar_url,
			films.tmdb_id, films.title AS film_title, films.poster_url`).
		Joins("JOIN profiles ON profiles.id = reviews.profile_id").
		Joins("JOIN films ON films.id = reviews.film_id").
		Order("reviews.created_at DESC, reviews.id ASC").
		Limit(fetch)
	if profileIDs != nil {
		q = q.Where("reviews.profile_id IN ?", profileIDs)
	}

	var rows []reviewEventRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]models.ActivityEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.ActivityEvent{
			Kind:        models.EventKindReview,
			ID:          strconv.FormatUint(uint64(row.ID), 10),
			ProfileID:   row.ProfileID,
			Timestamp:   row.CreatedAt,
			DisplayName: row.DisplayName,
			AvatarURL:   row.AvatarURL,
			TmdbID:      row.TmdbID,
			FilmTitle:   row.FilmTitle,
			PosterURL:   row.PosterURL,
			Review: &models.ReviewActivity{
				ReviewID: row.ID,
				Rating:   row.Rating,
				Excerpt:  excerpt(row.Body),
			},
		})
	}
	return events, nil
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= excerptLength {
		return body
	}
	return string(runes[:excerptLength]) + "…"
}

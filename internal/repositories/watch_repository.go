package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// WatchRepository defines the interface for watch-log data operations,
// including the watch-backed activity event stream.
type WatchRepository interface {
	CreateWatchEvent(event *models.WatchEvent) error
	GetWatchEventByID(id uint) (*models.WatchEvent, error)
	GetWatchEventsByProfile(profileID uint, limit, offset int) ([]models.WatchEvent, error)
	DeleteWatchEvent(id, profileID uint) error
	HasWatched(profileID, filmID uint) (bool, error)
	FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error)
}

// PostgresWatchRepository implements WatchRepository for PostgreSQL
type PostgresWatchRepository struct {
	db *gorm.DB
}

// NewPostgresWatchRepository creates a new PostgresWatchRepository
func NewPostgresWatchRepository(db *gorm.DB) *PostgresWatchRepository {
	return &PostgresWatchRepository{db: db}
}

func (r *PostgresWatchRepository) CreateWatchEvent(event *models.WatchEvent) error {
	return r.db.Create(event).Error
}

func (r *PostgresWatchRepository) GetWatchEventByID(id uint) (*models.WatchEvent, error) {
	var event models.WatchEvent
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *PostgresWatchRepository) GetWatchEventsByProfile(profileID uint, limit, offset int) ([]models.WatchEvent, error) {
	var events []models.WatchEvent
	err := r.db.Where("profile_id = ?", profileID).
		Order("created_at DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *PostgresWatchRepository) DeleteWatchEvent(id, profileID uint) error {
	res := r.db.Where("id = ? AND profile_id = ?", id, profileID).Delete(&models.WatchEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresWatchRepository) HasWatched(profileID, filmID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.WatchEvent{}).
		Where("profile_id = ? AND film_id = ? AND watched", profileID, filmID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type watchEventRow struct {
	ID          uint
	ProfileID   uint
	Watched     bool
	CreatedAt   time.Time
	DisplayName string
	AvatarURL   string
	TmdbID      int
	FilmTitle   string
	PosterURL   string
}

// FeedEvents returns the newest watch events, ordered created_at DESC then
// id ASC. A nil profileIDs means no filter.
func (r *PostgresWatchRepository) FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error) {
	q := r.db.WithContext(ctx).Table("watch_events").
		Select(`watch_events.id, watch_events.profile_id, watch_events.watched, watch_events.created_at,
			profiles.display_name, profiles.avatar_url,
			films.tmdb_id, films.title AS film_title, films.poster_url`).
		Joins("JOIN profiles ON profiles.id = watch_events.profile_id").
		Joins("JOIN films ON films.id = watch_events.film_id").
		Order("watch_events.created_at DESC, watch_events.id ASC").
		Limit(fetch)
	if profileIDs != nil {
		q = q.Where("watch_events.profile_id IN ?", profileIDs)
	}

	var rows []watchEventRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]models.ActivityEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.ActivityEvent{
			Kind:        models.EventKindWatch,
			ID:          strconv.FormatUint(uint64(row.ID), 10),
			ProfileID:   row.ProfileID,
			Timestamp:   row.CreatedAt,
			DisplayName: row.DisplayName,
			AvatarURL:   row.AvatarURL,
			TmdbID:      row.TmdbID,
			FilmTitle:   row.FilmTitle,
			PosterURL:   row.PosterURL,
			Watch:       &models.WatchActivity{Watched: row.Watched},
		})
	}
	return events, nil
}

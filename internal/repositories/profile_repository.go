package repositories

import (
	"github.com/onlyfilms/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id uint) (*models.Profile, error)
	GetProfileByUserID(userID uint) (*models.Profile, error)
	GetProfileByDisplayName(name string) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteProfileByUserID(userID uint) error
	SearchProfiles(query string, limit int) ([]models.Profile, error)
	SummariesByIDs(ids []uint) (map[uint]models.ProfileSummary, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *PostgresProfileRepository) GetProfileByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByDisplayName matches the display name case-insensitively, the
// way profile search does.
func (r *PostgresProfileRepository) GetProfileByDisplayName(name string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("display_name ILIKE ?", name).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *PostgresProfileRepository) DeleteProfileByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}

func (r *PostgresProfileRepository) SearchProfiles(query string, limit int) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("display_name ILIKE ?", "%"+query+"%").Limit(limit).Find(&profiles).Error
	return profiles, err
}

func (r *PostgresProfileRepository) SummariesByIDs(ids []uint) (map[uint]models.ProfileSummary, error) {
	summaries := make(map[uint]models.ProfileSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	var profiles []models.Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		summaries[profiles[i].ID] = profiles[i].Summary()
	}
	return summaries, nil
}

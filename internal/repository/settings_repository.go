package repository

import (
	"context"

	"restaurant_pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	// Get returns the settings row, or a not-found error when none exists yet.
	Get(ctx context.Context) (*models.Settings, error)
	// CreateIfAbsent inserts the settings row unless one already exists; a
	// concurrent insert that loses the race is not an error.
	CreateIfAbsent(ctx context.Context, settings *models.Settings) error
	Update(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if err != nil {
		return nil, translate(err, "settings")
	}
	return &settings, nil
}

func (r *settingsRepository) CreateIfAbsent(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}

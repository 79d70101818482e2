package services

import (
	"context"
	"strings"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const settingsCacheKey = "settings:current"

var maxPercentage = decimal.NewFromInt(100)

// Cache is the subset of the Redis client used for read-through caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type SettingsService interface {
	// Get returns the current settings, creating the default row on first use.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

type settingsService struct {
	repo   repository.SettingsRepository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewSettingsService wires the settings provider. cache may be nil.
func NewSettingsService(repo repository.SettingsRepository, cache Cache, ttl time.Duration, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	if s.cache != nil {
		var cached models.Settings
		hit, err := s.cache.GetJSON(ctx, settingsCacheKey, &cached)
		if err != nil {
			s.logger.Warn("settings cache read failed", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	settings, err := s.repo.Get(ctx)
	if apperrors.Is(err, apperrors.KindNotFound) {
		if err := s.repo.CreateIfAbsent(ctx, models.DefaultSettings()); err != nil {
			return nil, err
		}
		// Another request may have inserted first; read back whichever row won.
		if settings, err = s.repo.Get(ctx); err != nil {
			return nil, err
		}
		s.logger.Info("ensured default settings")
	} else if err != nil {
		return nil, err
	}

	s.store(ctx, settings)
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	if err := validateSettingsPatch(patch); err != nil {
		return nil, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	patch.Apply(settings)
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
			s.logger.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}
	return settings, nil
}

func (s *settingsService) store(ctx context.Context, settings *models.Settings) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, settingsCacheKey, settings, s.ttl); err != nil {
		s.logger.Warn("settings cache write failed", zap.Error(err))
	}
}

func validateSettingsPatch(p models.SettingsPatch) error {
	if p.TaxPercentage != nil && !inPercentRange(*p.TaxPercentage) {
		return apperrors.Validation("taxPercentage must be between 0 and 100")
	}
	if p.ServiceCharge != nil && !inPercentRange(*p.ServiceCharge) {
		return apperrors.Validation("serviceCharge must be between 0 and 100")
	}
	if p.DeliveryFee != nil && p.DeliveryFee.IsNegative() {
		return apperrors.Validation("deliveryFee cannot be negative")
	}
	if p.MinimumOrderAmount != nil && p.MinimumOrderAmount.IsNegative() {
		return apperrors.Validation("minimumOrderAmount cannot be negative")
	}
	if p.RestaurantName != nil && strings.TrimSpace(*p.RestaurantName) == "" {
		return apperrors.Validation("restaurantName cannot be empty")
	}
	if p.Currency != nil && len(strings.TrimSpace(*p.Currency)) != 3 {
		return apperrors.Validation("currency must be a 3-letter code")
	}
	return nil
}

func inPercentRange(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(maxPercentage)
}

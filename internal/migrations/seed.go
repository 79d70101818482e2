package migrations

import (
	"context"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

type starterCategory struct {
	slug  string
	name  string
	items []starterItem
}

type starterItem struct {
	name        string
	description string
	price       string
}

var starterMenu = []starterCategory{
	{slug: "mains", name: "Mains", items: []starterItem{
		{"Classic Burger", "Beef patty, cheddar, pickles", "12.50"},
		{"Margherita Pizza", "Tomato, mozzarella, basil", "14.00"},
	}},
	{slug: "sides", name: "Sides", items: []starterItem{
		{"Fries", "Hand-cut, sea salt", "4.00"},
		{"Garden Salad", "Seasonal greens", "5.50"},
	}},
	{slug: "drinks", name: "Drinks", items: []starterItem{
		{"Lemonade", "", "3.50"},
		{"Iced Tea", "", "3.00"},
	}},
}

// Seed creates the super admin, default settings and a starter menu when they
// are missing. It is safe to run on every start.
func Seed(ctx context.Context, users repository.UserRepository, settings repository.SettingsRepository, menu repository.MenuRepository, auth services.AuthService, cfg SeedConfig, logger *zap.Logger) error {
	if err := seedAdmin(ctx, users, auth, cfg, logger); err != nil {
		return err
	}
	if err := seedSettings(ctx, settings, logger); err != nil {
		return err
	}
	return seedMenu(ctx, menu, logger)
}

func seedAdmin(ctx context.Context, users repository.UserRepository, auth services.AuthService, cfg SeedConfig, logger *zap.Logger) error {
	_, err := users.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return err
	}

	admin := &models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Role:     string(models.SuperAdmin),
	}
	if err := auth.CreateUser(ctx, admin, cfg.AdminPassword); err != nil {
		return err
	}
	logger.Info("created super admin", zap.String("username", admin.Username))
	return nil
}

func seedSettings(ctx context.Context, settings repository.SettingsRepository, logger *zap.Logger) error {
	_, err := settings.Get(ctx)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return err
	}
	if err := settings.CreateIfAbsent(ctx, models.DefaultSettings()); err != nil {
		return err
	}
	logger.Info("created default settings")
	return nil
}

func seedMenu(ctx context.Context, menu repository.MenuRepository, logger *zap.Logger) error {
	existing, err := menu.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i, sc := range starterMenu {
		category := &models.Category{Slug: sc.slug, Name: sc.name, SortOrder: i, IsActive: true}
		if err := menu.CreateCategory(ctx, category); err != nil {
			return err
		}
		for _, si := range sc.items {
			item := &models.MenuItem{
				CategoryID:  category.ID,
				Name:        si.name,
				Description: si.description,
				Price:       decimal.RequireFromString(si.price),
				IsAvailable: true,
			}
			if err := menu.CreateItem(ctx, item); err != nil {
				return err
			}
		}
	}
	logger.Info("created starter menu", zap.Int("categories", len(starterMenu)))
	return nil
}

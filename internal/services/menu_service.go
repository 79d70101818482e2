package services

import (
	"context"
	"regexp"
	"strings"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"github.com/shopspring/decimal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CategoryInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    *bool  `json:"isActive"`
}

type MenuItemInput struct {
	CategoryID  uint            `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl"`
}

type MenuService interface {
	GetMenu(ctx context.Context, availableOnly bool) ([]models.Category, error)
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uint, input MenuItemInput) (*models.MenuItem, error)
	SetAvailability(ctx context.Context, id uint, available bool) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uint) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func (s *menuService) GetMenu(ctx context.Context, availableOnly bool) ([]models.Category, error) {
	return s.repo.ListMenu(ctx, availableOnly)
}

func (s *menuService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *menuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *menuService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if err := validateCategory(&input); err != nil {
		return nil, err
	}

	category := &models.Category{
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	if err := validateCategory(&input); err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Slug = input.Slug
	category.Name = input.Name
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *menuService) CreateItem(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	if err := validateMenuItem(&input); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsAvailable: input.IsAvailable == nil || *input.IsAvailable,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, id uint, input MenuItemInput) (*models.MenuItem, error) {
	if err := validateMenuItem(&input); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.CategoryID != input.CategoryID {
		if _, err := s.repo.GetCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.ImageURL = input.ImageURL
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) SetAvailability(ctx context.Context, id uint, available bool) (*models.MenuItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsAvailable = available
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, id uint) error {
	return s.repo.DeleteItem(ctx, id)
}

func validateCategory(input *CategoryInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	if input.Name == "" {
		return apperrors.Validation("category name is required")
	}
	if !slugPattern.MatchString(input.Slug) {
		return apperrors.Validation("slug must be lowercase letters, digits and dashes")
	}
	return nil
}

func validateMenuItem(input *MenuItemInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return apperrors.Validation("item name is required")
	}
	if input.CategoryID == 0 {
		return apperrors.Validation("category_id is required")
	}
	if input.Price.IsNegative() {
		return apperrors.Validation("price cannot be negative")
	}
	if !input.Price.Equal(input.Price.Round(2)) {
		return apperrors.Validation("price cannot have more than 2 decimal places")
	}
	return nil
}

package repository

import (
	"context"

	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CreateItem(ctx context.Context, item *models.MenuItem) error
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)
	GetItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error)
	UpdateItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id uint) error
	ListMenu(ctx context.Context, availableOnly bool) ([]models.Category, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "category")
}

func (r *menuRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *menuRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *menuRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Save(category).Error, "category")
}

func (r *menuRepository) DeleteCategory(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "category")
	}
	return nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error, "menu item")
}

// withCategoryState loads menu items together with whether their category still
// shows on the menu.
func withCategoryState(db *gorm.DB) *gorm.DB {
	return db.
		Select("menu_items.*, (categories.id IS NULL OR categories.deleted_at IS NOT NULL OR NOT categories.is_active) AS category_hidden").
		Joins("LEFT JOIN categories ON categories.id = menu_items.category_id")
}

func (r *menuRepository) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Scopes(withCategoryState).First(&item, id).Error
	if err != nil {
		return nil, translate(err, "menu item")
	}
	return &item, nil
}

// GetItemsByIDs returns the items that exist; missing ids are simply absent from the result.
func (r *menuRepository) GetItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Scopes(withCategoryState).
		Where("menu_items.id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *menuRepository) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	return translate(r.db.WithContext(ctx).Save(item).Error, "menu item")
}

func (r *menuRepository) DeleteItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "menu item")
	}
	return nil
}

// ListMenu returns active categories with their items, optionally only available ones.
func (r *menuRepository) ListMenu(ctx context.Context, availableOnly bool) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			if availableOnly {
				db = db.Where("is_available = ?", true)
			}
			return db.Order("name ASC")
		}).
		Find(&categories).Error
	return categories, err
}

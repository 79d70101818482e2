package repository

import (
	"context"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, changedBy *uint) error
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error
	GetStatusHistory(ctx context.Context, orderID uint) ([]models.OrderStatusChange, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its item snapshots in one transaction.
// A duplicate order number surfaces as a conflict error.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error, "order")
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, translate(err, "order")
	}
	return &order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, translate(err, "order")
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []models.Order
	err := query.Find(&orders).Error
	return orders, err
}

// UpdateStatus moves the order from one status to another and records the change.
// The update only applies while the order is still in from, so two admins racing on
// the same order cannot both win.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, changedBy *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, string(from)).
			Update("status", string(to))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("order status was changed by another request")
		}

		return tx.Create(&models.OrderStatusChange{
			OrderID:    id,
			FromStatus: string(from),
			ToStatus:   string(to),
			ChangedBy:  changedBy,
		}).Error
	})
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("payment_status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order not found")
	}
	return nil
}

func (r *orderRepository) GetStatusHistory(ctx context.Context, orderID uint) ([]models.OrderStatusChange, error) {
	var history []models.OrderStatusChange
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&history).Error
	return history, err
}

package services

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/pricing"
	"restaurant_pos/internal/repository"

	"go.uber.org/zap"
)

const (
	maxOrderNumberAttempts = 5
	defaultListLimit       = 50
	maxListLimit           = 200

	minDeliveryMinutes = 30
	deliveryWindow     = 15
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type CreateOrderInput struct {
	Items         []models.CartItem
	Customer      Customer
	OrderType     models.OrderType
	PaymentMethod models.PaymentMethod
	PaymentStatus models.PaymentStatus
	Notes         string
	CreatedBy     *uint
}

type OrderService interface {
	// CreateOrder re-verifies and re-prices the claimed cart before persisting.
	// Totals sent by the client are never trusted.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	// GetOrder accepts either a numeric id or an ORD- order number.
	GetOrder(ctx context.Context, ref string) (*models.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, changedBy *uint) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Order, error)
	GetStatusHistory(ctx context.Context, id uint) ([]models.OrderStatusChange, error)
}

type OrderServiceOption func(*orderService)

func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *orderService) { s.now = now }
}

func WithOrderNumbers(next OrderNumberFunc) OrderServiceOption {
	return func(s *orderService) { s.nextNumber = next }
}

// WithDeliveryJitter overrides the source of the extra minutes added to the
// minimum delivery estimate; it must return a value in [0, n).
func WithDeliveryJitter(intn func(n int) int) OrderServiceOption {
	return func(s *orderService) { s.intn = intn }
}

type orderService struct {
	orders     repository.OrderRepository
	settings   SettingsService
	verifier   VerificationService
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
	nextNumber OrderNumberFunc
	intn       func(n int) int
}

func NewOrderService(
	orders repository.OrderRepository,
	settings SettingsService,
	verifier VerificationService,
	notifier Notifier,
	logger *zap.Logger,
	opts ...OrderServiceOption,
) OrderService {
	s := &orderService{
		orders:     orders,
		settings:   settings,
		verifier:   verifier,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
		nextNumber: NewOrderNumber,
		intn:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validateOrderInput(&input); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if input.OrderType == models.OrderTypeDelivery {
		if !settings.EnableDelivery {
			return nil, apperrors.Unavailable("delivery is currently unavailable")
		}
		if input.Customer.Address == "" {
			return nil, apperrors.Validation("delivery address is required for delivery orders")
		}
	}

	verification, err := s.verifier.Verify(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if !verification.Valid {
		if len(verification.Items) == 0 {
			return nil, apperrors.Unavailable("none of the items in the cart can be ordered").WithDetails(verification)
		}
		return nil, apperrors.Conflict("cart has changed, please review it").WithDetails(verification)
	}

	breakdown := pricing.Calculate(verification.Subtotal, settings, input.OrderType)
	if !breakdown.MeetsMinimum(settings.MinimumOrderAmount) {
		return nil, apperrors.Validationf("minimum order amount is %s", settings.MinimumOrderAmount.StringFixed(2))
	}

	var order *models.Order
	for attempt := 1; ; attempt++ {
		now := s.now()
		order = s.buildOrder(input, verification.Items, breakdown, now)

		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if !apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to save order", err)
		}
		if attempt == maxOrderNumberAttempts {
			return nil, apperrors.Conflict("could not allocate a unique order number, please retry")
		}
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", order.OrderNumber),
			zap.Int("attempt", attempt))
	}

	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("order_type", order.OrderType),
		zap.String("total", order.Total.StringFixed(2)))
	s.notifier.OrderCreated(ctx, order)
	return order, nil
}

func (s *orderService) buildOrder(input CreateOrderInput, items []models.CartItem, b pricing.Breakdown, now time.Time) *models.Order {
	order := &models.Order{
		OrderNumber:     s.nextNumber(now),
		CustomerName:    input.Customer.Name,
		CustomerPhone:   input.Customer.Phone,
		CustomerEmail:   input.Customer.Email,
		DeliveryAddress: input.Customer.Address,
		Notes:           input.Notes,
		OrderType:       string(input.OrderType),
		PaymentMethod:   string(input.PaymentMethod),
		PaymentStatus:   string(input.PaymentStatus),
		Status:          string(models.OrderPending),
		Subtotal:        b.Subtotal,
		TaxPercentage:   b.TaxPercentage,
		Tax:             b.Tax,
		DeliveryFee:     b.DeliveryFee,
		ServiceCharge:   b.ServiceCharge,
		Total:           b.Total,
		CreatedBy:       input.CreatedBy,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.NewOrderItem(item))
	}
	if input.OrderType == models.OrderTypeDelivery {
		eta := now.Add(time.Duration(minDeliveryMinutes+s.intn(deliveryWindow)) * time.Minute)
		order.EstimatedDeliveryAt = &eta
	}
	return order
}

func validateOrderInput(input *CreateOrderInput) error {
	input.Customer.Name = strings.TrimSpace(input.Customer.Name)
	input.Customer.Phone = strings.TrimSpace(input.Customer.Phone)
	input.Customer.Email = strings.TrimSpace(input.Customer.Email)
	input.Customer.Address = strings.TrimSpace(input.Customer.Address)

	if input.Customer.Name == "" {
		return apperrors.Validation("customer name is required")
	}
	if !input.OrderType.Valid() {
		return apperrors.Validationf("invalid order type %q", input.OrderType)
	}
	if !input.PaymentMethod.Valid() {
		return apperrors.Validationf("invalid payment method %q", input.PaymentMethod)
	}
	if input.PaymentStatus != "" && !input.PaymentStatus.Valid() {
		return apperrors.Validationf("invalid payment status %q", input.PaymentStatus)
	}
	// Only staff sessions may record a payment taken at the counter.
	if input.PaymentStatus == "" || input.CreatedBy == nil {
		input.PaymentStatus = models.PaymentPending
	}
	if len(input.Items) == 0 {
		return apperrors.Validation("cart is empty")
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	if IsOrderNumber(ref) {
		return s.orders.GetByNumber(ctx, ref)
	}
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil || id == 0 {
		return nil, apperrors.Validationf("invalid order reference %q", ref)
	}
	return s.orders.GetByID(ctx, uint(id))
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !models.OrderStatus(filter.Status).Valid() {
		return nil, apperrors.Validationf("invalid status %q", filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.orders.List(ctx, filter)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, changedBy *uint) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status %q", status)
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := models.OrderStatus(order.Status)
	if !from.CanTransitionTo(status, models.OrderType(order.OrderType)) {
		return nil, apperrors.Validationf("cannot change order status from %s to %s", from, status)
	}

	if err := s.orders.UpdateStatus(ctx, id, from, status, changedBy); err != nil {
		return nil, err
	}
	order.Status = string(status)

	s.logger.Info("order status changed",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	s.notifier.OrderStatusChanged(ctx, order, from)
	return order, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid payment status %q", status)
	}
	if err := s.orders.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) GetStatusHistory(ctx context.Context, id uint) ([]models.OrderStatusChange, error) {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.orders.GetStatusHistory(ctx, id)
}

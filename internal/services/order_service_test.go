package services

import (
	"context"
	"testing"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type orderFixture struct {
	repo     *fakeOrderRepo
	settings *fakeSettings
	notifier *recordingNotifier
	svc      OrderService
}

func newOrderFixture(t *testing.T, opts ...OrderServiceOption) *orderFixture {
	t.Helper()
	f := &orderFixture{
		repo: &fakeOrderRepo{},
		settings: &fakeSettings{settings: &models.Settings{
			ID:                 1,
			TaxPercentage:      dec("10"),
			DeliveryFee:        dec("3.99"),
			ServiceCharge:      dec("0"),
			MinimumOrderAmount: dec("0"),
			EnableDelivery:     true,
		}},
		notifier: &recordingNotifier{},
	}
	opts = append([]OrderServiceOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	f.svc = NewOrderService(f.repo, f.settings, NewVerificationService(testMenu()), f.notifier, zap.NewNop(), opts...)
	return f
}

func pickupInput() CreateOrderInput {
	return CreateOrderInput{
		Items:         []models.CartItem{{ID: 1, Name: "Burger", UnitPrice: dec("12.50"), Quantity: 2}},
		Customer:      Customer{Name: "Ada", Phone: "0812"},
		OrderType:     models.OrderTypePickup,
		PaymentMethod: models.PaymentCash,
	}
}

func TestCreateOrder_PricesFromVerifiedCart(t *testing.T) {
	f := newOrderFixture(t)
	var saved *models.Order
	f.repo.createFn = func(ctx context.Context, order *models.Order) error {
		order.ID = 10
		saved = order
		return nil
	}

	order, err := f.svc.CreateOrder(context.Background(), pickupInput())
	require.NoError(t, err)

	assert.Same(t, saved, order)
	assert.Regexp(t, `^ORD-\d{6}-\d{4}$`, order.OrderNumber)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.True(t, order.Subtotal.Equal(dec("25.00")))
	assert.True(t, order.Tax.Equal(dec("2.50")))
	assert.True(t, order.DeliveryFee.IsZero())
	assert.True(t, order.Total.Equal(dec("27.50")))
	assert.Nil(t, order.EstimatedDeliveryAt)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].LineTotal.Equal(dec("25.00")))
	assert.Equal(t, []string{order.OrderNumber}, f.notifier.created)
}

func TestCreateOrder_Delivery(t *testing.T) {
	f := newOrderFixture(t, WithDeliveryJitter(func(n int) int {
		assert.Equal(t, 15, n)
		return 14
	}))
	input := pickupInput()
	input.OrderType = models.OrderTypeDelivery
	input.Customer.Address = "1 Main St"

	order, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, order.DeliveryFee.Equal(dec("3.99")))
	assert.True(t, order.Total.Equal(dec("31.49")))
	require.NotNil(t, order.EstimatedDeliveryAt)
	assert.Equal(t, fixedNow.Add(44*time.Minute), *order.EstimatedDeliveryAt)
}

func TestCreateOrder_PaymentStatus(t *testing.T) {
	staff := uint(3)
	tests := []struct {
		name      string
		createdBy *uint
		claimed   models.PaymentStatus
		want      string
	}{
		{"anonymous claim is ignored", nil, models.PaymentPaid, "pending"},
		{"staff records payment", &staff, models.PaymentPaid, "paid"},
		{"staff default", &staff, "", "pending"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			input := pickupInput()
			input.CreatedBy = tt.createdBy
			input.PaymentStatus = tt.claimed

			order, err := f.svc.CreateOrder(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.PaymentStatus)
		})
	}
}

func TestCreateOrder_DeliveryETAWindow(t *testing.T) {
	f := newOrderFixture(t)
	input := pickupInput()
	input.OrderType = models.OrderTypeDelivery
	input.Customer.Address = "1 Main St"

	for i := 0; i < 50; i++ {
		order, err := f.svc.CreateOrder(context.Background(), input)
		require.NoError(t, err)
		eta := order.EstimatedDeliveryAt.Sub(fixedNow)
		assert.GreaterOrEqual(t, eta, 30*time.Minute)
		assert.Less(t, eta, 45*time.Minute)
	}
}

func TestCreateOrder_DeliveryDisabledPersistsNothing(t *testing.T) {
	f := newOrderFixture(t)
	f.settings.settings.EnableDelivery = false
	f.repo.createFn = func(ctx context.Context, order *models.Order) error {
		t.Fatal("order must not be persisted")
		return nil
	}
	input := pickupInput()
	input.OrderType = models.OrderTypeDelivery
	input.Customer.Address = "1 Main St"

	_, err := f.svc.CreateOrder(context.Background(), input)

	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable), "got %v", err)
	assert.Empty(t, f.notifier.created)
}

func TestCreateOrder_DeliveryRequiresAddress(t *testing.T) {
	f := newOrderFixture(t)
	input := pickupInput()
	input.OrderType = models.OrderTypeDelivery

	_, err := f.svc.CreateOrder(context.Background(), input)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestCreateOrder_StaleCartIsRejectedWithCorrection(t *testing.T) {
	f := newOrderFixture(t)
	f.repo.createFn = func(ctx context.Context, order *models.Order) error {
		t.Fatal("order must not be persisted")
		return nil
	}
	input := pickupInput()
	input.Items[0].UnitPrice = dec("1.00")

	_, err := f.svc.CreateOrder(context.Background(), input)

	require.True(t, apperrors.Is(err, apperrors.KindConflict), "got %v", err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	verification, ok := appErr.Details.(*Verification)
	require.True(t, ok)
	assert.True(t, verification.Items[0].UnitPrice.Equal(dec("12.50")))
}

func TestCreateOrder_NothingOrderable(t *testing.T) {
	f := newOrderFixture(t)
	input := pickupInput()
	input.Items = []models.CartItem{{ID: 3, Name: "Soup", UnitPrice: dec("6.00"), Quantity: 1}}

	_, err := f.svc.CreateOrder(context.Background(), input)
	assert.True(t, apperrors.Is(err, apperrors.KindUnavailable), "got %v", err)
}

func TestCreateOrder_BelowMinimum(t *testing.T) {
	f := newOrderFixture(t)
	f.settings.settings.MinimumOrderAmount = dec("30")

	_, err := f.svc.CreateOrder(context.Background(), pickupInput())
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.ErrorContains(t, err, "30.00")
}

func TestCreateOrder_InputValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missing name", func(in *CreateOrderInput) { in.Customer.Name = " " }},
		{"bad order type", func(in *CreateOrderInput) { in.OrderType = "drive-thru" }},
		{"bad payment method", func(in *CreateOrderInput) { in.PaymentMethod = "barter" }},
		{"bad payment status", func(in *CreateOrderInput) { in.PaymentStatus = "maybe" }},
		{"empty cart", func(in *CreateOrderInput) { in.Items = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			input := pickupInput()
			tt.mutate(&input)

			_, err := f.svc.CreateOrder(context.Background(), input)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)
		})
	}
}

func TestCreateOrder_RetriesOnNumberCollision(t *testing.T) {
	numbers := []string{"ORD-000001-0001", "ORD-000001-0001", "ORD-000001-0002"}
	calls := 0
	f := newOrderFixture(t, WithOrderNumbers(func(time.Time) string {
		n := numbers[calls]
		calls++
		return n
	}))
	taken := map[string]bool{"ORD-000001-0001": true}
	f.repo.createFn = func(ctx context.Context, order *models.Order) error {
		if taken[order.OrderNumber] {
			return apperrors.Conflict("order already exists")
		}
		return nil
	}

	order, err := f.svc.CreateOrder(context.Background(), pickupInput())
	require.NoError(t, err)

	assert.Equal(t, "ORD-000001-0002", order.OrderNumber)
	assert.Equal(t, 3, calls)
}

func TestCreateOrder_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newOrderFixture(t, WithOrderNumbers(func(time.Time) string { return "ORD-000001-0001" }))
	attempts := 0
	f.repo.createFn = func(ctx context.Context, order *models.Order) error {
		attempts++
		return apperrors.Conflict("order already exists")
	}

	_, err := f.svc.CreateOrder(context.Background(), pickupInput())

	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	assert.Equal(t, maxOrderNumberAttempts, attempts)
	assert.Empty(t, f.notifier.created)
}

func TestNewOrderNumber_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, `^ORD-\d{6}-\d{4}$`, NewOrderNumber(time.Now()))
	}
	assert.Contains(t, NewOrderNumber(time.UnixMilli(1714564800123)), "ORD-800123-")
}

func TestGetOrder_ResolvesReference(t *testing.T) {
	f := newOrderFixture(t)
	f.repo.getByIDFn = func(ctx context.Context, id uint) (*models.Order, error) {
		return &models.Order{ID: id}, nil
	}
	f.repo.getByNumberFn = func(ctx context.Context, number string) (*models.Order, error) {
		return &models.Order{ID: 5, OrderNumber: number}, nil
	}

	byID, err := f.svc.GetOrder(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), byID.ID)

	byNumber, err := f.svc.GetOrder(context.Background(), "ORD-123456-7890")
	require.NoError(t, err)
	assert.Equal(t, "ORD-123456-7890", byNumber.OrderNumber)

	_, err = f.svc.GetOrder(context.Background(), "ORD-abc")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestListOrders_ClampsPaging(t *testing.T) {
	f := newOrderFixture(t)
	var got repository.OrderFilter
	f.repo.listFn = func(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
		got = filter
		return nil, nil
	}

	_, err := f.svc.ListOrders(context.Background(), repository.OrderFilter{Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, got.Limit)
	assert.Equal(t, 0, got.Offset)

	_, err = f.svc.ListOrders(context.Background(), repository.OrderFilter{Status: "lost"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		orderType models.OrderType
		from      models.OrderStatus
		to        models.OrderStatus
		allowed   bool
	}{
		{"pending to confirmed", models.OrderTypePickup, models.OrderPending, models.OrderConfirmed, true},
		{"skip a step", models.OrderTypePickup, models.OrderPending, models.OrderReady, false},
		{"delivery goes out", models.OrderTypeDelivery, models.OrderReady, models.OrderOutForDelivery, true},
		{"pickup never goes out", models.OrderTypePickup, models.OrderReady, models.OrderOutForDelivery, false},
		{"pickup handed over", models.OrderTypePickup, models.OrderReady, models.OrderDelivered, true},
		{"cancel while preparing", models.OrderTypeInStore, models.OrderPreparing, models.OrderCancelled, true},
		{"terminal stays terminal", models.OrderTypeDelivery, models.OrderDelivered, models.OrderCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			f.repo.getByIDFn = func(ctx context.Context, id uint) (*models.Order, error) {
				return &models.Order{ID: id, OrderNumber: "ORD-1", OrderType: string(tt.orderType), Status: string(tt.from)}, nil
			}
			updated := false
			f.repo.updateStatusFn = func(ctx context.Context, id uint, from, to models.OrderStatus, changedBy *uint) error {
				updated = true
				assert.Equal(t, tt.from, from)
				assert.Equal(t, tt.to, to)
				return nil
			}

			order, err := f.svc.UpdateStatus(context.Background(), 4, tt.to, nil)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, string(tt.to), order.Status)
				assert.Equal(t, []string{string(tt.from) + "->" + string(tt.to)}, f.notifier.changed)
			} else {
				assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)
				assert.Empty(t, f.notifier.changed)
			}
			assert.Equal(t, tt.allowed, updated)
		})
	}
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.UpdateStatus(context.Background(), 4, models.OrderConfirmed, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newOrderFixture(t)
	f.repo.getByIDFn = func(ctx context.Context, id uint) (*models.Order, error) {
		return &models.Order{ID: id, PaymentStatus: "paid"}, nil
	}

	order, err := f.svc.UpdatePaymentStatus(context.Background(), 2, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, "paid", order.PaymentStatus)

	_, err = f.svc.UpdatePaymentStatus(context.Background(), 2, "sort-of")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

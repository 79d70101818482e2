package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"restaurant_pos/internal/events"
	"restaurant_pos/internal/models"
	"restaurant_pos/pkg/whatsapp"

	"go.uber.org/zap"
)

const notifyTimeout = 10 * time.Second

// Notifier reports order lifecycle changes. Delivery is best effort; failures are
// logged and never reach the caller.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
	OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus)
}

// TextSender is satisfied by *whatsapp.Client.
type TextSender interface {
	SendTextMessage(ctx context.Context, phone, message string) (*whatsapp.SendMessageResponse, error)
}

type NotificationService struct {
	publisher events.Publisher
	sender    TextSender
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewNotificationService fans order events out to the broker and, when sender is
// non-nil, to the customer's WhatsApp.
func NewNotificationService(publisher events.Publisher, sender TextSender, logger *zap.Logger) *NotificationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &NotificationService{publisher: publisher, sender: sender, logger: logger}
}

func (s *NotificationService) OrderCreated(ctx context.Context, order *models.Order) {
	s.publish(ctx, events.OrderCreatedKey, events.NewOrderCreated(order), order)
	s.message(ctx, order, orderCreatedMessage(order))
}

func (s *NotificationService) OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) {
	s.publish(ctx, events.OrderStatusChangedKey, events.NewOrderStatusChanged(order, from), order)
	s.message(ctx, order, statusChangedMessage(order))
}

// Wait blocks until in-flight messages are done.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) publish(ctx context.Context, key string, payload interface{}, order *models.Order) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("event", key),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
	}
}

func (s *NotificationService) message(ctx context.Context, order *models.Order, text string) {
	if s.sender == nil || strings.TrimSpace(order.CustomerPhone) == "" {
		return
	}

	phone := order.CustomerPhone
	number := order.OrderNumber
	sendCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(sendCtx, notifyTimeout)
		defer cancel()

		if _, err := s.sender.SendTextMessage(ctx, phone, text); err != nil {
			s.logger.Warn("failed to send whatsapp notification",
				zap.String("order_number", number),
				zap.Error(err))
		}
	}()
}

func orderCreatedMessage(o *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, we received your order %s.\n", o.CustomerName, o.OrderNumber)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%dx %s %s\n", it.Quantity, it.Name, it.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s", o.Total.StringFixed(2))
	if o.EstimatedDeliveryAt != nil {
		fmt.Fprintf(&b, "\nEstimated delivery: %s", o.EstimatedDeliveryAt.Format("15:04"))
	}
	return b.String()
}

func statusChangedMessage(o *models.Order) string {
	return fmt.Sprintf("Your order %s is now %s.", o.OrderNumber, strings.ReplaceAll(o.Status, "-", " "))
}

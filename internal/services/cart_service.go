package services

import (
	"context"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/cart"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/pricing"

	"github.com/shopspring/decimal"
)

type CartView struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

// Quote is a priced preview of the cart for a given order type.
type Quote struct {
	pricing.Breakdown
	OrderType          models.OrderType `json:"orderType"`
	MinimumOrderAmount decimal.Decimal  `json:"minimumOrderAmount"`
	MeetsMinimum       bool             `json:"meetsMinimum"`
	DeliveryAvailable  bool             `json:"deliveryAvailable"`
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID string, menuItemID uint, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error)
	Clear(ctx context.Context, sessionID string) (*CartView, error)
	Quote(ctx context.Context, sessionID string, orderType models.OrderType) (*Quote, error)
	// Verify checks the session cart against the menu and replaces it with the
	// corrected cart when anything changed.
	Verify(ctx context.Context, sessionID string) (*Verification, error)
}

type cartService struct {
	storage  cart.Storage
	menu     MenuCatalog
	settings SettingsService
	verifier VerificationService
}

func NewCartService(storage cart.Storage, menu MenuCatalog, settings SettingsService, verifier VerificationService) CartService {
	return &cartService{storage: storage, menu: menu, settings: settings, verifier: verifier}
}

func (s *cartService) open(ctx context.Context, sessionID string) (*cart.Store, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("missing cart session")
	}
	store, err := cart.Open(ctx, s.storage, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
	}
	return store, nil
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view(store), nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error) {
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, err := s.menu.GetItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if !item.Orderable() {
		return nil, apperrors.Unavailable(item.Name + " is currently unavailable")
	}

	if err := store.Add(ctx, models.CartItem{ID: item.ID, Name: item.Name, UnitPrice: item.Price}); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
	}
	return view(store), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, menuItemID uint, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateQuantity(ctx, menuItemID, quantity); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
	}
	return view(store), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, menuItemID uint) (*CartView, error) {
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.Remove(ctx, menuItemID); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
	}
	return view(store), nil
}

func (s *cartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.Clear(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
	}
	return view(store), nil
}

func (s *cartService) Quote(ctx context.Context, sessionID string, orderType models.OrderType) (*Quote, error) {
	if !orderType.Valid() {
		return nil, apperrors.Validationf("invalid order type %q", orderType)
	}
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.Calculate(store.Total(), settings, orderType)
	return &Quote{
		Breakdown:          breakdown,
		OrderType:          orderType,
		MinimumOrderAmount: settings.MinimumOrderAmount,
		MeetsMinimum:       breakdown.MeetsMinimum(settings.MinimumOrderAmount),
		DeliveryAvailable:  settings.EnableDelivery,
	}, nil
}

func (s *cartService) Verify(ctx context.Context, sessionID string) (*Verification, error) {
	store, err := s.open(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.verifier.Verify(ctx, store.Items())
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		if err := store.Replace(ctx, result.Items); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "cart storage unavailable", err)
		}
	}
	return result, nil
}

func view(store *cart.Store) *CartView {
	return &CartView{Items: store.Items(), Total: store.Total(), Count: store.Count()}
}

// Package cart holds a shopper's ordered list of cart lines and keeps it in a
// key-value slot, writing the whole list back after every mutation.
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant_pos/internal/models"

	"github.com/shopspring/decimal"
)

// Storage is the durable slot a cart is persisted to. Load returns nil data
// and a nil error when the slot is empty.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type Store struct {
	key     string
	storage Storage
	items   []models.CartItem
}

// Open loads the cart kept under key. An empty or unreadable slot yields an empty cart;
// only storage failures are returned.
func Open(ctx context.Context, storage Storage, key string) (*Store, error) {
	data, err := storage.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Store{key: key, storage: storage, items: decode(data)}, nil
}

func decode(data []byte) []models.CartItem {
	if len(data) == 0 {
		return []models.CartItem{}
	}

	var raw []models.CartItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return []models.CartItem{}
	}

	items := make([]models.CartItem, 0, len(raw))
	for _, item := range raw {
		if item.Quantity < 1 || item.UnitPrice.IsNegative() {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Add increments the quantity of a line with the same id, or appends item with quantity 1.
func (s *Store) Add(ctx context.Context, item models.CartItem) error {
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity++
		return s.persist(ctx)
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	return s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, id uint) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist(ctx)
}

// UpdateQuantity replaces the quantity of line id. Values below 1 are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	if quantity < 1 {
		return nil
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = quantity
	return s.persist(ctx)
}

// Replace swaps the whole cart, e.g. for a corrected cart returned by verification.
func (s *Store) Replace(ctx context.Context, items []models.CartItem) error {
	s.items = append([]models.CartItem{}, items...)
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.items = []models.CartItem{}
	return s.persist(ctx)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns Σ(unitPrice × quantity).
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count returns Σ(quantity).
func (s *Store) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) indexOf(id uint) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

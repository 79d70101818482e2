package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"restaurant_pos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (m *memoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[key], nil
}

func (m *memoryStorage) Save(ctx context.Context, key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func item(id uint, price string) models.CartItem {
	return models.CartItem{ID: id, Name: "item", UnitPrice: decimal.RequireFromString(price)}
}

func openEmpty(t *testing.T, storage *memoryStorage) *Store {
	t.Helper()
	s, err := Open(context.Background(), storage, "cart")
	require.NoError(t, err)
	return s
}

func TestStore_Example(t *testing.T) {
	ctx := context.Background()
	s := openEmpty(t, newMemoryStorage())

	require.NoError(t, s.Add(ctx, item(1, "10.00")))
	require.NoError(t, s.Add(ctx, item(1, "10.00")))
	require.NoError(t, s.Add(ctx, item(2, "5.00")))

	assert.True(t, s.Total().Equal(decimal.RequireFromString("25.00")), "total = %s", s.Total())
	assert.Equal(t, 3, s.Count())
}

func TestStore_AddSameItemTwiceMerges(t *testing.T) {
	ctx := context.Background()
	s := openEmpty(t, newMemoryStorage())

	require.NoError(t, s.Add(ctx, item(7, "3.50")))
	require.NoError(t, s.Add(ctx, item(7, "3.50")))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_AddIgnoresIncomingQuantity(t *testing.T) {
	ctx := context.Background()
	s := openEmpty(t, newMemoryStorage())

	in := item(1, "1.00")
	in.Quantity = 9
	require.NoError(t, s.Add(ctx, in))

	assert.Equal(t, 1, s.Count())
}

func TestStore_UpdateQuantityBelowOneIsNoop(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	s := openEmpty(t, storage)
	require.NoError(t, s.Add(ctx, item(1, "4.00")))
	require.NoError(t, s.UpdateQuantity(ctx, 1, 3))
	saves := storage.saves

	require.NoError(t, s.UpdateQuantity(ctx, 1, 0))
	require.NoError(t, s.UpdateQuantity(ctx, 1, -2))

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, saves, storage.saves)
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := openEmpty(t, newMemoryStorage())
	require.NoError(t, s.Add(ctx, item(1, "1.00")))
	require.NoError(t, s.Add(ctx, item(2, "2.00")))
	require.NoError(t, s.Add(ctx, item(3, "3.00")))

	require.NoError(t, s.Remove(ctx, 2))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, uint(3), items[1].ID)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
	assert.True(t, s.Total().IsZero())
}

func TestStore_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	s := openEmpty(t, storage)
	require.NoError(t, s.Add(ctx, item(1, "10.00")))
	require.NoError(t, s.UpdateQuantity(ctx, 1, 4))

	reloaded := openEmpty(t, storage)

	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, uint(1), reloaded.Items()[0].ID)
	assert.Equal(t, 4, reloaded.Count())
	assert.True(t, reloaded.Total().Equal(s.Total()))
}

func TestStore_CorruptSlotFallsBackToEmpty(t *testing.T) {
	storage := newMemoryStorage()
	storage.data["cart"] = []byte("{not json")

	s := openEmpty(t, storage)

	assert.Empty(t, s.Items())
}

func TestStore_DropsInvalidStoredLines(t *testing.T) {
	storage := newMemoryStorage()
	storage.data["cart"] = []byte(`[{"id":1,"name":"a","unitPrice":"2.00","quantity":1},{"id":2,"name":"b","unitPrice":"1.00","quantity":0},{"id":3,"name":"c","unitPrice":"-1","quantity":2}]`)

	s := openEmpty(t, storage)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, uint(1), s.Items()[0].ID)
}

func TestStore_LoadError(t *testing.T) {
	storage := newMemoryStorage()
	storage.loadErr = errors.New("connection refused")

	_, err := Open(context.Background(), storage, "cart")

	assert.Error(t, err)
}

func TestStore_SaveErrorIsReturned(t *testing.T) {
	storage := newMemoryStorage()
	s := openEmpty(t, storage)
	storage.saveErr = errors.New("read only")

	assert.Error(t, s.Add(context.Background(), item(1, "1.00")))
}

func TestStore_StoredFormatIsOrderedList(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	s := openEmpty(t, storage)
	require.NoError(t, s.Add(ctx, item(5, "1.25")))
	require.NoError(t, s.Add(ctx, item(2, "3.00")))

	var stored []models.CartItem
	require.NoError(t, json.Unmarshal(storage.data["cart"], &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, uint(5), stored[0].ID)
	assert.Equal(t, uint(2), stored[1].ID)
}

func TestStore_TotalMatchesSumAfterRandomOperations(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	prices := []string{"0.99", "4.50", "12.00", "7.25", "0"}
	s := openEmpty(t, newMemoryStorage())

	for i := 0; i < 500; i++ {
		id := uint(rng.Intn(len(prices)))
		switch rng.Intn(3) {
		case 0:
			require.NoError(t, s.Add(ctx, item(id, prices[id])))
		case 1:
			require.NoError(t, s.Remove(ctx, id))
		case 2:
			require.NoError(t, s.UpdateQuantity(ctx, id, rng.Intn(6)-1))
		}

		expected := decimal.Zero
		count := 0
		for _, it := range s.Items() {
			expected = expected.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
			count += it.Quantity
			assert.GreaterOrEqual(t, it.Quantity, 1)
		}
		require.True(t, s.Total().Equal(expected))
		require.Equal(t, count, s.Count())
	}
}

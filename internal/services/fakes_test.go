package services

import (
	"context"
	"sync"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"
	"restaurant_pos/pkg/whatsapp"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeOrderRepo struct {
	createFn              func(ctx context.Context, order *models.Order) error
	getByIDFn             func(ctx context.Context, id uint) (*models.Order, error)
	getByNumberFn         func(ctx context.Context, number string) (*models.Order, error)
	listFn                func(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error)
	updateStatusFn        func(ctx context.Context, id uint, from, to models.OrderStatus, changedBy *uint) error
	updatePaymentStatusFn func(ctx context.Context, id uint, status models.PaymentStatus) error
	historyFn             func(ctx context.Context, id uint) ([]models.OrderStatusChange, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.createFn == nil {
		order.ID = 1
		return nil
	}
	return f.createFn(ctx, order)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	if f.getByIDFn == nil {
		return nil, apperrors.NotFound("order not found")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeOrderRepo) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	if f.getByNumberFn == nil {
		return nil, apperrors.NotFound("order not found")
	}
	return f.getByNumberFn(ctx, number)
}

func (f *fakeOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, filter)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, changedBy *uint) error {
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(ctx, id, from, to, changedBy)
}

func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	if f.updatePaymentStatusFn == nil {
		return nil
	}
	return f.updatePaymentStatusFn(ctx, id, status)
}

func (f *fakeOrderRepo) GetStatusHistory(ctx context.Context, id uint) ([]models.OrderStatusChange, error) {
	if f.historyFn == nil {
		return nil, nil
	}
	return f.historyFn(ctx, id)
}

type fakeSettingsRepo struct {
	settings *models.Settings
	// winner is inserted by a concurrent request between Get and CreateIfAbsent.
	winner  *models.Settings
	creates int
	updates int
	gets    int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	f.gets++
	if f.settings == nil {
		return nil, apperrors.NotFound("settings not found")
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) CreateIfAbsent(ctx context.Context, settings *models.Settings) error {
	f.creates++
	if f.winner != nil && f.settings == nil {
		f.settings = f.winner
	}
	if f.settings != nil {
		return nil
	}
	copied := *settings
	f.settings = &copied
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *models.Settings) error {
	f.updates++
	copied := *settings
	f.settings = &copied
	return nil
}

// fakeSettings is a fixed SettingsService.
type fakeSettings struct {
	settings *models.Settings
	err      error
}

func (f *fakeSettings) Get(ctx context.Context) (*models.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettings) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	patch.Apply(f.settings)
	return f.settings, nil
}

type fakeCatalog struct {
	items map[uint]models.MenuItem
	err   error
}

func newCatalog(items ...models.MenuItem) *fakeCatalog {
	c := &fakeCatalog{items: map[uint]models.MenuItem{}}
	for _, it := range items {
		c.items[it.ID] = it
	}
	return c
}

func (f *fakeCatalog) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("menu item not found")
	}
	return &item, nil
}

func (f *fakeCatalog) GetItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.MenuItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]interface{}{}}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*dest.(*models.Settings) = *v.(*models.Settings)
	return true, nil
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *value.(*models.Settings)
	c.entries[key] = &copied
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.entries, key)
	return nil
}

type recordingNotifier struct {
	created []string
	changed []string
}

func (n *recordingNotifier) OrderCreated(ctx context.Context, order *models.Order) {
	n.created = append(n.created, order.OrderNumber)
}

func (n *recordingNotifier) OrderStatusChanged(ctx context.Context, order *models.Order, from models.OrderStatus) {
	n.changed = append(n.changed, string(from)+"->"+order.Status)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeSender struct {
	mu       sync.Mutex
	phones   []string
	messages []string
	err      error
}

func (s *fakeSender) SendTextMessage(ctx context.Context, phone, message string) (*whatsapp.SendMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	if s.err != nil {
		return nil, s.err
	}
	return &whatsapp.SendMessageResponse{Code: "SUCCESS"}, nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperrors.Conflict("user already exists")
		}
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

type memoryStorage struct {
	slots map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{slots: map[string][]byte{}}
}

func (m *memoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	return m.slots[key], nil
}

func (m *memoryStorage) Save(ctx context.Context, key string, data []byte) error {
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

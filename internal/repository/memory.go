package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pennywise/client/internal/models"
)

// MemoryTransactions keeps transactions in process memory.
type MemoryTransactions struct {
	mu    sync.RWMutex
	items []models.Transaction
}

func NewMemoryTransactions() *MemoryTransactions {
	return &MemoryTransactions{}
}

func (m *MemoryTransactions) List(_ context.Context, filters models.TransactionFilters, page, size int, s Sort) (models.Page[models.Transaction], error) {
	m.mu.RLock()
	matched := make([]models.Transaction, 0, len(m.items))
	for _, t := range m.items {
		if filters.Matches(t) {
			matched = append(matched, t)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		c := compareTransactions(matched[i], matched[j], s.Field)
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
	return models.Paginate(matched, page, size), nil
}

func compareTransactions(a, b models.Transaction, field string) int {
	switch field {
	case "amount":
		return a.Amount.Cmp(b.Amount)
	case "transactionType":
		return strings.Compare(string(a.TransactionType), string(b.TransactionType))
	case "note":
		return strings.Compare(a.Note, b.Note)
	case "id":
		return strings.Compare(a.ID, b.ID)
	}
	switch {
	case a.EffectiveDate.Before(b.EffectiveDate):
		return -1
	case b.EffectiveDate.Before(a.EffectiveDate):
		return 1
	}
	return 0
}

func (m *MemoryTransactions) Get(_ context.Context, id string) (models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.items {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

func (m *MemoryTransactions) Create(_ context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]models.Transaction{t}, m.items...)
	return t, nil
}

func (m *MemoryTransactions) Update(_ context.Context, t models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == t.ID {
			m.items[i] = t
			return t, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

func (m *MemoryTransactions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Entity is a record with a server-assigned id.
type Entity[T any] interface {
	GetID() string
	WithID(id string) T
}

// Collection is an in-memory store for wallets and categories, kept in
// insertion order.
type Collection[T Entity[T]] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollection[T Entity[T]](seed ...T) *Collection[T] {
	c := &Collection[T]{}
	for _, item := range seed {
		c.Create(item)
	}
	return c
}

func (c *Collection[T]) List(page, size int) models.Page[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.Paginate(c.items, page, size)
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (c *Collection[T]) Create(item T) T {
	if item.GetID() == "" {
		item = item.WithID(uuid.NewString())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return item
}

func (c *Collection[T]) Update(id string, item T) (T, error) {
	item = item.WithID(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items[i] = item
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

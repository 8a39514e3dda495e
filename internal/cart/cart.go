package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("cart item not found")
	ErrBadQty       = errors.New("quantity must be at least 1")
)

// Item is one entry in a shopping cart. ID is generated per add, not per
// product: the same product added twice with different options lives twice.
type Item struct {
	ID        string          `json:"id"`
	Product   catalog.Product `json:"product"`
	Qty       int             `json:"qty"`
	Addons    []catalog.Addon `json:"addons"`
	NeedSpoon bool            `json:"needSpoon"`
}

// Service keeps session carts in memory. Carts are short-lived single-shopper
// state; a mutex-guarded map is all the persistence they need.
type Service struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewService() *Service {
	return &Service{carts: make(map[string][]Item)}
}

// Create opens an empty cart and returns its id.
func (s *Service) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.carts[id] = nil
	s.mu.Unlock()
	return id
}

// Add appends a confirmed product selection. Addons are deduplicated by id,
// keeping the first occurrence.
func (s *Service) Add(cartID string, p catalog.Product, qty int, addons []catalog.Addon, needSpoon bool) (Item, error) {
	if qty < 1 {
		return Item{}, ErrBadQty
	}

	seen := make(map[string]bool, len(addons))
	deduped := make([]catalog.Addon, 0, len(addons))
	for _, a := range addons {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		deduped = append(deduped, a)
	}

	it := Item{
		ID:        uuid.NewString(),
		Product:   p,
		Qty:       qty,
		Addons:    deduped,
		NeedSpoon: needSpoon,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[cartID]
	if !ok {
		return Item{}, ErrCartNotFound
	}
	s.carts[cartID] = append(items, it)
	return it, nil
}

func (s *Service) Remove(cartID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	for i, it := range items {
		if it.ID == itemID {
			s.carts[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Clear empties the cart but keeps the session alive (post-checkout reuse).
func (s *Service) Clear(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cartID]; !ok {
		return ErrCartNotFound
	}
	s.carts[cartID] = nil
	return nil
}

// Items returns a copy of the cart contents in insertion order.
func (s *Service) Items(cartID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

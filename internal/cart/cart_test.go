package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
)

var (
	testProduct = catalog.Product{ID: 1, Title: "Açaí 300ml", Price: decimal.RequireFromString("12.00")}
	testAddon   = catalog.Addon{ID: "nutella", Title: "Nutella", Price: decimal.RequireFromString("4.00")}
)

func TestAddAndList(t *testing.T) {
	s := NewService()
	id := s.Create()

	it, err := s.Add(id, testProduct, 2, []catalog.Addon{testAddon}, true)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if it.ID == "" {
		t.Error("Add() returned item without id")
	}

	items, err := s.Items(id)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 || items[0].Qty != 2 || items[0].Product.ID != 1 {
		t.Errorf("Items() = %+v, want the added entry", items)
	}
}

func TestAddSameProductTwiceKeepsBothLines(t *testing.T) {
	s := NewService()
	id := s.Create()

	a, _ := s.Add(id, testProduct, 1, nil, true)
	b, _ := s.Add(id, testProduct, 1, []catalog.Addon{testAddon}, false)
	if a.ID == b.ID {
		t.Error("two adds share an item id")
	}

	items, _ := s.Items(id)
	if len(items) != 2 {
		t.Errorf("len(Items()) = %d, want 2 separate lines", len(items))
	}
}

func TestAddDeduplicatesAddons(t *testing.T) {
	s := NewService()
	id := s.Create()

	other := catalog.Addon{ID: "granola", Title: "Granola", Price: decimal.RequireFromString("2.00")}
	it, err := s.Add(id, testProduct, 1, []catalog.Addon{testAddon, other, testAddon}, true)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(it.Addons) != 2 {
		t.Fatalf("len(Addons) = %d, want 2 after dedupe", len(it.Addons))
	}
	if it.Addons[0].ID != "nutella" || it.Addons[1].ID != "granola" {
		t.Errorf("Addons = %+v, want first occurrences in order", it.Addons)
	}
}

func TestAddRejectsBadQty(t *testing.T) {
	s := NewService()
	id := s.Create()

	for _, qty := range []int{0, -1} {
		if _, err := s.Add(id, testProduct, qty, nil, true); !errors.Is(err, ErrBadQty) {
			t.Errorf("Add(qty=%d) error = %v, want ErrBadQty", qty, err)
		}
	}
}

func TestUnknownCart(t *testing.T) {
	s := NewService()

	if _, err := s.Add("nope", testProduct, 1, nil, true); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("Add() error = %v, want ErrCartNotFound", err)
	}
	if _, err := s.Items("nope"); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("Items() error = %v, want ErrCartNotFound", err)
	}
	if err := s.Clear("nope"); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("Clear() error = %v, want ErrCartNotFound", err)
	}
	if err := s.Remove("nope", "x"); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("Remove() error = %v, want ErrCartNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	s := NewService()
	id := s.Create()
	a, _ := s.Add(id, testProduct, 1, nil, true)
	b, _ := s.Add(id, testProduct, 1, nil, true)

	if err := s.Remove(id, a.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	items, _ := s.Items(id)
	if len(items) != 1 || items[0].ID != b.ID {
		t.Errorf("Items() = %+v, want only the second line", items)
	}

	if err := s.Remove(id, a.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second Remove() error = %v, want ErrItemNotFound", err)
	}
}

func TestClearKeepsCartAlive(t *testing.T) {
	s := NewService()
	id := s.Create()
	s.Add(id, testProduct, 1, nil, true)

	if err := s.Clear(id); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	items, err := s.Items(id)
	if err != nil {
		t.Fatalf("Items() after Clear error = %v, want the cart to survive", err)
	}
	if len(items) != 0 {
		t.Errorf("len(Items()) = %d after Clear, want 0", len(items))
	}

	// post-checkout reuse
	if _, err := s.Add(id, testProduct, 1, nil, true); err != nil {
		t.Errorf("Add() after Clear error = %v", err)
	}
}

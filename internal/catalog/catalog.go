package catalog

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTraditional Category = "traditional"
	CategorySpecial     Category = "special"
)

// Product is a menu entry. Owned by the catalog; read-only elsewhere.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    Category        `json:"category"`
}

// Addon is an extra the customer can pile onto a product. Immutable after load.
type Addon struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type ProductRepo interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

type MenuCache interface {
	GetProducts(ctx context.Context) ([]Product, bool, error)
	SetProducts(ctx context.Context, ps []Product) error
}

// Store serves the menu. Reads go cache → database → bundled fallback; a failed
// or empty database read never blocks rendering, it just degrades to the
// bundled list.
type Store struct {
	repo  ProductRepo
	cache MenuCache
	log   *slog.Logger
}

func NewStore(repo ProductRepo, cache MenuCache, log *slog.Logger) *Store {
	return &Store{repo: repo, cache: cache, log: log}
}

func (s *Store) Products(ctx context.Context) []Product {
	if s.cache != nil {
		if ps, ok, err := s.cache.GetProducts(ctx); err == nil && ok && len(ps) > 0 {
			return ps
		}
	}

	if s.repo != nil {
		ps, err := s.repo.ListProducts(ctx)
		if err != nil {
			s.log.Warn("catalog fetch failed, serving bundled menu", "err", err)
		} else if len(ps) > 0 {
			if s.cache != nil {
				if err := s.cache.SetProducts(ctx, ps); err != nil {
					s.log.Warn("menu cache write failed", "err", err)
				}
			}
			return ps
		}
	}

	return FallbackProducts()
}

func (s *Store) ProductByID(ctx context.Context, id int64) (Product, bool) {
	for _, p := range s.Products(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Addons returns the bundled addon list. Addons are shipped with the app, not
// stored remotely.
func (s *Store) Addons() []Addon {
	return AvailableAddons()
}

func (s *Store) AddonsByIDs(ids []string) []Addon {
	var out []Addon
	for _, id := range ids {
		for _, a := range AvailableAddons() {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
)

type PostgresProductRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepo(pool *pgxpool.Pool) *PostgresProductRepo {
	return &PostgresProductRepo{pool: pool}
}

func (r *PostgresProductRepo) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, COALESCE(description,''), price::text, COALESCE(image_url,''), COALESCE(category,'traditional')
FROM products
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var (
			p     catalog.Product
			price string
			cat   string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &price, &p.ImageURL, &cat); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("product %d price: %w", p.ID, err)
		}
		p.Category = catalog.Category(cat)
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ catalog.ProductRepo = (*PostgresProductRepo)(nil)

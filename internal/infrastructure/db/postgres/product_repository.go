package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// ProductRepository implements ports.ProductRepository: plain CRUD with no
// locking. Sale decrements live in SaleRepository.
type ProductRepository struct{ db *DB }

func NewProductRepository(db *DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, name, quantity, price, created_at, updated_at
FROM products ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT id, name, quantity, price, created_at, updated_at
FROM products WHERE id=$1`

	var p domain.Product
	err := r.db.Pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, quantity, price)
VALUES ($1,$2,$3)
RETURNING id, name, quantity, price, created_at, updated_at`

	var p domain.Product
	err := r.db.Pool.QueryRow(ctx, q, product.Name, product.Quantity, product.Price).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name=$2, quantity=$3, price=$4, updated_at=now()
WHERE id=$1
RETURNING id, name, quantity, price, created_at, updated_at`

	var p domain.Product
	err := r.db.Pool.QueryRow(ctx, q, product.ID, product.Name, product.Quantity, product.Price).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

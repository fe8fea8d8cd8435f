package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// SaleRepository implements ports.SaleRepository. RecordSale is the
// serialization point for concurrent sales: the product row is read FOR
// UPDATE, so two in-flight sales on the same product queue on the row lock
// and the second one always observes the first one's committed decrement.
type SaleRepository struct{ db *DB }

func NewSaleRepository(db *DB) *SaleRepository { return &SaleRepository{db: db} }

const (
	lockProductSQL = `SELECT id, name, quantity, price FROM products WHERE id=$1 FOR UPDATE`
	decrementSQL   = `UPDATE products SET quantity=$2, updated_at=now() WHERE id=$1`
	insertSaleSQL  = `INSERT INTO sales (product_id, quantity) VALUES ($1,$2) RETURNING id, sale_date`
)

// RecordSale atomically checks availability, decrements stock, and inserts
// the sale record. Either both writes commit or neither does; stock can never
// be observed negative, even transiently.
func (r *SaleRepository) RecordSale(ctx context.Context, productID int64, quantity int) (result *ports.SaleTxResult, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin sale tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = fmt.Errorf("commit sale tx: %w", e)
			result = nil
		}
	}()

	var p domain.Product
	row := tx.QueryRow(ctx, lockProductSQL, productID)
	if err = row.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = domain.ErrProductNotFound
		}
		return nil, err
	}

	if p.Quantity < quantity {
		err = &domain.InsufficientStockError{Available: p.Quantity}
		return nil, err
	}

	newQuantity := p.Quantity - quantity
	if _, err = tx.Exec(ctx, decrementSQL, productID, newQuantity); err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	sale := domain.Sale{
		ProductID:   productID,
		Quantity:    quantity,
		ProductName: p.Name,
		UnitPrice:   p.Price,
	}
	if err = tx.QueryRow(ctx, insertSaleSQL, productID, quantity).Scan(&sale.ID, &sale.SaleDate); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	return &ports.SaleTxResult{Sale: sale, RemainingStock: newQuantity}, nil
}

// ListSales returns committed sales joined with product name and price,
// newest first.
func (r *SaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	const q = `
SELECT s.id, s.product_id, s.quantity, s.sale_date, p.name, p.price
FROM sales s
JOIN products p ON s.product_id = p.id
ORDER BY s.sale_date DESC, s.id DESC`

	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.SaleDate, &s.ProductName, &s.UnitPrice); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

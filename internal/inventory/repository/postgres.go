package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradecove/catalog-service/internal/inventory/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByProduct(ctx context.Context, productID string) (*model.Stock, error) {
	var s model.Stock
	query := `SELECT * FROM stocks WHERE product_id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get stock")
	}
	return &s, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Stock) error {
	query := `
        UPDATE stocks
        SET unit_cost = :unit_cost,
            selling_price = :selling_price,
            quantity = :quantity,
            reorder_level = :reorder_level,
            reorder_quantity = :reorder_quantity,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return errors.Wrap(err, "update stock")
}

func (r *PGRepository) Decrement(ctx context.Context, productID string, qty int) (bool, error) {
	// Guarded in one statement so concurrent purchases cannot drive the
	// quantity negative.
	query := `
        UPDATE stocks
        SET quantity = quantity - $1, updated_at = NOW()
        WHERE product_id = $2 AND quantity >= $1
    `
	res, err := r.DB.ExecContext(ctx, query, qty, productID)
	if err != nil {
		return false, errors.Wrap(err, "decrement stock")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) FindLowStock(ctx context.Context, filters *dto.LowStockFilters) ([]model.Stock, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM stocks WHERE quantity <= reorder_level`
	if err := r.DB.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, errors.Wrap(err, "count low stock")
	}

	query := `SELECT * FROM stocks WHERE quantity <= reorder_level ORDER BY quantity ASC`
	args := []interface{}{}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	stocks := []model.Stock{}
	if err := r.DB.SelectContext(ctx, &stocks, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "list low stock")
	}
	return stocks, total, nil
}

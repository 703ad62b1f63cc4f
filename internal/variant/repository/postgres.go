package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradecove/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, v *model.Variant) error {
	query := `
        INSERT INTO product_variants (
            id, product_id, color, size, unit_cost, selling_price,
            quantity, sku, is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :color, :size, :unit_cost, :selling_price,
            :quantity, :sku, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "insert variant")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Variant, error) {
	var v model.Variant
	query := `SELECT * FROM product_variants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find variant")
	}
	return &v, nil
}

func (r *PGRepository) FindByProduct(ctx context.Context, productID string) ([]model.Variant, error) {
	variants := []model.Variant{}
	query := `SELECT * FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC`
	err := r.DB.SelectContext(ctx, &variants, query, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list variants")
	}
	return variants, nil
}

func (r *PGRepository) Update(ctx context.Context, v *model.Variant) error {
	query := `
        UPDATE product_variants
        SET quantity = :quantity,
            unit_cost = :unit_cost,
            selling_price = :selling_price,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, v)
	return errors.Wrap(err, "update variant")
}

func (r *PGRepository) ExistsByColorSize(ctx context.Context, productID string, color *string, size string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM product_variants WHERE product_id = $1 AND size = $2`
	args := []interface{}{productID, size}

	// NULL colors never compare equal in SQL, so the tuple check needs an
	// explicit IS NULL branch.
	if color == nil {
		query += ` AND color IS NULL`
	} else {
		query += ` AND color = $3`
		args = append(args, *color)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "variant uniqueness check")
	}
	return count > 0, nil
}

func (r *PGRepository) Decrement(ctx context.Context, id string, qty int) (bool, error) {
	// Single guarded statement: two concurrent decrements can never drive
	// quantity negative because the predicate re-checks under the row lock.
	query := `
        UPDATE product_variants
        SET quantity = quantity - $1, updated_at = NOW()
        WHERE id = $2 AND quantity >= $1
    `
	res, err := r.DB.ExecContext(ctx, query, qty, id)
	if err != nil {
		return false, errors.Wrap(err, "decrement variant")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) SizesInUse(ctx context.Context, categoryTypeID string, sizes []string) ([]string, error) {
	if len(sizes) == 0 {
		return nil, nil
	}

	// Sizes are accepted case-insensitively, so the usage check has to
	// compare the same way or a variant stored as "m" would not block
	// removing "M".
	uppered := make([]string, len(sizes))
	for i, s := range sizes {
		uppered[i] = strings.ToUpper(s)
	}

	query, args, err := sqlx.In(`
        SELECT DISTINCT pv.size
        FROM product_variants pv
        JOIN products p ON p.id = pv.product_id
        JOIN categories c ON c.id = p.category_id
        WHERE c.category_type_id = ? AND UPPER(pv.size) IN (?)`, categoryTypeID, uppered)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var used []string
	if err := r.DB.SelectContext(ctx, &used, query, args...); err != nil {
		return nil, errors.Wrap(err, "sizes in use")
	}
	return used, nil
}

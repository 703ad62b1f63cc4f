package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradecove/catalog-service/internal/model"
	"github.com/tradecove/catalog-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertProduct = `
    INSERT INTO products (
        id, name, description, product_type, status, category_id, created_at, updated_at
    )
    VALUES (
        :id, :name, :description, :product_type, :status, :category_id, :created_at, :updated_at
    )
`

const insertVariant = `
    INSERT INTO product_variants (
        id, product_id, color, size, unit_cost, selling_price,
        quantity, sku, is_active, created_at, updated_at
    )
    VALUES (
        :id, :product_id, :color, :size, :unit_cost, :selling_price,
        :quantity, :sku, :is_active, :created_at, :updated_at
    )
`

const insertStock = `
    INSERT INTO stocks (
        id, product_id, unit_cost, selling_price, quantity,
        reorder_level, reorder_quantity, created_at, updated_at
    )
    VALUES (
        :id, :product_id, :unit_cost, :selling_price, :quantity,
        :reorder_level, :reorder_quantity, :created_at, :updated_at
    )
`

func (r *PGRepository) CreateWithInventory(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin create product")
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertProduct, p); err != nil {
		return errors.Wrap(err, "insert product")
	}

	for i := range p.Variants {
		if _, err := tx.NamedExecContext(ctx, insertVariant, &p.Variants[i]); err != nil {
			return errors.Wrap(err, "insert product variant")
		}
	}

	if p.Stock != nil {
		if _, err := tx.NamedExecContext(ctx, insertStock, p.Stock); err != nil {
			return errors.Wrap(err, "insert stock record")
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}

	if err := r.loadInventory(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) loadInventory(ctx context.Context, p *model.Product) error {
	variants := []model.Variant{}
	err := r.DB.SelectContext(ctx, &variants,
		`SELECT * FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC`, p.ID)
	if err != nil {
		return errors.Wrap(err, "load variants")
	}
	p.Variants = variants

	var stock model.Stock
	err = r.DB.GetContext(ctx, &stock, `SELECT * FROM stocks WHERE product_id = $1 LIMIT 1`, p.ID)
	switch {
	case err == nil:
		p.Stock = &stock
	case errors.Is(err, sql.ErrNoRows):
		p.Stock = nil
	default:
		return errors.Wrap(err, "load stock record")
	}

	images := []string{}
	err = r.DB.SelectContext(ctx, &images,
		`SELECT image_url FROM product_images WHERE product_id = $1 ORDER BY position ASC`, p.ID)
	if err != nil {
		return errors.Wrap(err, "load product images")
	}
	p.ImageURLs = images

	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan product count")
		}
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	for i := range products {
		if err := r.loadInventory(ctx, &products[i]); err != nil {
			return nil, 0, err
		}
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            status = :status,
            category_id = :category_id,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update product")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin delete product")
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM product_variants WHERE product_id = $1`,
		`DELETE FROM stocks WHERE product_id = $1`,
		`DELETE FROM product_images WHERE product_id = $1`,
		`DELETE FROM products WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return errors.Wrap(err, "cascade delete product")
		}
	}

	return tx.Commit()
}

func (r *PGRepository) AddImages(ctx context.Context, productID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	var position int
	err := r.DB.GetContext(ctx, &position,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return errors.Wrap(err, "next image position")
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin add images")
	}
	defer tx.Rollback()

	for i, url := range urls {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, image_url, position) VALUES ($1, $2, $3)`,
			productID, url, position+i)
		if err != nil {
			return errors.Wrap(err, "insert product image")
		}
	}

	return tx.Commit()
}

func (r *PGRepository) ExistsByCategory(ctx context.Context, categoryID string) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return false, errors.Wrap(err, "products by category check")
	}
	return count > 0, nil
}

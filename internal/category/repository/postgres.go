package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tradecove/catalog-service/internal/category/dto"
	"github.com/tradecove/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (
            id, name, description, image_url, category_type_id, status,
            created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :image_url, :category_type_id, :status,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "insert category")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category")
	}

	if c.CategoryTypeID != nil {
		ct, err := r.FindTypeByID(ctx, *c.CategoryTypeID)
		if err != nil {
			return nil, err
		}
		c.CategoryType = ct
	}
	return &c, nil
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE LOWER(name) = LOWER($1) LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category by name")
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{"1=1"}
	args := map[string]interface{}{}

	if filters.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = filters.Status
	}
	if filters.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + filters.SearchQuery + "%"
	}

	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT count(*) FROM categories WHERE %s`, where)
	var total int
	stmt, err := r.DB.PrepareNamedContext(ctx, countQuery)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare count categories")
	}
	defer stmt.Close()
	if err := stmt.GetContext(ctx, &total, args); err != nil {
		return nil, 0, errors.Wrap(err, "count categories")
	}

	query := fmt.Sprintf(`SELECT * FROM categories WHERE %s ORDER BY name ASC`, where)
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filters.PageSize
		args["offset"] = (page - 1) * filters.PageSize
	}

	listStmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare list categories")
	}
	defer listStmt.Close()

	categories := []model.Category{}
	if err := listStmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, errors.Wrap(err, "list categories")
	}
	return categories, total, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            description = :description,
            image_url = :image_url,
            category_type_id = :category_type_id,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "update category")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return errors.Wrap(err, "delete category")
}

func (r *PGRepository) CreateType(ctx context.Context, ct *model.CategoryType) error {
	query := `
        INSERT INTO category_types (id, name, size_options, status, created_at, updated_at)
        VALUES (:id, :name, :size_options, :status, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, ct)
	return errors.Wrap(err, "insert category type")
}

func (r *PGRepository) FindTypeByID(ctx context.Context, id string) (*model.CategoryType, error) {
	var ct model.CategoryType
	query := `SELECT * FROM category_types WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &ct, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category type")
	}
	return &ct, nil
}

func (r *PGRepository) FindTypeByName(ctx context.Context, name string) (*model.CategoryType, error) {
	var ct model.CategoryType
	query := `SELECT * FROM category_types WHERE LOWER(name) = LOWER($1) LIMIT 1`
	err := r.DB.GetContext(ctx, &ct, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category type by name")
	}
	return &ct, nil
}

func (r *PGRepository) FindAllTypes(ctx context.Context) ([]model.CategoryType, error) {
	types := []model.CategoryType{}
	query := `SELECT * FROM category_types ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &types, query); err != nil {
		return nil, errors.Wrap(err, "list category types")
	}
	return types, nil
}

func (r *PGRepository) FindTypeByCategory(ctx context.Context, categoryID string) (*model.CategoryType, error) {
	var ct model.CategoryType
	query := `
        SELECT ct.*
        FROM category_types ct
        JOIN categories c ON c.category_type_id = ct.id
        WHERE c.id = $1
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &ct, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find type by category")
	}
	return &ct, nil
}

func (r *PGRepository) UpdateType(ctx context.Context, ct *model.CategoryType) error {
	query := `
        UPDATE category_types
        SET name = :name,
            size_options = :size_options,
            status = :status,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, ct)
	return errors.Wrap(err, "update category type")
}

func (r *PGRepository) DeleteType(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM category_types WHERE id = $1`, id)
	return errors.Wrap(err, "delete category type")
}

func (r *PGRepository) ExistsByType(ctx context.Context, categoryTypeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE category_type_id = $1`
	if err := r.DB.GetContext(ctx, &count, query, categoryTypeID); err != nil {
		return false, errors.Wrap(err, "categories by type")
	}
	return count > 0, nil
}

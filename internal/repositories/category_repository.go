package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/google/uuid"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, COALESCE(description, ''), created_at FROM categories ORDER BY name ASC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	categories := []models.Category{}

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, backendError(err, "")
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, COALESCE(description, ''), created_at FROM categories WHERE id = $1`

	c := &models.Category{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, backendError(err, "Category not found")
	}

	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description).Scan(&category.ID, &category.CreatedAt)

	return backendError(err, "")
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3 RETURNING created_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description, category.ID).Scan(&category.CreatedAt)

	return backendError(err, "Category not found")
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)

	return backendError(err, "")
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	List(ctx context.Context, params models.ProductListParams) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// Create inserts the product and, when quantity is set, its inventory row.
	Create(ctx context.Context, product *models.Product, quantity *int) error
	// Update rewrites the product and, when quantity is set, updates or inserts its inventory row.
	Update(ctx context.Context, product *models.Product, quantity *int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const (
	productColumns = `p.id, p.name, COALESCE(p.description, ''), p.price, p.category_id,
	       COALESCE(p.image_url, ''), p.is_active, p.created_at,
	       c.id, c.name, i.quantity`
	productFrom = `products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN inventory i ON i.product_id = p.id`
	productSelect = `SELECT ` + productColumns + ` FROM ` + productFrom
)

var productSort = sortColumns{
	columns: map[string]string{
		"name":       "p.name",
		"price":      "p.price",
		"created_at": "p.created_at",
	},
	defaultCol: "p.created_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p            models.Product
		categoryID   uuid.NullUUID
		joinedCatID  uuid.NullUUID
		categoryName sql.NullString
		quantity     sql.NullInt64
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &categoryID,
		&p.ImageURL, &p.IsActive, &p.CreatedAt,
		&joinedCatID, &categoryName, &quantity)
	if err != nil {
		return p, err
	}

	if categoryID.Valid {
		p.CategoryID = &categoryID.UUID
	}

	if joinedCatID.Valid {
		p.Category = &models.CategoryRef{ID: joinedCatID.UUID, Name: categoryName.String}
	}

	if quantity.Valid {
		p.Inventory = &models.InventoryRef{Quantity: int(quantity.Int64)}
	}

	return p, nil
}

func (r *productRepository) List(ctx context.Context, params models.ProductListParams) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := psql.Select(productColumns).From(productFrom).
		OrderBy(productSort.orderBy(params.SortBy, params.SortAsc))

	if params.CategoryID != nil {
		q = q.Where(sq.Eq{"p.category_id": *params.CategoryID})
	}

	if params.IsActive != nil {
		q = q.Where(sq.Eq{"p.is_active": *params.IsActive})
	}

	if params.Search != "" {
		q = q.Where(ilikeAny(params.Search, "p.name", "p.description"))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, backendError(err, "")
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	p, err := scanProduct(r.DB.QueryRowContext(dbCtx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, backendError(err, "Product not found")
	}

	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product, quantity *int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (name, description, price, category_id, image_url, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price,
		product.CategoryID, product.ImageURL, product.IsActive).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return backendError(err, "")
	}

	if quantity == nil {
		return nil
	}

	_, err = r.DB.ExecContext(dbCtx, `INSERT INTO inventory (product_id, quantity) VALUES ($1, $2)`, product.ID, *quantity)
	if err != nil {
		return backendError(err, "")
	}

	product.Inventory = &models.InventoryRef{Quantity: *quantity}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product, quantity *int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products
			  SET name = $1, description = $2, price = $3, category_id = $4, image_url = $5, is_active = $6
			  WHERE id = $7
			  RETURNING created_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price,
		product.CategoryID, product.ImageURL, product.IsActive, product.ID).Scan(&product.CreatedAt)
	if err != nil {
		return backendError(err, "Product not found")
	}

	if quantity == nil {
		return nil
	}

	if err := upsertInventory(dbCtx, r.DB, product.ID, *quantity); err != nil {
		return backendError(err, "")
	}

	product.Inventory = &models.InventoryRef{Quantity: *quantity}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)

	return backendError(err, "")
}

func upsertInventory(ctx context.Context, db *sql.DB, productID uuid.UUID, quantity int) error {
	query := `INSERT INTO inventory (product_id, quantity)
			  VALUES ($1, $2)
			  ON CONFLICT (product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`

	_, err := db.ExecContext(ctx, query, productID, quantity)

	return err
}

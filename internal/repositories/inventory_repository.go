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

type InventoryRepository interface {
	List(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error)
	// SetQuantity overwrites the stock level without touching the restock date.
	SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error
	// Restock sets the stock level and stamps last_restock_date, creating the row if needed.
	Restock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error)
	LowStock(ctx context.Context, threshold int) ([]models.InventoryRecord, error)
}

type inventoryRepository struct {
	DB *sql.DB
}

func NewInventoryRepo(db *sql.DB) InventoryRepository {
	return &inventoryRepository{DB: db}
}

const (
	inventoryColumns = `i.id, i.product_id, i.quantity, i.last_restock_date, i.updated_at,
	       p.name, COALESCE(p.image_url, ''), c.id, c.name`
	inventoryFrom = `inventory i
	JOIN products p ON p.id = i.product_id
	LEFT JOIN categories c ON c.id = p.category_id`
	inventorySelect = `SELECT ` + inventoryColumns + ` FROM ` + inventoryFrom
)

var inventorySort = sortColumns{
	columns: map[string]string{
		"quantity":          "i.quantity",
		"updated_at":        "i.updated_at",
		"last_restock_date": "i.last_restock_date",
	},
	defaultCol: "i.updated_at",
}

func scanInventory(row rowScanner) (models.InventoryRecord, error) {
	var (
		rec          models.InventoryRecord
		restock      sql.NullTime
		product      models.InventoryProduct
		categoryID   uuid.NullUUID
		categoryName sql.NullString
	)

	err := row.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &restock, &rec.UpdatedAt,
		&product.Name, &product.ImageURL, &categoryID, &categoryName)
	if err != nil {
		return rec, err
	}

	if restock.Valid {
		rec.LastRestockDate = &restock.Time
	}

	if categoryID.Valid {
		product.Category = &models.CategoryRef{ID: categoryID.UUID, Name: categoryName.String}
	}

	rec.Product = &product

	return rec, nil
}

func (r *inventoryRepository) List(ctx context.Context, params models.InventoryListParams) ([]models.InventoryRecord, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := psql.Select(inventoryColumns).From(inventoryFrom).
		OrderBy(inventorySort.orderBy(params.SortBy, params.SortAsc))

	if params.ProductID != nil {
		q = q.Where(sq.Eq{"i.product_id": *params.ProductID})
	}

	if params.CategoryID != nil {
		q = q.Where(sq.Eq{"p.category_id": *params.CategoryID})
	}

	if params.LowStock != nil {
		q = q.Where(sq.LtOrEq{"i.quantity": *params.LowStock})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory query: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	records := []models.InventoryRecord{}

	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, backendError(err, "")
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return records, nil
}

func (r *inventoryRepository) GetByProductID(ctx context.Context, productID uuid.UUID) (*models.InventoryRecord, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rec, err := scanInventory(r.DB.QueryRowContext(dbCtx, inventorySelect+` WHERE i.product_id = $1`, productID))
	if err != nil {
		return nil, backendError(err, "Inventory record not found")
	}

	return &rec, nil
}

func (r *inventoryRepository) SetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE inventory SET quantity = $1, updated_at = NOW() WHERE product_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, productID)
	if err != nil {
		return backendError(err, "")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return backendError(err, "")
	}

	if affected == 0 {
		return backendError(sql.ErrNoRows, "Inventory record not found")
	}

	return nil
}

func (r *inventoryRepository) Restock(ctx context.Context, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO inventory (product_id, quantity, last_restock_date)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (product_id) DO UPDATE
			  SET quantity = EXCLUDED.quantity, last_restock_date = NOW(), updated_at = NOW()
			  RETURNING id, product_id, quantity, last_restock_date, updated_at`

	var (
		rec     models.InventoryRecord
		restock sql.NullTime
	)

	err := r.DB.QueryRowContext(dbCtx, query, productID, quantity).
		Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &restock, &rec.UpdatedAt)
	if err != nil {
		return nil, backendError(err, "")
	}

	if restock.Valid {
		rec.LastRestockDate = &restock.Time
	}

	return &rec, nil
}

func (r *inventoryRepository) LowStock(ctx context.Context, threshold int) ([]models.InventoryRecord, error) {
	asc := true

	return r.List(ctx, models.InventoryListParams{LowStock: &threshold, SortBy: "quantity", SortAsc: &asc})
}

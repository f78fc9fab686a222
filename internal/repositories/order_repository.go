package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/aaravmahajanofficial/shopdesk/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	// CreateOrderItems inserts all line items of an order in one statement.
	CreateOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params models.OrderListParams) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const (
	orderColumns = `o.id, o.user_id, o.status, o.total_amount, COALESCE(o.shipping_address, ''),
	       COALESCE(o.contact_phone, ''), o.created_at`
	orderSelect = `SELECT ` + orderColumns + ` FROM orders o`
)

var orderSort = sortColumns{
	columns: map[string]string{
		"created_at":   "o.created_at",
		"total_amount": "o.total_amount",
		"status":       "o.status",
	},
	defaultCol: "o.created_at",
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order

	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.ShippingAddress, &o.ContactPhone, &o.CreatedAt)

	return o, err
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO orders (user_id, status, total_amount, shipping_address, contact_phone)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, order.UserID, order.Status, order.TotalAmount,
		order.ShippingAddress, order.ContactPhone).Scan(&order.ID, &order.CreatedAt)

	return backendError(err, "")
}

func (r *orderRepository) CreateOrderItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*4)

	for i, item := range items {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, orderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ` +
		strings.Join(values, ", ") + ` RETURNING id`

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return backendError(err, "")
	}
	defer rows.Close()

	// RETURNING yields rows in VALUES order for a single-statement insert
	i := 0
	for rows.Next() {
		if i >= len(items) {
			break
		}

		if err := rows.Scan(&items[i].ID); err != nil {
			return backendError(err, "")
		}

		items[i].OrderID = orderID
		i++
	}

	return backendError(rows.Err(), "")
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, backendError(err, "Order not found")
	}

	items, err := r.loadItems(dbCtx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	order.Items = items[order.ID]

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, params models.OrderListParams) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	q := psql.Select(orderColumns).From("orders o").
		OrderBy(orderSort.orderBy(params.SortBy, params.SortAsc))

	if params.UserID != nil {
		q = q.Where(sq.Eq{"o.user_id": *params.UserID})
	}

	if params.Status != "" {
		q = q.Where(sq.Eq{"o.status": params.Status})
	}

	if params.StartDate != nil {
		q = q.Where(sq.GtOrEq{"o.created_at": *params.StartDate})
	}

	if params.EndDate != nil {
		q = q.Where(sq.LtOrEq{"o.created_at": *params.EndDate})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []uuid.UUID{}

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, backendError(err, "")
		}

		orders = append(orders, o)
		ids = append(ids, o.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(dbCtx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {
	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		       p.name, COALESCE(p.image_url, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.id`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, backendError(err, "")
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]models.OrderItem, len(orderIDs))

	for rows.Next() {
		var (
			item     models.OrderItem
			name     sql.NullString
			imageURL string
		)

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &name, &imageURL); err != nil {
			return nil, backendError(err, "")
		}

		if name.Valid {
			item.Product = &models.ProductRef{Name: name.String, ImageURL: imageURL}
		}

		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, backendError(err, "")
	}

	return items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders o SET status = $1 WHERE o.id = $2
			  RETURNING o.id, o.user_id, o.status, o.total_amount, COALESCE(o.shipping_address, ''),
			            COALESCE(o.contact_phone, ''), o.created_at`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, status, id))
	if err != nil {
		return nil, backendError(err, "Order not found")
	}

	return &order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return backendError(err, "")
	}

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM orders WHERE id = $1`, id)

	return backendError(err, "")
}

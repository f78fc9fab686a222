package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/shopdesk/internal/api/middleware"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/errors"
	"github.com/aaravmahajanofficial/shopdesk/internal/metrics"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	"github.com/aaravmahajanofficial/shopdesk/pkg/sendgrid"
	"github.com/google/uuid"
)

type OrderService interface {
	// PlaceOrder turns a cart snapshot into an order, its line items and the matching stock decrements.
	PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params models.OrderListParams) ([]models.Order, error)
	ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orders    repository.OrderRepository
	inventory repository.InventoryRepository
	carts     cart.Repository
	mailer    sendgrid.EmailService
}

// NewOrderService wires the workflow. mailer may be nil, in which case no
// confirmation email is sent.
func NewOrderService(orders repository.OrderRepository, inventory repository.InventoryRepository, carts cart.Repository, mailer sendgrid.EmailService) OrderService {
	return &orderService{orders: orders, inventory: inventory, carts: carts, mailer: mailer}
}

// PlaceOrder keeps running when the caller goes away: a client that navigates
// away only loses the response, and a failed line-item insert still deletes
// its header. Each backend call stays bounded by its own timeout.
func (s *orderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {
	ctx = context.WithoutCancel(ctx)
	logger := middleware.LoggerFromContext(ctx).With(slog.String("user_id", req.UserID.String()))

	if len(req.Items) == 0 {
		metrics.OrdersPlaced.WithLabelValues("empty_cart").Inc()
		return nil, errors.ValidationError("Cart is empty")
	}

	order := &models.Order{
		UserID:          req.UserID,
		Status:          models.OrderStatusPending,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		ContactPhone:    req.ContactPhone,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		metrics.OrdersPlaced.WithLabelValues("header_failed").Inc()
		logger.Error("Failed to create order header", slog.Any("error", err))

		return nil, err
	}

	logger = logger.With(slog.String("order_id", order.ID.String()))

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Product:   &models.ProductRef{Name: item.Name, ImageURL: item.ImageURL},
		}
	}

	if err := s.orders.CreateOrderItems(ctx, order.ID, items); err != nil {
		metrics.OrdersPlaced.WithLabelValues("compensated").Inc()
		logger.Error("Failed to create order items, deleting order header", slog.Any("error", err))

		failure := errors.PartialFailure("Failed to create order items").WithError(err)

		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			logger.Error("Failed to delete order header after item failure", slog.Any("error", delErr))
			failure = failure.WithError(stdErrors.Join(err, delErr))
		}

		return nil, failure
	}

	order.Items = items

	for _, item := range items {
		s.decrementStock(ctx, logger, item)
	}

	if err := s.carts.Clear(ctx, req.UserID.String()); err != nil {
		logger.Warn("Failed to clear cart after order", slog.Any("error", err))
	}

	s.sendConfirmation(ctx, logger, req.Email, order)

	metrics.OrdersPlaced.WithLabelValues("placed").Inc()
	logger.Info("Order placed", slog.Int("items", len(items)), slog.String("total", order.TotalAmount.StringFixed(2)))

	return order, nil
}

// decrementStock lowers the stock of one line item. Failures are logged and
// counted but never fail the order, and stock may go negative.
func (s *orderService) decrementStock(ctx context.Context, logger *slog.Logger, item models.OrderItem) {
	record, err := s.inventory.GetByProductID(ctx, item.ProductID)
	if err == nil {
		err = s.inventory.SetQuantity(ctx, item.ProductID, record.Quantity-item.Quantity)
	}

	if err != nil {
		metrics.InventoryAdjustmentFailures.Inc()

		tolerated := errors.ToleratedFailure("Failed to update inventory").WithError(err)
		logger.Error(tolerated.Message,
			slog.String("code", tolerated.Code),
			slog.String("product_id", item.ProductID.String()),
			slog.Int("quantity", item.Quantity),
			slog.Any("error", err))
	}
}

func (s *orderService) sendConfirmation(ctx context.Context, logger *slog.Logger, to string, order *models.Order) {
	if s.mailer == nil || to == "" {
		return
	}

	if err := s.mailer.Send(ctx, confirmationEmail(to, order)); err != nil {
		logger.Warn("Failed to send order confirmation", slog.Any("error", err))
	}
}

func confirmationEmail(to string, order *models.Order) *models.EmailNotificationRequest {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", order.ID)
	for _, item := range order.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "%d x %s @ %s\n", item.Quantity, name, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\nShipping to: %s\n", order.TotalAmount.StringFixed(2), order.ShippingAddress)

	return &models.EmailNotificationRequest{
		To:      to,
		Subject: "Order received",
		Content: b.String(),
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, params models.OrderListParams) ([]models.Order, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, errors.ValidationError("Unknown order status: " + string(params.Status))
	}

	return s.orders.List(ctx, params)
}

func (s *orderService) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders.List(ctx, models.OrderListParams{UserID: &userID})
}

// UpdateOrderStatus accepts any known status; transitions are not checked.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, errors.ValidationError("Unknown order status: " + string(status))
	}

	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.orders.Delete(ctx, id)
}

// AllowedActions lists the status changes offered for an order in the given status.
func AllowedActions(status models.OrderStatus) []models.OrderAction {
	switch status {
	case models.OrderStatusPending:
		return []models.OrderAction{
			{Label: "Start processing", Status: models.OrderStatusProcessing},
			{Label: "Cancel order", Status: models.OrderStatusCancelled},
		}
	case models.OrderStatusProcessing:
		return []models.OrderAction{
			{Label: "Mark completed", Status: models.OrderStatusCompleted},
			{Label: "Cancel order", Status: models.OrderStatusCancelled},
		}
	}

	return []models.OrderAction{}
}

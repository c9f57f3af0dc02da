package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// PlaceOrderResult tells the caller where to go after a successful checkout.
type PlaceOrderResult struct {
	OrderID  uuid.UUID `json:"order_id"`
	Total    string    `json:"total"`
	Redirect string    `json:"redirect"`
}

// OrderView is an order with its items snapshot decoded for display.
type OrderView struct {
	ID              uuid.UUID                  `json:"id"`
	Total           string                     `json:"total"`
	Status          string                     `json:"status"`
	ShippingName    string                     `json:"shipping_name"`
	ShippingAddress string                     `json:"shipping_address"`
	Items           []models.OrderItemSnapshot `json:"items"`
	CreatedAt       time.Time                  `json:"created_at"`
}

type OrderService interface {
	PlaceOrder(ctx context.Context, identity, userID, shippingName, shippingAddress string) (*PlaceOrderResult, *ServiceError)
	GetUserOrders(ctx context.Context, userID string) ([]OrderView, *ServiceError)
}

type orderService struct {
	orders repository.OrderRepository
	carts  CartService
	log    *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, carts CartService, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{
		orders: orders,
		carts:  carts,
		log:    log,
	}
}

// PlaceOrder converts the identity's detailed cart into a persisted order and
// clears the cart. The order row is inserted first and the cart cleared only
// after the insert succeeds, so a failed write never loses cart contents.
func (s *orderService) PlaceOrder(ctx context.Context, identity, userID, shippingName, shippingAddress string) (*PlaceOrderResult, *ServiceError) {
	if userID == "" {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: "You must be logged in to place an order."}
	}

	cart, svcErr := s.carts.DetailedCart(ctx, identity)
	if svcErr != nil {
		return nil, svcErr
	}
	if len(cart) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeEmptyCart, Message: "Your cart is empty."}
	}

	shippingName = strings.TrimSpace(shippingName)
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingName == "" || shippingAddress == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeMissingShippingInfo, Message: "Please fill in shipping details."}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "Invalid user ID format."}
	}

	var total float64
	snapshot := make([]models.OrderItemSnapshot, 0, len(cart))
	for _, item := range cart {
		price, _ := strconv.ParseFloat(item.Price, 64)
		total += float64(item.Quantity) * price
		snapshot = append(snapshot, models.OrderItemSnapshot{
			Slug:     item.Slug,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}

	itemsJSON, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Error("Failed to serialize order items", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to place order."}
	}

	order := &models.Order{
		UserID:          userUUID,
		Total:           strconv.FormatFloat(total, 'f', 2, 64),
		Items:           string(itemsJSON),
		ShippingName:    shippingName,
		ShippingAddress: shippingAddress,
		Status:          models.OrderStatusConfirmed,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Leave the cart intact: a retried placement must not lose items.
		s.log.Error("Failed to insert order", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to place order."}
	}

	if svcErr := s.carts.Clear(ctx, identity); svcErr != nil {
		// The order exists; a stale cart is recoverable and must not fail
		// the checkout.
		s.log.Warn("Order placed but cart clear failed",
			zap.String("order_id", order.ID.String()),
			zap.String("identity", identity))
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.String("total", order.Total))

	return &PlaceOrderResult{
		OrderID:  order.ID,
		Total:    order.Total,
		Redirect: "/order-history",
	}, nil
}

// GetUserOrders returns the user's order history, newest first.
func (s *orderService) GetUserOrders(ctx context.Context, userID string) ([]OrderView, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Code: CodeInvalidInput, Message: "Invalid user ID format."}
	}

	orders, err := s.orders.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch orders."}
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		var items []models.OrderItemSnapshot
		if err := json.Unmarshal([]byte(order.Items), &items); err != nil {
			s.log.Warn("Corrupt items snapshot", zap.String("order_id", order.ID.String()), zap.Error(err))
			items = []models.OrderItemSnapshot{}
		}
		views = append(views, OrderView{
			ID:              order.ID,
			Total:           order.Total,
			Status:          order.Status,
			ShippingName:    order.ShippingName,
			ShippingAddress: order.ShippingAddress,
			Items:           items,
			CreatedAt:       order.CreatedAt,
		})
	}
	return views, nil
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/common"
	"storefront/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order placement and retrieval. Orders are always
// scoped to the authenticated user; superusers may read any order.
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrderRequest represents the order creation payload.
type CreateOrderRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// CreateOrder places a new order for the authenticated user.
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.ProductIDs) == 0 {
		return common.SendValidationError(c, "product_ids", "At least one product is required")
	}

	order, err := h.orderService.Create(ctx, userID, req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrderUser):
			return common.SendUnauthorizedError(c)
		case errors.Is(err, services.ErrProductUnavailable):
			return common.SendClientError(c, err.Error())
		default:
			c.Logger().Errorf("Failed to create order for %s: %v", userID, err)
			return common.SendServerError(c, "Failed to create order")
		}
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder returns an order by id. Non-superusers only see their own orders;
// a foreign order answers 404 rather than 403 to avoid leaking existence.
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid order ID format")
	}

	order, err := h.orderService.GetByID(ctx, orderID)
	if err != nil {
		c.Logger().Errorf("Failed to get order %s: %v", orderID, err)
		return common.SendServerError(c, "Failed to get order")
	}
	if order == nil {
		return common.SendNotFoundError(c, "Order")
	}

	if !common.GetIsSuperuserFromContext(ctx) {
		callerID, ok := common.GetUserIDFromContext(ctx)
		if !ok || callerID != order.UserID {
			return common.SendNotFoundError(c, "Order")
		}
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders returns a page of the authenticated user's orders.
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	orders, err := h.orderService.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		c.Logger().Errorf("Failed to list orders for %s: %v", userID, err)
		return common.SendServerError(c, "Failed to list orders")
	}

	return c.JSON(http.StatusOK, orders)
}

package handler

import (
	"net/http"

	"orderhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /ordersのHTTP
type OrderHandler struct {
	orders *usecase.OrderUsecase
	status *usecase.OrderStatusUsecase
}

// DI
func NewOrderHandler(orders *usecase.OrderUsecase, status *usecase.OrderStatusUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, status: status}
}

type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID string                   `json:"userId"`
	Items  []CreateOrderItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/orders", auth...)

	g.POST("", h.create)
	g.GET("", h.findOne)
	g.GET("/user/:userId", h.listForUser)
	g.PATCH("/:orderId/status", h.updateStatus)
	g.GET("/:orderId/history", h.history)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userID, ok := parseUUID(req.UserID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		productID, ok := parseUUID(it.ProductID)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
		}
		items = append(items, usecase.OrderLineInput{ProductID: productID, Quantity: it.Quantity})
	}

	out, err := h.orders.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID: userID,
		Items:  items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listForUser(c echo.Context) error {
	userID, ok := parseUUID(c.Param("userId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	out, err := h.orders.FindOrdersForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /orders?orderId=...&userId=...（userIdがあれば持ち主チェック）
func (h *OrderHandler) findOne(c echo.Context) error {
	orderID, ok := parseUUID(c.QueryParam("orderId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid orderId"})
	}

	requester := ""
	if v := c.QueryParam("userId"); v != "" {
		requester, ok = parseUUID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
		}
	}

	out, err := h.orders.FindOrderByID(c.Request().Context(), orderID, requester)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, ok := parseUUID(c.Param("orderId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid orderId"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.status.UpdateStatus(c.Request().Context(), actorID, orderID, usecase.UpdateOrderStatusInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) history(c echo.Context) error {
	orderID, ok := parseUUID(c.Param("orderId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid orderId"})
	}

	out, err := h.status.History(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

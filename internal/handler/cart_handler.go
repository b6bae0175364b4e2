package handler

import (
	"net/http"

	"orderhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// POST/PATCH /cart/items
type CartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// /cart を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/cart", auth...)

	g.POST("/items", h.addItem)
	g.PATCH("/items", h.setItemQuantity)
	g.DELETE("/items", h.removeItem)
	g.GET("/:userId", h.getCart)
	g.DELETE("/:userId", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := parseUUID(c.Param("userId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	out, err := h.uc.GetOrCreateCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	userID, in, ok := bindCartItem(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) setItemQuantity(c echo.Context) error {
	userID, in, ok := bindCartItem(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SetItemQuantity(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	userID, ok := parseUUID(c.QueryParam("userId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}
	productID, ok := parseUUID(c.QueryParam("productId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, ok := parseUUID(c.Param("userId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid userId"})
	}

	out, err := h.uc.Clear(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// quantity は必須（0以下の判定はusecase）
func bindCartItem(c echo.Context) (string, usecase.CartItemInput, bool) {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return "", usecase.CartItemInput{}, false
	}

	userID, ok := parseUUID(req.UserID)
	if !ok {
		return "", usecase.CartItemInput{}, false
	}
	productID, ok := parseUUID(req.ProductID)
	if !ok || req.Quantity == nil {
		return "", usecase.CartItemInput{}, false
	}

	return userID, usecase.CartItemInput{ProductID: productID, Quantity: *req.Quantity}, true
}

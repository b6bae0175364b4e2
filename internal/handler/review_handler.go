package handler

import (
	"encoding/json"
	"net/http"

	"orderhub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /reviewsのHTTP
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type CreateReviewRequest struct {
	ProductID string  `json:"productId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int           `json:"rating"`
	Comment optionalString `json:"comment"`
}

// キーなしと null を区別する。null はコメント削除
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// 一覧・1件取得は公開、書き込みと /mine は認証必須
func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, auth ...echo.MiddlewareFunc) {
	g := e.Group("/reviews")

	g.GET("/product/:productId", h.listByProduct)
	g.GET("/mine", h.listMine, auth...)
	g.GET("/:reviewId", h.findOne)

	g.POST("", h.create, auth...)
	g.PATCH("/:reviewId", h.update, auth...)
	g.DELETE("/:reviewId", h.delete, auth...)
}

func (h *ReviewHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	productID, ok := parseUUID(req.ProductID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
	}

	out, err := h.uc.CreateReview(c.Request().Context(), userID, usecase.CreateReviewInput{
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ReviewHandler) listByProduct(c echo.Context) error {
	productID, ok := parseUUID(c.Param("productId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
	}
	page, limit, ok := parsePaging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid paging"})
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	page, limit, ok := parsePaging(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid paging"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) findOne(c echo.Context) error {
	reviewID, ok := parseUUID(c.Param("reviewId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reviewId"})
	}

	out, err := h.uc.GetReview(c.Request().Context(), reviewID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	reviewID, ok := parseUUID(c.Param("reviewId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reviewId"})
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateReview(c.Request().Context(), userID, reviewID, usecase.UpdateReviewInput{
		Rating:     req.Rating,
		Comment:    req.Comment.Value,
		CommentSet: req.Comment.Set,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	reviewID, ok := parseUUID(c.Param("reviewId"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reviewId"})
	}

	if err := h.uc.DeleteReview(c.Request().Context(), userID, reviewID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

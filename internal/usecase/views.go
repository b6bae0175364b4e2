package usecase

import (
	"time"

	"orderhub/internal/domain/model"
)

// 金額は小数2桁の文字列で返す（例 "15.00"）

type ProductSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       string  `json:"price,omitempty"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CartItemOutput struct {
	ID        string         `json:"id"`
	ProductID string         `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Product   ProductSummary `json:"product"`
}

type CartOutput struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Items     []CartItemOutput `json:"items"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type OrderItemOutput struct {
	ID              string         `json:"id"`
	ProductID       string         `json:"product_id"`
	Quantity        int            `json:"quantity"`
	PriceAtPurchase string         `json:"price_at_purchase"`
	Product         ProductSummary `json:"product"`
}

type OrderOutput struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount string            `json:"total_amount"`
	Items       []OrderItemOutput `json:"items"`
	User        UserSummary       `json:"user"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type OrderHistoryEntry struct {
	ActorUserID string    `json:"actor_user_id"`
	Action      string    `json:"action"`
	Before      string    `json:"before"`
	After       string    `json:"after"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewOutput struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	ProductID string         `json:"product_id"`
	Rating    int            `json:"rating"`
	Comment   *string        `json:"comment"`
	User      UserSummary    `json:"user"`
	Product   ProductSummary `json:"product"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ReviewPage struct {
	Reviews     []ReviewOutput `json:"reviews"`
	Total       int64          `json:"total"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}

func toCartOutput(cart model.Cart, rows []model.CartItemDetail) CartOutput {
	items := make([]CartItemOutput, 0, len(rows))
	for _, r := range rows {
		items = append(items, CartItemOutput{
			ID:        r.ID,
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			Product: ProductSummary{
				ID:          r.ProductID,
				Title:       r.ProductTitle,
				Description: r.ProductDescription,
				Price:       r.ProductPrice.StringFixed(2),
			},
		})
	}
	return CartOutput{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     items,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
}

func toOrderOutput(o model.Order, user UserSummary, rows []model.OrderItemDetail) OrderOutput {
	items := make([]OrderItemOutput, 0, len(rows))
	for _, r := range rows {
		items = append(items, OrderItemOutput{
			ID:              r.ID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			PriceAtPurchase: r.PriceAtPurchase.StringFixed(2),
			Product: ProductSummary{
				ID:          r.ProductID,
				Title:       r.ProductTitle,
				Description: r.ProductDescription,
			},
		})
	}
	return OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Items:       items,
		User:        user,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toReviewOutput(d model.ReviewDetail) ReviewOutput {
	return ReviewOutput{
		ID:        d.ID,
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		User:      UserSummary{ID: d.UserID, Name: d.UserName},
		Product:   ProductSummary{ID: d.ProductID, Title: d.ProductTitle},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toUserSummary(u *model.User) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

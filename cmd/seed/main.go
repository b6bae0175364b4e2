package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"orderhub/internal/config"
	"orderhub/internal/domain/model"
	"orderhub/internal/infra/db"
	"orderhub/internal/infra/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 開発用データ。何度流しても同じ状態になる。
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Connect(cfg.DSN())
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("SALT_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cost = n
		}
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		alice, err := seedUser(tx, "alice@example.com", "Alice Wonderland", "password123", cost)
		if err != nil {
			return err
		}
		bob, err := seedUser(tx, "bob@example.com", "Bob The Builder", "password456", cost)
		if err != nil {
			return err
		}

		laptop, err := seedProduct(tx, "Laptop Pro X", "A powerful laptop for professionals.", "1200.99", "1500.00", "Electronics")
		if err != nil {
			return err
		}
		coffee, err := seedProduct(tx, "MasterBrew Coffee Maker", "Brew the perfect coffee every morning.", "89.50", "", "Home & Kitchen")
		if err != nil {
			return err
		}
		book, err := seedProduct(tx, "Book: The Art of War", "Classic strategies by Sun Tzu.", "19.90", "25.00", "Books")
		if err != nil {
			return err
		}

		//aliceのカート（毎回入れ直す）
		cart := model.Cart{ID: uuid.NewString(), UserID: alice.ID}
		if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).Create(&cart).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", alice.ID).First(&cart).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		items := []model.CartItem{
			{ID: uuid.NewString(), CartID: cart.ID, ProductID: laptop.ID, Quantity: 1},
			{ID: uuid.NewString(), CartID: cart.ID, ProductID: coffee.ID, Quantity: 2},
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		//bobの注文（PENDING）とaliceの配達済み注文（レビュー可能）
		if err := seedOrder(tx, bob.ID, model.OrderStatusPending, coffee, book); err != nil {
			return err
		}
		return seedOrder(tx, alice.ID, model.OrderStatusDelivered, book)
	})
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	//ローカル確認用のトークン
	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		var u model.User
		if err := gormDB.Where("email = ?", email).First(&u).Error; err != nil {
			log.Fatal("seed user missing", zap.String("email", email), zap.Error(err))
		}
		token, err := devToken(cfg.JWTSecret, u.ID)
		if err != nil {
			log.Fatal("sign token failed", zap.Error(err))
		}
		log.Info("seeded user", zap.String("email", email), zap.String("user_id", u.ID), zap.String("token", token))
	}

	log.Info("seeding finished")
}

func seedUser(tx *gorm.DB, email, name, password string, cost int) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return model.User{}, err
	}

	u := model.User{ID: uuid.NewString(), Email: email, Name: name, PasswordHash: string(hash)}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&u).Error; err != nil {
		return model.User{}, err
	}
	err = tx.Where("email = ?", email).First(&u).Error
	return u, err
}

// タイトルで既存を探して、無ければ作る
func seedProduct(tx *gorm.DB, title, description, price, originalPrice, category string) (model.Product, error) {
	var p model.Product
	err := tx.Where("title = ?", title).First(&p).Error
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, err
	}

	p = model.Product{
		ID:          uuid.NewString(),
		Title:       title,
		Description: &description,
		Price:       decimal.RequireFromString(price),
		Category:    &category,
	}
	if originalPrice != "" {
		op := decimal.RequireFromString(originalPrice)
		p.OriginalPrice = &op
	}
	return p, tx.Create(&p).Error
}

// 同じユーザー・同じステータスの注文が既にあれば作らない
func seedOrder(tx *gorm.DB, userID string, status model.OrderStatus, products ...model.Product) error {
	var n int64
	if err := tx.Model(&model.Order{}).Where("user_id = ? AND status = ?", userID, status).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	orderID := uuid.NewString()
	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(products))
	for _, p := range products {
		total = total.Add(p.Price)
		items = append(items, model.OrderItem{
			ID:              uuid.NewString(),
			OrderID:         orderID,
			ProductID:       p.ID,
			Quantity:        1,
			PriceAtPurchase: p.Price,
		})
	}

	order := model.Order{ID: orderID, UserID: userID, Status: status, TotalAmount: total}
	if err := tx.Create(&order).Error; err != nil {
		return err
	}
	return tx.Create(&items).Error
}

func devToken(secret string, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

package converter

import (
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/usecase"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
// Поле Price заполняется из присоединённой таблицы prices.
type ProductModel struct {
	ID             int64      `db:"id"`
	Name           string     `db:"name"`
	Slug           string     `db:"slug"`
	Description    string     `db:"description"`
	Artist         string     `db:"artist"`
	PriceID        int64      `db:"price_id"`
	Price          int64      `db:"price"`
	Stock          int32      `db:"stock"`
	IsAvailable    bool       `db:"is_available"`
	CategoryID     int64      `db:"category_id"`
	GiftCategoryID *int64     `db:"gift_category_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Slug      string     `db:"slug"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// GiftCategoryModel представляет запись таблицы gift_categories в PostgreSQL.
type GiftCategoryModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Slug      string     `db:"slug"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CartItemModel представляет запись таблицы cart_items в PostgreSQL.
// Поле Variations агрегируется из таблицы cart_item_variations.
type CartItemModel struct {
	ID         int64     `db:"id"`
	UserID     *int64    `db:"user_id"`
	CartID     *int64    `db:"cart_id"`
	ProductID  int64     `db:"product_id"`
	Variations []int64   `db:"variations"`
	Quantity   int32     `db:"quantity"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID           int64              `db:"id"`
	UserID       int64              `db:"user_id"`
	OrderNumber  string             `db:"order_number"`
	FirstName    string             `db:"first_name"`
	LastName     string             `db:"last_name"`
	Phone        string             `db:"phone"`
	Email        string             `db:"email"`
	AddressLine1 string             `db:"address_line_1"`
	AddressLine2 string             `db:"address_line_2"`
	Country      string             `db:"country"`
	State        string             `db:"state"`
	City         string             `db:"city"`
	OrderNote    string             `db:"order_note"`
	OrderTotal   int64              `db:"order_total"`
	Tax          int64              `db:"tax"`
	Status       domain.OrderStatus `db:"status"`
	IP           string             `db:"ip"`
	IsOrdered    bool               `db:"is_ordered"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    *time.Time         `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	OrderID     int64                   `db:"order_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}

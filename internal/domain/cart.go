package domain

import "time"

// Cart — корзина анонимного покупателя, привязанная к сессионному токену.
// Для аутентифицированных пользователей позиции корзины привязываются
// напрямую к идентификатору пользователя.
type Cart struct {
	ID        int64
	Token     string
	CreatedAt time.Time
}

func NewCart(token string) *Cart {
	return &Cart{Token: token}
}

// CartItem — позиция корзины: товар с выбранным набором вариаций.
// Владелец — либо пользователь (UserID), либо анонимная корзина (CartID).
type CartItem struct {
	ID         int64
	UserID     *int64
	CartID     *int64
	ProductID  int64
	Variations VariationSet
	Quantity   int32
	IsActive   bool
	CreatedAt  time.Time
}

func NewCartItem(identity Identity, cartID int64, productID int64, variations VariationSet) *CartItem {
	item := &CartItem{
		ProductID:  productID,
		Variations: variations.Normalize(),
		Quantity:   1,
		IsActive:   true,
	}

	if identity.IsUser() {
		userID := identity.UserID
		item.UserID = &userID
	} else {
		id := cartID
		item.CartID = &id
	}

	return item
}

package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() CustomerInfo {
	return CustomerInfo{
		FirstName:    "Иван",
		LastName:     "Петров",
		Phone:        "+79001234567",
		Email:        "ivan@example.com",
		AddressLine1: "ул. Ленина, 1",
		Country:      "Россия",
		State:        "Московская область",
		City:         "Москва",
	}
}

func newOrderFixture(t *testing.T, products ...*domain.Product) (*OrderUseCase, *memCartItemRepo, *memOrderRepo, *memOutboxRepo) {
	t.Helper()

	productRepo := newMemProductRepo(products...)
	cartItemRepo := newMemCartItemRepo()
	orderRepo := newMemOrderRepo()
	outboxRepo := newMemOutboxRepo()
	variationRepo := newMemVariationRepo(
		domain.Variation{ID: 1, ProductID: 1, Category: domain.VariationColor, Value: "red", IsActive: true},
	)

	uc := NewOrderUC(orderRepo, cartItemRepo, productRepo, variationRepo, outboxRepo, newFakePool(), nopLogger{})

	return uc, cartItemRepo, orderRepo, outboxRepo
}

func addUserItem(t *testing.T, items *memCartItemRepo, userID, productID int64, quantity int32, variations domain.VariationSet) *domain.CartItem {
	t.Helper()

	item := domain.NewCartItem(domain.NewUserIdentity(userID), 0, productID, variations)
	item.Quantity = quantity

	created, err := items.Create(context.Background(), item)
	require.NoError(t, err)

	return created
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	uc, _, orders, outbox := newOrderFixture(t)

	res, err := uc.PlaceOrder(context.Background(), NewPlaceOrderReq(42, validCustomer(), "10.0.0.1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrEmptyCart)
	assert.Nil(t, res)
	assert.Empty(t, orders.orders)
	assert.Empty(t, outbox.events)
}

func TestPlaceOrderMissingRequiredField(t *testing.T) {
	uc, _, orders, _ := newOrderFixture(t)

	customer := validCustomer()
	customer.Phone = "   "

	_, err := uc.PlaceOrder(context.Background(), NewPlaceOrderReq(42, customer, "10.0.0.1"))

	assert.ErrorIs(t, err, e.ErrMissingFields)
	assert.Empty(t, orders.orders)
}

func TestPlaceOrder(t *testing.T) {
	first := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 5, IsAvailable: true}
	second := &domain.Product{ID: 2, Name: "Dawn", Slug: "dawn", Price: 2500, Stock: 5, IsAvailable: true}
	uc, items, orders, outbox := newOrderFixture(t, first, second)

	addUserItem(t, items, 42, 1, 1, domain.VariationSet{1})
	addUserItem(t, items, 42, 2, 2, nil)

	res, err := uc.PlaceOrder(context.Background(), NewPlaceOrderReq(42, validCustomer(), "10.0.0.1"))
	require.NoError(t, err)

	// Итоги пересчитаны по актуальным ценам: 10000 + 2*2500 = 15000
	assert.Equal(t, int64(15000), res.Total)
	assert.Equal(t, int64(300), res.Tax)
	assert.Equal(t, int64(15300), res.GrandTotal)
	require.Len(t, res.Items, 2)
	require.Len(t, res.Items[0].Variations, 1)
	assert.Equal(t, "red", res.Items[0].Variations[0].Value)

	require.Len(t, orders.orders, 1)
	order := orders.orders[0]
	assert.Equal(t, int64(15300), order.OrderTotal)
	assert.Equal(t, int64(300), order.Tax)
	assert.Equal(t, domain.OrderStatusNew, order.Status)
	assert.Equal(t, "10.0.0.1", order.IP)
	assert.True(t, order.IsOrdered)

	// Номер заказа — дата создания плюс первичный ключ
	wantNumber := domain.BuildOrderNumber(order.CreatedAt, order.ID)
	assert.Equal(t, wantNumber, res.Order.OrderNumber)
	assert.Equal(t, wantNumber, orders.numbers[order.ID])

	// Позиции корзины деактивированы, а не удалены
	require.Len(t, items.items, 2)
	for _, item := range items.items {
		assert.False(t, item.IsActive)
	}

	// Событие уведомления записано той же транзакцией
	require.Len(t, outbox.events, 1)
	event := outbox.events[0]
	assert.Equal(t, OrderCreated, event.EventType)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, Pending, event.Status)

	var payload OrderNotification
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, "+79001234567", payload.Phone)
	assert.Equal(t, "Иван Петров", payload.CustomerName)
	assert.Equal(t, wantNumber, payload.OrderNumber)
}

func TestPlaceOrderSecondAttemptFindsEmptyCart(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 5, IsAvailable: true}
	uc, items, orders, _ := newOrderFixture(t, product)

	addUserItem(t, items, 42, 1, 1, nil)

	_, err := uc.PlaceOrder(context.Background(), NewPlaceOrderReq(42, validCustomer(), "10.0.0.1"))
	require.NoError(t, err)

	// Повторное оформление после деактивации позиций — пустая корзина
	_, err = uc.PlaceOrder(context.Background(), NewPlaceOrderReq(42, validCustomer(), "10.0.0.1"))
	assert.ErrorIs(t, err, e.ErrEmptyCart)
	assert.Len(t, orders.orders, 1)
}

func TestBuildOrderNumber(t *testing.T) {
	date := time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "2025030917", domain.BuildOrderNumber(date, 17))
}

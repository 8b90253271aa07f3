package usecase

import (
	"context"
	"testing"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T, products ...*domain.Product) (*CartUseCase, *memCartItemRepo, *memProductRepo, *memCartRepo, *memVariationRepo) {
	t.Helper()

	productRepo := newMemProductRepo(products...)
	cartRepo := newMemCartRepo()
	cartItemRepo := newMemCartItemRepo()
	variationRepo := newMemVariationRepo(
		domain.Variation{ID: 1, ProductID: 1, Category: domain.VariationColor, Value: "red", IsActive: true},
		domain.Variation{ID: 2, ProductID: 1, Category: domain.VariationSize, Value: "M", IsActive: true},
		domain.Variation{ID: 3, ProductID: 1, Category: domain.VariationColor, Value: "blue", IsActive: true},
	)

	uc := NewCartUC(cartRepo, cartItemRepo, productRepo, variationRepo, newMemCacheRepo(), newFakePool(), nopLogger{})

	return uc, cartItemRepo, productRepo, cartRepo, variationRepo
}

func TestAddToCartMergesEqualVariationSets(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, products, _, _ := newCartFixture(t, product)

	identity := domain.NewUserIdentity(42)
	options := []SelectedOption{{Category: "color", Value: "red"}, {Category: "size", Value: "M"}}

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, options)))

	// Тот же набор в другом порядке сливается в ту же позицию
	reversed := []SelectedOption{{Category: "size", Value: "M"}, {Category: "color", Value: "red"}}
	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, reversed)))

	require.Len(t, items.items, 1)
	assert.Equal(t, int32(2), items.items[0].Quantity)
	assert.Equal(t, domain.VariationSet{1, 2}, items.items[0].Variations)
	assert.Equal(t, int32(8), products.products[1].Stock)
}

func TestAddToCartDifferentSetsCreateSeparateItems(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	identity := domain.NewUserIdentity(42)

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, []SelectedOption{{Category: "color", Value: "red"}})))
	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, []SelectedOption{{Category: "color", Value: "blue"}})))

	require.Len(t, items.items, 2)
	assert.Equal(t, int32(1), items.items[0].Quantity)
	assert.Equal(t, int32(1), items.items[1].Quantity)
}

func TestAddToCartUnknownOptionsDropped(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	identity := domain.NewUserIdentity(42)
	options := []SelectedOption{{Category: "color", Value: "green"}, {Category: "material", Value: "oil"}}

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, options)))

	require.Len(t, items.items, 1)
	assert.Empty(t, items.items[0].Variations)
}

func TestAddToCartOptionsMatchedCaseInsensitively(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	options := []SelectedOption{{Category: "Color", Value: "RED"}}

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(domain.NewUserIdentity(42), 1, options)))

	require.Len(t, items.items, 1)
	assert.Equal(t, domain.VariationSet{1}, items.items[0].Variations)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 0, IsAvailable: true}
	uc, _, _, _, _ := newCartFixture(t, product)

	err := uc.AddToCart(context.Background(), NewAddToCartReq(domain.NewUserIdentity(42), 1, nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInsufficientStock)
	// Позиция создана, но транзакция откатывается
	assert.True(t, uc.dbPool.(*fakePool).tx.rolledBack)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	uc, _, _, _, _ := newCartFixture(t)

	err := uc.AddToCart(context.Background(), NewAddToCartReq(domain.NewUserIdentity(42), 99, nil))

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestAddToCartGuestCreatesCart(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 5, IsAvailable: true}
	uc, items, _, carts, _ := newCartFixture(t, product)

	identity := domain.NewGuestIdentity("token-1")

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, nil)))

	require.Len(t, items.items, 1)
	require.NotNil(t, items.items[0].CartID)
	assert.Nil(t, items.items[0].UserID)

	cart, err := carts.GetByToken(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, *items.items[0].CartID)
}

func TestQuickAddIncrementsFirstItem(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, products, _, _ := newCartFixture(t, product)

	identity := domain.NewUserIdentity(42)

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, []SelectedOption{{Category: "color", Value: "red"}})))
	require.NoError(t, uc.QuickAdd(context.Background(), NewQuickAddReq(identity, 1)))

	// Быстрое добавление не создаёт новую позицию, а увеличивает существующую
	require.Len(t, items.items, 1)
	assert.Equal(t, int32(2), items.items[0].Quantity)
	assert.Equal(t, int32(8), products.products[1].Stock)
}

func TestQuickAddCreatesItemWithoutVariations(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	require.NoError(t, uc.QuickAdd(context.Background(), NewQuickAddReq(domain.NewUserIdentity(42), 1)))

	require.Len(t, items.items, 1)
	assert.Empty(t, items.items[0].Variations)
}

func TestRemoveFromCartDecrementsThenDeletes(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	identity := domain.NewUserIdentity(42)

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, nil)))
	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, nil)))
	require.Len(t, items.items, 1)
	itemID := items.items[0].ID

	require.NoError(t, uc.RemoveFromCart(context.Background(), NewRemoveFromCartReq(identity, 1, itemID)))
	require.Len(t, items.items, 1)
	assert.Equal(t, int32(1), items.items[0].Quantity)

	require.NoError(t, uc.RemoveFromCart(context.Background(), NewRemoveFromCartReq(identity, 1, itemID)))
	assert.Empty(t, items.items)
}

func TestRemoveFromCartMissingItemIsNoop(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, _, _, _, _ := newCartFixture(t, product)

	assert.NoError(t, uc.RemoveFromCart(context.Background(), NewRemoveFromCartReq(domain.NewUserIdentity(42), 1, 123)))
}

func TestRemoveFromCartForeignItemIgnored(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	uc, items, _, _, _ := newCartFixture(t, product)

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(domain.NewUserIdentity(42), 1, nil)))
	itemID := items.items[0].ID

	// Чужая позиция недоступна для удаления
	require.NoError(t, uc.RemoveFromCart(context.Background(), NewRemoveFromCartReq(domain.NewUserIdentity(7), 1, itemID)))
	require.Len(t, items.items, 1)
	assert.Equal(t, int32(1), items.items[0].Quantity)
}

func TestViewCartTotals(t *testing.T) {
	first := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 10, IsAvailable: true}
	second := &domain.Product{ID: 2, Name: "Dawn", Slug: "dawn", Price: 2500, Stock: 10, IsAvailable: true}
	uc, _, _, _, _ := newCartFixture(t, first, second)

	identity := domain.NewUserIdentity(42)

	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 1, nil)))
	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 2, nil)))
	require.NoError(t, uc.AddToCart(context.Background(), NewAddToCartReq(identity, 2, nil)))

	res, err := uc.ViewCart(context.Background(), identity)
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, int32(3), res.Quantity)
	assert.Equal(t, int64(15000), res.Total)
	assert.Equal(t, int64(300), res.Tax)
	assert.Equal(t, int64(15300), res.GrandTotal)
}

func TestViewCartEmptyForGuestWithoutCart(t *testing.T) {
	uc, _, _, _, _ := newCartFixture(t)

	res, err := uc.ViewCart(context.Background(), domain.NewGuestIdentity("no-such-token"))
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)
	assert.Zero(t, res.GrandTotal)
}

func TestComputeTotalsRounding(t *testing.T) {
	// 75 * 2% = 1.5 — округляется вверх
	total, tax, grandTotal := computeTotals([]CartItemView{{SubTotal: 75}})

	assert.Equal(t, int64(75), total)
	assert.Equal(t, int64(2), tax)
	assert.Equal(t, int64(77), grandTotal)
}

func TestComputeTotalsEmpty(t *testing.T) {
	total, tax, grandTotal := computeTotals(nil)

	assert.Zero(t, total)
	assert.Zero(t, tax)
	assert.Zero(t, grandTotal)
}

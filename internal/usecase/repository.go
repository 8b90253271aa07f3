package usecase

import (
	"context"

	"github.com/artline-tech/shop-backend/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlugs(ctx context.Context, categorySlug, productSlug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]ProductInfo, int64, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]ProductInfo, int64, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SetImage(ctx context.Context, productID int64, imageKey string) error
	GetOrCreatePrice(ctx context.Context, amount int64) (*domain.Price, error)
	// DecrementStock атомарно уменьшает остаток на единицу.
	// Возвращает e.ErrInsufficientStock, если остаток исчерпан.
	DecrementStock(ctx context.Context, productID int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	CreateGift(ctx context.Context, gift *domain.GiftCategory) (*domain.GiftCategory, error)
	List(ctx context.Context) ([]domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

type VariationRepository interface {
	// ResolveActive подбирает активную вариацию товара по паре (категория, значение)
	// без учёта регистра. Возвращает (nil, nil), если совпадения нет.
	ResolveActive(ctx context.Context, productID int64, category, value string) (*domain.Variation, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error)
	ListForProduct(ctx context.Context, productID int64) ([]domain.Variation, error)
}

type CartRepository interface {
	GetOrCreateByToken(ctx context.Context, token string) (*domain.Cart, error)
	GetByToken(ctx context.Context, token string) (*domain.Cart, error)
}

type CartItemRepository interface {
	// ListForProductLocked блокирует (FOR UPDATE) позиции владельца по товару —
	// решения о слиянии принимаются только под этой блокировкой.
	ListForProductLocked(ctx context.Context, owner CartOwner, productID int64) ([]*domain.CartItem, error)
	ListActive(ctx context.Context, owner CartOwner) ([]*domain.CartItem, error)
	ListActiveLocked(ctx context.Context, owner CartOwner) ([]*domain.CartItem, error)
	GetByIDLocked(ctx context.Context, owner CartOwner, productID, itemID int64) (*domain.CartItem, error)
	Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	IncrementQuantity(ctx context.Context, itemID int64) error
	DecrementQuantity(ctx context.Context, itemID int64) error
	Delete(ctx context.Context, itemID int64) error
	DeactivateByIDs(ctx context.Context, ids []int64) error
	ExistsForProduct(ctx context.Context, owner CartOwner, productID int64) (bool, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	SetOrderNumber(ctx context.Context, id int64, number string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

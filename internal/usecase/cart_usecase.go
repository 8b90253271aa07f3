package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// taxRatePercent — единая ставка налога на итог корзины.
const taxRatePercent = 2

// CartUseCase реализует бизнес-логику корзины.
type CartUseCase struct {
	cartRepo      CartRepository
	cartItemRepo  CartItemRepository
	productRepo   ProductRepository
	variationRepo VariationRepository
	cacheRepo     CacheRepository
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	cartItemRepo CartItemRepository,
	productRepo ProductRepository,
	variationRepo VariationRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		cacheRepo:     cacheRepo,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// AddToCart добавляет товар с выбранным набором вариаций в корзину.
// Позиция с точно таким же набором вариаций увеличивается на единицу,
// иначе создаётся новая позиция. Остаток товара уменьшается на единицу
// на каждое успешное добавление.
func (c *CartUseCase) AddToCart(ctx context.Context, req *AddToCartReq) error {
	const op = "CartUseCase.AddToCart"

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Подбор вариаций по присланным парам; несовпавшие пары отбрасываются
	variations, err := c.resolveOptions(ctx, product.ID, req.Options)
	if err != nil {
		return e.Wrap(op, err)
	}
	requested := domain.NewVariationSet(variations)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	owner, err := c.resolveOwner(ctx, req.Identity)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Решение о слиянии принимается под блокировкой позиций владельца
	items, err := c.cartItemRepo.ListForProductLocked(ctx, owner, product.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	var existing *domain.CartItem
	for _, item := range items {
		if item.Variations.Equal(requested) {
			existing = item
			break
		}
	}

	if existing != nil {
		err = c.cartItemRepo.IncrementQuantity(ctx, existing.ID)
	} else {
		_, err = c.cartItemRepo.Create(ctx, domain.NewCartItem(req.Identity, derefCartID(owner), product.ID, requested))
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.productRepo.DecrementStock(ctx, product.ID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// QuickAdd увеличивает первую позицию корзины по товару без учёта вариаций
// или создаёт новую позицию без вариаций.
func (c *CartUseCase) QuickAdd(ctx context.Context, req *QuickAddReq) error {
	const op = "CartUseCase.QuickAdd"

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	owner, err := c.resolveOwner(ctx, req.Identity)
	if err != nil {
		return e.Wrap(op, err)
	}

	items, err := c.cartItemRepo.ListForProductLocked(ctx, owner, product.ID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if len(items) > 0 {
		err = c.cartItemRepo.IncrementQuantity(ctx, items[0].ID)
	} else {
		_, err = c.cartItemRepo.Create(ctx, domain.NewCartItem(req.Identity, derefCartID(owner), product.ID, domain.VariationSet{}))
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.productRepo.DecrementStock(ctx, product.ID); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// RemoveFromCart уменьшает позицию на единицу либо удаляет её целиком.
// Отсутствующая позиция — no-op.
func (c *CartUseCase) RemoveFromCart(ctx context.Context, req *RemoveFromCartReq) error {
	const op = "CartUseCase.RemoveFromCart"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	owner, found, err := c.lookupOwner(ctx, req.Identity)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !found {
		return tx.Commit(ctx)
	}

	item, err := c.cartItemRepo.GetByIDLocked(ctx, owner, req.ProductID, req.CartItemID)
	if err != nil {
		return e.Wrap(op, err)
	}
	if item == nil {
		return tx.Commit(ctx)
	}

	if item.Quantity > 1 {
		err = c.cartItemRepo.DecrementQuantity(ctx, item.ID)
	} else {
		err = c.cartItemRepo.Delete(ctx, item.ID)
	}
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ViewCart возвращает активные позиции корзины с подытогами и итогами.
// Пустая или отсутствующая корзина — нулевые итоги.
func (c *CartUseCase) ViewCart(ctx context.Context, identity domain.Identity) (*CartViewRes, error) {
	const op = "CartUseCase.ViewCart"

	owner, found, err := c.lookupOwner(ctx, identity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !found {
		return &CartViewRes{Items: []CartItemView{}}, nil
	}

	items, err := c.cartItemRepo.ListActive(ctx, owner)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(items) == 0 {
		return &CartViewRes{Items: []CartItemView{}}, nil
	}

	views, err := c.buildItemViews(ctx, items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total, tax, grandTotal := computeTotals(views)

	var quantity int32
	for _, v := range views {
		quantity += v.Quantity
	}

	return &CartViewRes{
		Items:      views,
		Quantity:   quantity,
		Total:      total,
		Tax:        tax,
		GrandTotal: grandTotal,
	}, nil
}

// buildItemViews обогащает позиции корзины данными товаров (через кэш)
// и вариациями, вычисляя подытог каждой позиции.
func (c *CartUseCase) buildItemViews(ctx context.Context, items []*domain.CartItem) ([]CartItemView, error) {
	productIDs := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	variationIDs := make([]int64, 0)
	for _, item := range items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}
		variationIDs = append(variationIDs, item.Variations...)
	}

	infoByID, err := c.getProductsInfo(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	variationByID := make(map[int64]domain.Variation)
	if len(variationIDs) > 0 {
		variations, err := c.variationRepo.GetByIDs(ctx, variationIDs)
		if err != nil {
			return nil, err
		}
		for _, v := range variations {
			variationByID[v.ID] = v
		}
	}

	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		info, ok := infoByID[item.ProductID]
		if !ok {
			// Товар удалён из каталога — позиция не отображается
			c.logger.Warnf("cart item %d references missing product %d", item.ID, item.ProductID)
			continue
		}

		variations := make([]VariationView, 0, len(item.Variations))
		for _, id := range item.Variations {
			if v, ok := variationByID[id]; ok {
				variations = append(variations, VariationView{Category: string(v.Category), Value: v.Value})
			}
		}

		views = append(views, CartItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: info.Name,
			UnitPrice:   info.Price,
			Quantity:    item.Quantity,
			SubTotal:    info.Price * int64(item.Quantity),
			Variations:  variations,
		})
	}

	return views, nil
}

// getProductsInfo возвращает данные товаров, используя кэш с фоновым дозаполнением.
func (c *CartUseCase) getProductsInfo(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	result := make(map[int64]ProductInfo, len(ids))

	cached, err := c.cacheRepo.GetProducts(ctx, ids)
	if err != nil {
		cached = nil
	}

	nonCacheable := make([]int64, 0, len(ids))
	for _, id := range ids {
		if info, ok := cached[id]; ok {
			result[id] = info
		} else {
			nonCacheable = append(nonCacheable, id)
		}
	}

	if len(nonCacheable) > 0 {
		fromDB, err := c.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, err
		}
		for _, info := range fromDB {
			result[info.ID] = info
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := c.cacheRepo.SetProducts(bgCtx, fromDB); err != nil {
				c.logger.Warnf("Failed to cache products in background: %v", err)
			}
		}()
	}

	return result, nil
}

// resolveOptions подбирает активные вариации товара по присланным парам,
// молча отбрасывая несовпавшие.
func (c *CartUseCase) resolveOptions(ctx context.Context, productID int64, options []SelectedOption) ([]domain.Variation, error) {
	variations := make([]domain.Variation, 0, len(options))
	for _, opt := range options {
		v, err := c.variationRepo.ResolveActive(ctx, productID, opt.Category, opt.Value)
		if err != nil {
			return nil, err
		}
		if v != nil {
			variations = append(variations, *v)
		}
	}

	return variations, nil
}

// resolveOwner определяет владельца позиций, создавая анонимную корзину при необходимости.
// Вызывается внутри транзакции.
func (c *CartUseCase) resolveOwner(ctx context.Context, identity domain.Identity) (CartOwner, error) {
	if identity.IsUser() {
		return NewUserOwner(identity.UserID), nil
	}

	cart, err := c.cartRepo.GetOrCreateByToken(ctx, identity.CartToken)
	if err != nil {
		return CartOwner{}, err
	}

	return NewCartOwner(cart.ID), nil
}

// lookupOwner определяет владельца позиций, не создавая корзину.
// Для анонимного покупателя без корзины возвращает found=false.
func (c *CartUseCase) lookupOwner(ctx context.Context, identity domain.Identity) (CartOwner, bool, error) {
	if identity.IsUser() {
		return NewUserOwner(identity.UserID), true, nil
	}

	cart, err := c.cartRepo.GetByToken(ctx, identity.CartToken)
	if err != nil {
		if errors.Is(err, e.ErrCartNotFound) {
			return CartOwner{}, false, nil
		}
		return CartOwner{}, false, err
	}

	return NewCartOwner(cart.ID), true, nil
}

// computeTotals суммирует подытоги, начисляет плоский налог и возвращает итог.
func computeTotals(items []CartItemView) (total, tax, grandTotal int64) {
	for _, item := range items {
		total += item.SubTotal
	}

	tax = decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(taxRatePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	grandTotal = total + tax

	return total, tax, grandTotal
}

func derefCartID(owner CartOwner) int64 {
	if owner.CartID != nil {
		return *owner.CartID
	}
	return 0
}

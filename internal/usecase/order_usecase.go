package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderUseCase реализует оформление заказа из корзины.
type OrderUseCase struct {
	orderRepo     OrderRepository
	cartItemRepo  CartItemRepository
	productRepo   ProductRepository
	variationRepo VariationRepository
	outboxRepo    OutboxRepository
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	cartItemRepo CartItemRepository,
	productRepo ProductRepository,
	variationRepo VariationRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:     orderRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		variationRepo: variationRepo,
		outboxRepo:    outboxRepo,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// PlaceOrder превращает активную корзину пользователя в заказ.
// Итоги пересчитываются заново и являются авторитетными; позиции корзины
// деактивируются, а событие уведомления записывается в outbox —
// всё в одной транзакции.
func (o *OrderUseCase) PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*PlaceOrderRes, error) {
	const op = "OrderUseCase.PlaceOrder"

	if err := validateCustomer(&req.Customer); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	items, err := o.cartItemRepo.ListActiveLocked(ctx, NewUserOwner(req.UserID))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(items) == 0 {
		err = e.ErrEmptyCart
		return nil, e.Wrap(op, err)
	}

	views, err := o.buildItemViews(ctx, items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total, tax, grandTotal := computeTotals(views)

	order, err := o.orderRepo.Create(ctx, o.buildOrder(req, grandTotal, tax))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Номер заказа зависит от первичного ключа и дозаписывается вторым запросом
	order.OrderNumber = domain.BuildOrderNumber(order.CreatedAt, order.ID)
	if err = o.orderRepo.SetOrderNumber(ctx, order.ID, order.OrderNumber); err != nil {
		return nil, e.Wrap(op, err)
	}

	itemIDs := make([]int64, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}
	if err = o.cartItemRepo.DeactivateByIDs(ctx, itemIDs); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.enqueueNotification(ctx, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &PlaceOrderRes{
		Order:      newOrderView(order),
		Items:      views,
		Total:      total,
		Tax:        tax,
		GrandTotal: grandTotal,
	}, nil
}

// buildItemViews обогащает позиции заказа данными товаров напрямую из БД —
// цены на момент оформления авторитетны, кэш здесь не используется.
func (o *OrderUseCase) buildItemViews(ctx context.Context, items []*domain.CartItem) ([]CartItemView, error) {
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

	infos, err := o.productRepo.GetProductsInfo(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	infoByID := make(map[int64]ProductInfo, len(infos))
	for _, info := range infos {
		infoByID[info.ID] = info
	}

	variationByID := make(map[int64]domain.Variation)
	if len(variationIDs) > 0 {
		variations, err := o.variationRepo.GetByIDs(ctx, variationIDs)
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
			o.logger.Warnf("cart item %d references missing product %d", item.ID, item.ProductID)
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

func (o *OrderUseCase) buildOrder(req *PlaceOrderReq, grandTotal, tax int64) *domain.Order {
	return &domain.Order{
		UserID:       req.UserID,
		FirstName:    req.Customer.FirstName,
		LastName:     req.Customer.LastName,
		Phone:        req.Customer.Phone,
		Email:        req.Customer.Email,
		AddressLine1: req.Customer.AddressLine1,
		AddressLine2: req.Customer.AddressLine2,
		Country:      req.Customer.Country,
		State:        req.Customer.State,
		City:         req.Customer.City,
		OrderNote:    req.Customer.OrderNote,
		OrderTotal:   grandTotal,
		Tax:          tax,
		Status:       domain.OrderStatusNew,
		IP:           req.IP,
		IsOrdered:    true,
	}
}

// enqueueNotification записывает событие order_created в outbox той же транзакцией.
func (o *OrderUseCase) enqueueNotification(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(OrderNotification{
		Phone:        order.Phone,
		CustomerName: order.FullName(),
		OrderNumber:  order.OrderNumber,
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), OrderCreated, order.ID, payload))
	return err
}

// validateCustomer проверяет каждое обязательное поле покупателя по отдельности.
func validateCustomer(customer *CustomerInfo) error {
	required := []string{
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.Email,
		customer.AddressLine1,
		customer.Country,
		customer.State,
		customer.City,
	}

	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return e.ErrMissingFields
		}
	}

	return nil
}

func newOrderView(order *domain.Order) OrderView {
	return OrderView{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		FullName:    order.FullName(),
		Phone:       order.Phone,
		Email:       order.Email,
		FullAddress: order.FullAddress(),
		City:        order.City,
		State:       order.State,
		Country:     order.Country,
		OrderNote:   order.OrderNote,
		CreatedAt:   order.CreatedAt,
	}
}

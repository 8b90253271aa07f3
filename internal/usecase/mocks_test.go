package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/jackc/pgx/v5"
)

// nopLogger глушит логи в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeTx подменяет pgx.Tx: фиксация и откат не трогают базу.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakePool struct {
	tx *fakeTx
}

func newFakePool() *fakePool {
	return &fakePool{tx: &fakeTx{}}
}

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

// memProductRepo хранит товары и остатки в памяти.
type memProductRepo struct {
	products map[int64]*domain.Product
}

func newMemProductRepo(products ...*domain.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok || !p.IsAvailable {
		return nil, e.ErrProductNotFound
	}
	return p, nil
}

func (m *memProductRepo) GetBySlugs(ctx context.Context, categorySlug, productSlug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == productSlug {
			return p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (m *memProductRepo) List(ctx context.Context, filter ProductFilter) ([]ProductInfo, int64, error) {
	return nil, 0, nil
}

func (m *memProductRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]ProductInfo, int64, error) {
	return nil, 0, nil
}

func (m *memProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	infos := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			infos = append(infos, NewProductInfo(p.ID, p.Name, p.Slug, p.Artist, "", p.Price))
		}
	}
	return infos, nil
}

func (m *memProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.products[product.ID] = product
	return product, nil
}

func (m *memProductRepo) SetImage(ctx context.Context, productID int64, imageKey string) error {
	return nil
}

func (m *memProductRepo) GetOrCreatePrice(ctx context.Context, amount int64) (*domain.Price, error) {
	return &domain.Price{ID: amount, Amount: amount}, nil
}

func (m *memProductRepo) DecrementStock(ctx context.Context, productID int64) error {
	p, ok := m.products[productID]
	if !ok || p.Stock <= 0 {
		return e.ErrInsufficientStock
	}
	p.Stock--
	return nil
}

// memCartRepo хранит анонимные корзины по токену.
type memCartRepo struct {
	carts  map[string]*domain.Cart
	nextID int64
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart), nextID: 1}
}

func (m *memCartRepo) GetOrCreateByToken(ctx context.Context, token string) (*domain.Cart, error) {
	if cart, ok := m.carts[token]; ok {
		return cart, nil
	}
	cart := &domain.Cart{ID: m.nextID, Token: token}
	m.nextID++
	m.carts[token] = cart
	return cart, nil
}

func (m *memCartRepo) GetByToken(ctx context.Context, token string) (*domain.Cart, error) {
	cart, ok := m.carts[token]
	if !ok {
		return nil, e.ErrCartNotFound
	}
	return cart, nil
}

// memCartItemRepo хранит позиции корзины в памяти.
type memCartItemRepo struct {
	items  []*domain.CartItem
	nextID int64
}

func newMemCartItemRepo() *memCartItemRepo {
	return &memCartItemRepo{nextID: 1}
}

func ownerMatches(owner CartOwner, item *domain.CartItem) bool {
	if owner.UserID != nil {
		return item.UserID != nil && *item.UserID == *owner.UserID
	}
	if owner.CartID != nil {
		return item.CartID != nil && *item.CartID == *owner.CartID
	}
	return false
}

func (m *memCartItemRepo) ListForProductLocked(ctx context.Context, owner CartOwner, productID int64) ([]*domain.CartItem, error) {
	var out []*domain.CartItem
	for _, item := range m.items {
		if item.IsActive && item.ProductID == productID && ownerMatches(owner, item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCartItemRepo) ListActive(ctx context.Context, owner CartOwner) ([]*domain.CartItem, error) {
	var out []*domain.CartItem
	for _, item := range m.items {
		if item.IsActive && ownerMatches(owner, item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCartItemRepo) ListActiveLocked(ctx context.Context, owner CartOwner) ([]*domain.CartItem, error) {
	return m.ListActive(ctx, owner)
}

func (m *memCartItemRepo) GetByIDLocked(ctx context.Context, owner CartOwner, productID, itemID int64) (*domain.CartItem, error) {
	for _, item := range m.items {
		if item.ID == itemID && item.IsActive && item.ProductID == productID && ownerMatches(owner, item) {
			return item, nil
		}
	}
	return nil, nil
}

func (m *memCartItemRepo) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	item.ID = m.nextID
	m.nextID++
	m.items = append(m.items, item)
	return item, nil
}

func (m *memCartItemRepo) IncrementQuantity(ctx context.Context, itemID int64) error {
	for _, item := range m.items {
		if item.ID == itemID {
			item.Quantity++
			return nil
		}
	}
	return e.ErrCartItemNotFound
}

func (m *memCartItemRepo) DecrementQuantity(ctx context.Context, itemID int64) error {
	for _, item := range m.items {
		if item.ID == itemID && item.Quantity > 1 {
			item.Quantity--
			return nil
		}
	}
	return e.ErrCartItemNotFound
}

func (m *memCartItemRepo) Delete(ctx context.Context, itemID int64) error {
	for i, item := range m.items {
		if item.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memCartItemRepo) DeactivateByIDs(ctx context.Context, ids []int64) error {
	for _, item := range m.items {
		for _, id := range ids {
			if item.ID == id {
				item.IsActive = false
			}
		}
	}
	return nil
}

func (m *memCartItemRepo) ExistsForProduct(ctx context.Context, owner CartOwner, productID int64) (bool, error) {
	for _, item := range m.items {
		if item.IsActive && item.ProductID == productID && ownerMatches(owner, item) {
			return true, nil
		}
	}
	return false, nil
}

// memVariationRepo хранит вариации в памяти.
type memVariationRepo struct {
	variations map[int64]domain.Variation
}

func newMemVariationRepo(variations ...domain.Variation) *memVariationRepo {
	m := &memVariationRepo{variations: make(map[int64]domain.Variation)}
	for _, v := range variations {
		m.variations[v.ID] = v
	}
	return m
}

func (m *memVariationRepo) ResolveActive(ctx context.Context, productID int64, category, value string) (*domain.Variation, error) {
	for _, v := range m.variations {
		if v.ProductID == productID && strings.EqualFold(string(v.Category), category) &&
			strings.EqualFold(v.Value, value) && v.IsActive {
			match := v
			return &match, nil
		}
	}
	return nil, nil
}

func (m *memVariationRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error) {
	var out []domain.Variation
	for _, id := range ids {
		if v, ok := m.variations[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVariationRepo) ListForProduct(ctx context.Context, productID int64) ([]domain.Variation, error) {
	var out []domain.Variation
	for _, v := range m.variations {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

// memCacheRepo имитирует пустой кэш и фиксирует фоновые записи.
type memCacheRepo struct {
	stored map[int64]ProductInfo
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{stored: make(map[int64]ProductInfo)}
}

func (m *memCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	return map[int64]ProductInfo{}, nil
}

func (m *memCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	for _, p := range products {
		m.stored[p.ID] = p
	}
	return nil
}

func (m *memCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(m.stored, id)
	}
	return nil
}

// memOrderRepo хранит заказы в памяти.
type memOrderRepo struct {
	orders  []*domain.Order
	numbers map[int64]string
	nextID  int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{numbers: make(map[int64]string), nextID: 1}
}

func (m *memOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	order.ID = m.nextID
	order.CreatedAt = time.Now()
	m.nextID++
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *memOrderRepo) SetOrderNumber(ctx context.Context, id int64, number string) error {
	m.numbers[id] = number
	return nil
}

// memOutboxRepo собирает созданные события.
type memOutboxRepo struct {
	events []*OutboxEvent
}

func newMemOutboxRepo() *memOutboxRepo {
	return &memOutboxRepo{}
}

func (m *memOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *memOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

// memCategoryRepo хранит категории в памяти; Create идемпотентен по имени.
type memCategoryRepo struct {
	categories []*domain.Category
	gifts      []*domain.GiftCategory
	nextID     int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{nextID: 1}
}

func (m *memCategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return c, nil
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories = append(m.categories, category)
	return category, nil
}

func (m *memCategoryRepo) CreateGift(ctx context.Context, gift *domain.GiftCategory) (*domain.GiftCategory, error) {
	for _, g := range m.gifts {
		if g.Name == gift.Name {
			return g, nil
		}
	}
	gift.ID = m.nextID
	m.nextID++
	m.gifts = append(m.gifts, gift)
	return gift, nil
}

func (m *memCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, e.ErrCategoryNotFound
}

// fakeImagesInfra фиксирует загрузки и очистки ключей.
type fakeImagesInfra struct {
	uploadErr error
	uploaded  [][]string
	cleaned   [][]string
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.Name+"/"+img.Name)
	}
	f.uploaded = append(f.uploaded, keys)
	return NewUploadImagesRes(keys), nil
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleaned = append(f.cleaned, keys)
}

// listProductRepo дополняет memProductRepo управляемыми ответами List/Search.
type listProductRepo struct {
	*memProductRepo
	listResult    []ProductInfo
	listCount     int64
	listFilter    ProductFilter
	searchResult  []ProductInfo
	searchCount   int64
	searchKeyword string
	setImageErr   error
	imageKeys     map[int64]string
}

func newListProductRepo(products ...*domain.Product) *listProductRepo {
	return &listProductRepo{
		memProductRepo: newMemProductRepo(products...),
		imageKeys:      make(map[int64]string),
	}
}

func (m *listProductRepo) List(ctx context.Context, filter ProductFilter) ([]ProductInfo, int64, error) {
	m.listFilter = filter
	return m.listResult, m.listCount, nil
}

func (m *listProductRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]ProductInfo, int64, error) {
	m.searchKeyword = keyword
	return m.searchResult, m.searchCount, nil
}

func (m *listProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Name == product.Name {
			product.ID = p.ID
			m.products[p.ID] = product
			return product, nil
		}
		if p.Slug == product.Slug {
			return nil, e.ErrProductSlugTaken
		}
	}
	product.ID = int64(len(m.products) + 1)
	m.products[product.ID] = product
	return product, nil
}

func (m *listProductRepo) SetImage(ctx context.Context, productID int64, imageKey string) error {
	if m.setImageErr != nil {
		return m.setImageErr
	}
	m.imageKeys[productID] = imageKey
	return nil
}

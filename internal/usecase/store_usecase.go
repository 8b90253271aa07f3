package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
)

// StoreUseCase реализует просмотр каталога и регистрацию товаров.
type StoreUseCase struct {
	productRepo   ProductRepository
	categoryRepo  CategoryRepository
	variationRepo VariationRepository
	cartRepo      CartRepository
	cartItemRepo  CartItemRepository
	cacheRepo     CacheRepository
	imagesInfra   ImagesInfra
	dbPool        transaction.Transactional
	logger        logger.Logger
	pageSize      int
}

func NewStoreUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	variationRepo VariationRepository,
	cartRepo CartRepository,
	cartItemRepo CartItemRepository,
	cacheRepo CacheRepository,
	imagesInfra ImagesInfra,
	dbPool transaction.Transactional,
	logger logger.Logger,
	pageSize int,
) *StoreUseCase {
	return &StoreUseCase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		variationRepo: variationRepo,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		cacheRepo:     cacheRepo,
		imagesInfra:   imagesInfra,
		dbPool:        dbPool,
		logger:        logger,
		pageSize:      pageSize,
	}
}

// ListProducts возвращает страницу доступных товаров каталога
// с фильтрами по категории и диапазону цен.
func (s *StoreUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "StoreUseCase.ListProducts"

	categories, err := s.listCategories(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	filter := ProductFilter{
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}

	if req.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(ctx, req.CategorySlug)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		filter.CategoryID = &category.ID
	}

	page := normalizePage(req.Page)
	filter.Limit = s.pageSize
	filter.Offset = (page - 1) * s.pageSize

	products, count, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ListProductsRes{
		Products:     products,
		ProductCount: count,
		Categories:   categories,
		Page:         page,
		PageSize:     s.pageSize,
	}, nil
}

// SearchProducts ищет товары по подстроке в названии, имени художника
// и значениях вариаций.
func (s *StoreUseCase) SearchProducts(ctx context.Context, req *SearchProductsReq) (*ListProductsRes, error) {
	const op = "StoreUseCase.SearchProducts"

	page := normalizePage(req.Page)
	res := &ListProductsRes{
		Products: []ProductInfo{},
		Page:     page,
		PageSize: s.pageSize,
	}

	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return res, nil
	}

	products, count, err := s.productRepo.Search(ctx, keyword, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res.Products = products
	res.ProductCount = count
	return res, nil
}

// GetProductDetail возвращает карточку товара с признаком наличия в корзине запрашивающего.
func (s *StoreUseCase) GetProductDetail(ctx context.Context, req *ProductDetailReq) (*ProductDetailRes, error) {
	const op = "StoreUseCase.GetProductDetail"

	product, err := s.productRepo.GetBySlugs(ctx, req.CategorySlug, req.ProductSlug)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	variations, err := s.variationRepo.ListForProduct(ctx, product.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var colors, sizes []string
	for _, v := range variations {
		if !v.IsActive {
			continue
		}
		switch v.Category {
		case domain.VariationColor:
			colors = append(colors, v.Value)
		case domain.VariationSize:
			sizes = append(sizes, v.Value)
		}
	}

	inCart, err := s.isInCart(ctx, req.Identity, product.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ProductDetailRes{
		Product: ProductCard{
			ID:          product.ID,
			Name:        product.Name,
			Slug:        product.Slug,
			Description: product.Description,
			Artist:      product.Artist,
			Price:       product.Price,
			Stock:       product.Stock,
			IsAvailable: product.IsAvailable,
			Colors:      colors,
			Sizes:       sizes,
		},
		InCart: inCart,
	}, nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам,
// используя кэш с фоновым дозаполнением.
func (s *StoreUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "StoreUseCase.GetProductsInfo"

	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	cacheProductsMap, err := s.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, productID := range req.IDs {
			if _, ok := cacheProductsMap[productID]; !ok {
				nonCacheable = append(nonCacheable, productID)
			}
		}
	}

	var productsInfoFromDB []ProductInfo
	if len(nonCacheable) > 0 {
		productsInfoFromDB, err = s.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := s.cacheRepo.SetProducts(bgCtx, productsInfoFromDB); err != nil {
				s.logger.Warnf("Failed to cache products in background: %v", err)
			}
		}()
	}

	dbProductsMap := make(map[int64]ProductInfo, len(productsInfoFromDB))
	for _, productInfo := range productsInfoFromDB {
		dbProductsMap[productInfo.ID] = productInfo
	}

	result := make([]ProductInfo, 0, len(req.IDs))
	notFoundProducts := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cacheProductsMap[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[id]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, id)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// RegisterNewProduct регистрирует товар: идемпотентно создаёт категории и
// прайс-запись, апсертит товар по уникальному имени и загружает изображения в MinIO.
func (s *StoreUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*RegisterProductRes, error) {
	const op = "StoreUseCase.RegisterNewProduct"

	var err error
	if err = s.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		uploaded  bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных изображений
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imagesRes != nil {
				s.logger.Warnf(
					"Cleaning up orphaned images after transaction failure. product_name: %s, error: %v",
					req.Name,
					e.Wrap(op, err),
				)

				s.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := s.categoryRepo.Create(ctx, domain.NewCategory(req.CategoryName, slug.Make(req.CategoryName)))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var giftCategoryID int64
	if req.GiftCategoryName != "" {
		gift, err := s.categoryRepo.CreateGift(ctx, domain.NewGiftCategory(req.GiftCategoryName, slug.Make(req.GiftCategoryName)))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		giftCategoryID = gift.ID
	}

	price, err := s.productRepo.GetOrCreatePrice(ctx, req.Price)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := s.productRepo.Upsert(ctx, domain.NewProduct(
		req.Name,
		slug.Make(req.Name),
		req.Description,
		req.Artist,
		price.ID,
		req.Stock,
		category.ID,
		giftCategoryID,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(req.Images) > 0 {
		imagesRes, err = s.imagesInfra.UploadImages(ctx, NewUploadImagesReq(product.Slug, req.Images))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploaded = true

		if err = s.productRepo.SetImage(ctx, product.ID, imagesRes.ImagesKeys[0]); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := s.cacheRepo.DeleteProducts(ctx, []int64{product.ID}); err != nil {
		s.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}

	return &RegisterProductRes{ProductID: product.ID, Slug: product.Slug}, nil
}

// isInCart определяет, есть ли товар в корзине запрашивающего.
func (s *StoreUseCase) isInCart(ctx context.Context, identity domain.Identity, productID int64) (bool, error) {
	var owner CartOwner
	if identity.IsUser() {
		owner = NewUserOwner(identity.UserID)
	} else {
		cart, err := s.cartRepo.GetByToken(ctx, identity.CartToken)
		if err != nil {
			if errors.Is(err, e.ErrCartNotFound) {
				return false, nil
			}
			return false, err
		}
		owner = NewCartOwner(cart.ID)
	}

	return s.cartItemRepo.ExistsForProduct(ctx, owner, productID)
}

func (s *StoreUseCase) listCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{Name: c.Name, Slug: c.Slug})
	}

	return views, nil
}

// validateProduct проверяет корректность входных данных запроса на регистрацию товара.
func (s *StoreUseCase) validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if strings.TrimSpace(req.CategoryName) == "" {
		return e.ErrMissingFields
	}

	if strings.TrimSpace(req.Artist) == "" {
		return e.ErrMissingFields
	}

	if req.Price <= 0 {
		return e.ErrInvalidPrice
	}

	if req.Stock < 0 {
		return e.ErrInvalidStock
	}

	return nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

package http

import (
	"net/http"

	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type StoreHandler struct {
	storeUsecase usecase.StoreUC
	logger       logger.Logger
}

func NewStoreHandler(storeUsecase usecase.StoreUC, logger logger.Logger) *StoreHandler {
	return &StoreHandler{storeUsecase: storeUsecase, logger: logger}
}

type productInfoResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Artist   string `json:"artist"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

type categoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type productPageResponse struct {
	Products     []productInfoResponse `json:"products"`
	ProductCount int64                 `json:"product_count"`
	Categories   []categoryResponse    `json:"categories,omitempty"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

type productDetailResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Artist      string   `json:"artist"`
	Price       int64    `json:"price"`
	Stock       int32    `json:"stock"`
	IsAvailable bool     `json:"is_available"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	InCart      bool     `json:"in_cart"`
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает страницу доступных товаров с фильтрами по категории и диапазону цен
//	@Tags			store
//	@Produce		json
//	@Param			categorySlug	path		string	false	"Слаг категории"
//	@Param			min_price		query		number	false	"Минимальная цена"
//	@Param			max_price		query		number	false	"Максимальная цена"
//	@Param			page			query		int		false	"Номер страницы"
//	@Success		200				{object}	productPageResponse
//	@Failure		404				{object}	ErrorResponse	"Категория не найдена"
//	@Router			/store/{categorySlug} [get]
func (s *StoreHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	minPrice, err := parsePriceBound(r, "min_price")
	if err != nil {
		WriteError(w, err)
		return
	}
	maxPrice, err := parsePriceBound(r, "max_price")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := s.storeUsecase.ListProducts(r.Context(), &usecase.ListProductsReq{
		CategorySlug: chi.URLParam(r, "categorySlug"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Page:         parsePageParam(r),
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductPageResponse(res))
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Ищет товары по подстроке в названии, имени художника и значениях вариаций
//	@Tags			store
//	@Produce		json
//	@Param			keyword	query		string	true	"Поисковый запрос"
//	@Param			page	query		int		false	"Номер страницы"
//	@Success		200		{object}	productPageResponse
//	@Router			/store/search [get]
func (s *StoreHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.storeUsecase.SearchProducts(r.Context(), &usecase.SearchProductsReq{
		Keyword: r.URL.Query().Get("keyword"),
		Page:    parsePageParam(r),
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductPageResponse(res))
}

// productDetail
//
//	@Summary		Карточка товара
//	@Description	Возвращает товар по слагам категории и товара вместе с признаком наличия в корзине
//	@Tags			store
//	@Produce		json
//	@Param			categorySlug	path		string	true	"Слаг категории"
//	@Param			productSlug		path		string	true	"Слаг товара"
//	@Success		200				{object}	productDetailResponse
//	@Failure		404				{object}	ErrorResponse	"Товар не найден"
//	@Router			/store/{categorySlug}/{productSlug} [get]
func (s *StoreHandler) productDetail(w http.ResponseWriter, r *http.Request) {
	res, err := s.storeUsecase.GetProductDetail(r.Context(), &usecase.ProductDetailReq{
		Identity:     identityFromCtx(r.Context()),
		CategorySlug: chi.URLParam(r, "categorySlug"),
		ProductSlug:  chi.URLParam(r, "productSlug"),
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, productDetailResponse{
		ID:          res.Product.ID,
		Name:        res.Product.Name,
		Slug:        res.Product.Slug,
		Description: res.Product.Description,
		Artist:      res.Product.Artist,
		Price:       res.Product.Price,
		Stock:       res.Product.Stock,
		IsAvailable: res.Product.IsAvailable,
		Colors:      res.Product.Colors,
		Sizes:       res.Product.Sizes,
		InCart:      res.InCart,
	})
}

func newProductPageResponse(res *usecase.ListProductsRes) productPageResponse {
	products := make([]productInfoResponse, 0, len(res.Products))
	for _, p := range res.Products {
		products = append(products, productInfoResponse{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Artist:   p.Artist,
			Category: p.CategoryName,
			Price:    p.Price,
		})
	}

	categories := make([]categoryResponse, 0, len(res.Categories))
	for _, c := range res.Categories {
		categories = append(categories, categoryResponse{Name: c.Name, Slug: c.Slug})
	}

	return productPageResponse{
		Products:     products,
		ProductCount: res.ProductCount,
		Categories:   categories,
		Page:         res.Page,
		PageSize:     res.PageSize,
	}
}

package http

import (
	_ "github.com/artline-tech/shop-backend/docs" // Импорт сгенерированных файлов
	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(storeUC usecase.StoreUC, cartUC usecase.CartUC, orderUC usecase.OrderUC, identity *IdentityMiddleware) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(identity.Handler)

		storeHandler := NewStoreHandler(storeUC, r.logger)
		registerStoreRoutes(v1, storeHandler)

		productHandler := NewProductHandler(storeUC, r.logger)
		registerProductRoutes(v1, productHandler)

		cartHandler := NewCartHandler(cartUC, r.logger)
		registerCartRoutes(v1, cartHandler)

		orderHandler := NewOrderHandler(orderUC, cartUC, r.logger)
		registerOrderRoutes(v1, orderHandler)
	})
}

func registerStoreRoutes(router chi.Router, handler *StoreHandler) {
	router.Route("/store", func(st chi.Router) {
		st.Get("/", handler.listProducts)
		st.Get("/search", handler.searchProducts)
		st.Get("/{categorySlug}", handler.listProducts)
		st.Get("/{categorySlug}/{productSlug}", handler.productDetail)
	})
}

func registerProductRoutes(router chi.Router, handler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", handler.registerNewProduct)
	})
}

func registerCartRoutes(router chi.Router, handler *CartHandler) {
	router.Route("/cart", func(crt chi.Router) {
		crt.Get("/", handler.viewCart)
		crt.Post("/add/{productID}", handler.addToCart)
		crt.Post("/quick-add/{productID}", handler.quickAdd)
		crt.Post("/remove/{productID}/{itemID}", handler.removeFromCart)
	})
}

func registerOrderRoutes(router chi.Router, handler *OrderHandler) {
	router.Route("/orders", func(ord chi.Router) {
		ord.Get("/checkout", handler.checkout)
		ord.Post("/", handler.placeOrder)
	})
}

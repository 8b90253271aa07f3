package usecase

import (
	"context"

	"github.com/artline-tech/shop-backend/internal/domain"
)

type CartUC interface {
	AddToCart(ctx context.Context, req *AddToCartReq) error
	QuickAdd(ctx context.Context, req *QuickAddReq) error
	RemoveFromCart(ctx context.Context, req *RemoveFromCartReq) error
	ViewCart(ctx context.Context, identity domain.Identity) (*CartViewRes, error)
}

type OrderUC interface {
	PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*PlaceOrderRes, error)
}

type StoreUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*ListProductsRes, error)
	SearchProducts(ctx context.Context, req *SearchProductsReq) (*ListProductsRes, error)
	GetProductDetail(ctx context.Context, req *ProductDetailReq) (*ProductDetailRes, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*RegisterProductRes, error)
}

package usecase

import (
	"context"
	"testing"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFixture struct {
	uc         *StoreUseCase
	products   *listProductRepo
	categories *memCategoryRepo
	carts      *memCartRepo
	items      *memCartItemRepo
	variations *memVariationRepo
	cache      *memCacheRepo
	images     *fakeImagesInfra
	pool       *fakePool
}

func newStoreFixture(t *testing.T, pageSize int, products ...*domain.Product) *storeFixture {
	t.Helper()

	f := &storeFixture{
		products:   newListProductRepo(products...),
		categories: newMemCategoryRepo(),
		carts:      newMemCartRepo(),
		items:      newMemCartItemRepo(),
		variations: newMemVariationRepo(),
		cache:      newMemCacheRepo(),
		images:     &fakeImagesInfra{},
		pool:       newFakePool(),
	}

	f.uc = NewStoreUC(
		f.products,
		f.categories,
		f.variations,
		f.carts,
		f.items,
		f.cache,
		f.images,
		f.pool,
		nopLogger{},
		pageSize,
	)

	return f
}

func TestListProductsPagination(t *testing.T) {
	f := newStoreFixture(t, 20)
	f.products.listResult = []ProductInfo{NewProductInfo(1, "Sunset", "sunset", "Monet", "paintings", 10000)}
	f.products.listCount = 41

	res, err := f.uc.ListProducts(context.Background(), &ListProductsReq{Page: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Page)
	assert.Equal(t, 20, res.PageSize)
	assert.Equal(t, int64(41), res.ProductCount)
	assert.Equal(t, 20, f.products.listFilter.Limit)
	assert.Equal(t, 40, f.products.listFilter.Offset)
	assert.Nil(t, f.products.listFilter.CategoryID)
}

func TestListProductsNormalizesPage(t *testing.T) {
	f := newStoreFixture(t, 20)

	res, err := f.uc.ListProducts(context.Background(), &ListProductsReq{Page: -5})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 0, f.products.listFilter.Offset)
}

func TestListProductsByCategorySlug(t *testing.T) {
	f := newStoreFixture(t, 20)
	_, err := f.categories.Create(context.Background(), domain.NewCategory("Paintings", "paintings"))
	require.NoError(t, err)

	res, err := f.uc.ListProducts(context.Background(), &ListProductsReq{CategorySlug: "paintings"})
	require.NoError(t, err)

	require.NotNil(t, f.products.listFilter.CategoryID)
	assert.Equal(t, int64(1), *f.products.listFilter.CategoryID)
	require.Len(t, res.Categories, 1)
	assert.Equal(t, "paintings", res.Categories[0].Slug)
}

func TestListProductsUnknownCategory(t *testing.T) {
	f := newStoreFixture(t, 20)

	_, err := f.uc.ListProducts(context.Background(), &ListProductsReq{CategorySlug: "no-such"})

	assert.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestSearchProductsEmptyKeyword(t *testing.T) {
	f := newStoreFixture(t, 20)
	f.products.searchResult = []ProductInfo{NewProductInfo(1, "Sunset", "sunset", "Monet", "paintings", 10000)}
	f.products.searchCount = 1

	res, err := f.uc.SearchProducts(context.Background(), &SearchProductsReq{Keyword: "   "})
	require.NoError(t, err)

	// Пустой запрос не ходит в репозиторий
	assert.Empty(t, res.Products)
	assert.Zero(t, res.ProductCount)
	assert.Empty(t, f.products.searchKeyword)
}

func TestSearchProducts(t *testing.T) {
	f := newStoreFixture(t, 20)
	f.products.searchResult = []ProductInfo{NewProductInfo(1, "Sunset", "sunset", "Monet", "paintings", 10000)}
	f.products.searchCount = 1

	res, err := f.uc.SearchProducts(context.Background(), &SearchProductsReq{Keyword: " sun "})
	require.NoError(t, err)

	assert.Equal(t, "sun", f.products.searchKeyword)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(1), res.ProductCount)
}

func TestGetProductDetail(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Artist: "Monet", Price: 10000, Stock: 3, IsAvailable: true}
	f := newStoreFixture(t, 20, product)
	f.variations.variations[1] = domain.Variation{ID: 1, ProductID: 1, Category: domain.VariationColor, Value: "red", IsActive: true}
	f.variations.variations[2] = domain.Variation{ID: 2, ProductID: 1, Category: domain.VariationSize, Value: "M", IsActive: true}
	f.variations.variations[3] = domain.Variation{ID: 3, ProductID: 1, Category: domain.VariationSize, Value: "XL", IsActive: false}

	res, err := f.uc.GetProductDetail(context.Background(), &ProductDetailReq{
		Identity:     domain.NewUserIdentity(42),
		CategorySlug: "paintings",
		ProductSlug:  "sunset",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunset", res.Product.Name)
	assert.Equal(t, []string{"red"}, res.Product.Colors)
	// Неактивные вариации не попадают в карточку
	assert.Equal(t, []string{"M"}, res.Product.Sizes)
	assert.False(t, res.InCart)
}

func TestGetProductDetailInCart(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 3, IsAvailable: true}
	f := newStoreFixture(t, 20, product)

	_, err := f.items.Create(context.Background(), domain.NewCartItem(domain.NewUserIdentity(42), 0, 1, nil))
	require.NoError(t, err)

	res, err := f.uc.GetProductDetail(context.Background(), &ProductDetailReq{
		Identity:    domain.NewUserIdentity(42),
		ProductSlug: "sunset",
	})
	require.NoError(t, err)
	assert.True(t, res.InCart)
}

func TestGetProductDetailGuestWithoutCart(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, Stock: 3, IsAvailable: true}
	f := newStoreFixture(t, 20, product)

	res, err := f.uc.GetProductDetail(context.Background(), &ProductDetailReq{
		Identity:    domain.NewGuestIdentity("no-such-token"),
		ProductSlug: "sunset",
	})
	require.NoError(t, err)
	assert.False(t, res.InCart)
}

func TestGetProductsInfoReportsMissing(t *testing.T) {
	product := &domain.Product{ID: 1, Name: "Sunset", Slug: "sunset", Price: 10000, IsAvailable: true}
	f := newStoreFixture(t, 20, product)

	res, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1, 99}))
	require.NoError(t, err)

	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(1), res.Products[0].ID)
	assert.Equal(t, []int64{99}, res.NotFoundProducts)
}

func TestGetProductsInfoEmptyIDs(t *testing.T) {
	f := newStoreFixture(t, 20)

	_, err := f.uc.GetProductsInfo(context.Background(), NewGetProductsReq(nil))

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestRegisterNewProduct(t *testing.T) {
	f := newStoreFixture(t, 20)

	req := NewAddNewProductReq(
		"Закат над морем",
		"Картины",
		"Подарки",
		"Иван Айвазовский",
		"Холст, масло",
		1250000,
		5,
		[]ProductImage{{Data: []byte{1}, MimeType: "image/jpeg", Size: 1, Name: "front.jpg"}},
	)

	res, err := f.uc.RegisterNewProduct(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "zakat-nad-morem", res.Slug)
	require.Len(t, f.categories.categories, 1)
	assert.Equal(t, "kartiny", f.categories.categories[0].Slug)
	require.Len(t, f.categories.gifts, 1)

	product := f.products.products[res.ProductID]
	require.NotNil(t, product)
	assert.Equal(t, int32(5), product.Stock)
	assert.Equal(t, f.categories.gifts[0].ID, product.GiftCategoryID)

	require.Len(t, f.images.uploaded, 1)
	assert.Equal(t, f.images.uploaded[0][0], f.products.imageKeys[res.ProductID])
	assert.True(t, f.pool.tx.committed)
}

func TestRegisterNewProductWithoutImages(t *testing.T) {
	f := newStoreFixture(t, 20)

	req := NewAddNewProductReq("Sunset", "Paintings", "", "Monet", "", 10000, 1, nil)

	res, err := f.uc.RegisterNewProduct(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, f.images.uploaded)
	assert.Empty(t, f.products.imageKeys[res.ProductID])
	assert.Empty(t, f.categories.gifts)
}

func TestRegisterNewProductDuplicateSlug(t *testing.T) {
	f := newStoreFixture(t, 20)

	_, err := f.uc.RegisterNewProduct(context.Background(), NewAddNewProductReq("Foo Bar", "Paintings", "", "Monet", "", 10000, 1, nil))
	require.NoError(t, err)

	// "Foo-Bar" даёт тот же слаг foo-bar при другом уникальном имени
	_, err = f.uc.RegisterNewProduct(context.Background(), NewAddNewProductReq("Foo-Bar", "Paintings", "", "Monet", "", 10000, 1, nil))

	assert.ErrorIs(t, err, e.ErrProductSlugTaken)
	assert.True(t, f.pool.tx.rolledBack)
	require.Len(t, f.products.products, 1)
}

func TestRegisterNewProductCleansUpImagesOnFailure(t *testing.T) {
	f := newStoreFixture(t, 20)
	f.products.setImageErr = e.ErrInternalServerError

	req := NewAddNewProductReq(
		"Sunset", "Paintings", "", "Monet", "", 10000, 1,
		[]ProductImage{{Data: []byte{1}, MimeType: "image/jpeg", Size: 1, Name: "front.jpg"}},
	)

	_, err := f.uc.RegisterNewProduct(context.Background(), req)
	require.Error(t, err)

	// Загруженные изображения зачищаются после отката транзакции
	require.Len(t, f.images.cleaned, 1)
	assert.Equal(t, f.images.uploaded[0], f.images.cleaned[0])
	assert.True(t, f.pool.tx.rolledBack)
}

func TestRegisterNewProductValidation(t *testing.T) {
	f := newStoreFixture(t, 20)

	cases := []struct {
		name string
		req  *AddNewProductReq
		want error
	}{
		{"empty name", NewAddNewProductReq("  ", "Paintings", "", "Monet", "", 10000, 1, nil), e.ErrProductNameRequired},
		{"empty category", NewAddNewProductReq("Sunset", "", "", "Monet", "", 10000, 1, nil), e.ErrMissingFields},
		{"empty artist", NewAddNewProductReq("Sunset", "Paintings", "", " ", "", 10000, 1, nil), e.ErrMissingFields},
		{"zero price", NewAddNewProductReq("Sunset", "Paintings", "", "Monet", "", 0, 1, nil), e.ErrInvalidPrice},
		{"negative stock", NewAddNewProductReq("Sunset", "Paintings", "", "Monet", "", 10000, -1, nil), e.ErrInvalidStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterNewProduct(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

package usecase

import (
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
)

// CART USECASE

// SelectedOption — пара (категория, значение), присланная покупателем при добавлении товара.
type SelectedOption struct {
	Category string
	Value    string
}

// AddToCartReq — запрос на добавление товара в корзину.
type AddToCartReq struct {
	Identity  domain.Identity
	ProductID int64
	Options   []SelectedOption
}

// QuickAddReq — упрощённое повторное добавление товара без выбора вариаций.
type QuickAddReq struct {
	Identity  domain.Identity
	ProductID int64
}

// RemoveFromCartReq — запрос на удаление единицы товара из корзины.
type RemoveFromCartReq struct {
	Identity   domain.Identity
	ProductID  int64
	CartItemID int64
}

// VariationView — отображаемая вариация позиции корзины.
type VariationView struct {
	Category string
	Value    string
}

// CartItemView — позиция корзины с вычисленным подытогом.
type CartItemView struct {
	ID          int64
	ProductID   int64
	ProductName string
	UnitPrice   int64
	Quantity    int32
	SubTotal    int64
	Variations  []VariationView
}

// CartViewRes — содержимое корзины с итогами.
type CartViewRes struct {
	Items      []CartItemView
	Quantity   int32
	Total      int64
	Tax        int64
	GrandTotal int64
}

// CartOwner — конкретная привязка позиций корзины в хранилище:
// либо пользователь, либо анонимная корзина.
type CartOwner struct {
	UserID *int64
	CartID *int64
}

// ORDER USECASE

// CustomerInfo — контактные данные и адрес покупателя, снимок которых попадает в заказ.
type CustomerInfo struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	AddressLine1 string
	AddressLine2 string
	Country      string
	State        string
	City         string
	OrderNote    string
}

// PlaceOrderReq — запрос на оформление заказа.
type PlaceOrderReq struct {
	UserID   int64
	Customer CustomerInfo
	IP       string
}

// OrderView — DTO созданного заказа для ответа.
type OrderView struct {
	ID          int64
	OrderNumber string
	Status      domain.OrderStatus
	FullName    string
	Phone       string
	Email       string
	FullAddress string
	City        string
	State       string
	Country     string
	OrderNote   string
	CreatedAt   time.Time
}

// PlaceOrderRes — подтверждение заказа: заказ, позиции и итоги.
type PlaceOrderRes struct {
	Order      OrderView
	Items      []CartItemView
	Total      int64
	Tax        int64
	GrandTotal int64
}

// OrderNotification — полезная нагрузка события для SMS-уведомления.
type OrderNotification struct {
	Phone        string `json:"phone"`
	CustomerName string `json:"customer_name"`
	OrderNumber  string `json:"order_number"`
}

// STORE USECASE

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID           int64
	Name         string
	Slug         string
	Artist       string
	CategoryName string
	Price        int64
}

// ProductFilter — фильтр каталога на уровне репозитория.
type ProductFilter struct {
	CategoryID *int64
	MinPrice   *int64
	MaxPrice   *int64
	Limit      int
	Offset     int
}

// CategoryView — категория для навигации по каталогу.
type CategoryView struct {
	Name string
	Slug string
}

// ListProductsReq — запрос списка товаров каталога.
type ListProductsReq struct {
	CategorySlug string
	MinPrice     *int64
	MaxPrice     *int64
	Page         int
}

// ListProductsRes — страница каталога.
type ListProductsRes struct {
	Products     []ProductInfo
	ProductCount int64
	Categories   []CategoryView
	Page         int
	PageSize     int
}

// SearchProductsReq — поиск товаров по подстроке.
type SearchProductsReq struct {
	Keyword string
	Page    int
}

// ProductDetailReq — запрос карточки товара.
type ProductDetailReq struct {
	Identity     domain.Identity
	CategorySlug string
	ProductSlug  string
}

// ProductCard — карточка товара.
type ProductCard struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Artist      string
	Price       int64
	Stock       int32
	IsAvailable bool
	Colors      []string
	Sizes       []string
}

// ProductDetailRes — карточка товара с признаком наличия в корзине.
type ProductDetailRes struct {
	Product ProductCard
	InCart  bool
}

// GetProductsReq — запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// AddNewProductReq — запрос на регистрацию нового товара.
type AddNewProductReq struct {
	Name             string
	CategoryName     string
	GiftCategoryName string
	Artist           string
	Description      string
	Price            int64
	Stock            int32
	Images           []ProductImage
}

// RegisterProductRes — результат регистрации товара.
type RegisterProductRes struct {
	ProductID int64
	Slug      string
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// WriteRawMessageReq — готовое к отправке в брокер событие.
type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const OrderCreated OutboxEventType = "order_created"

// OutboxEvent — запись транзакционного outbox для асинхронных уведомлений.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewUserOwner(userID int64) CartOwner {
	return CartOwner{UserID: &userID}
}

func NewCartOwner(cartID int64) CartOwner {
	return CartOwner{CartID: &cartID}
}

func NewAddToCartReq(identity domain.Identity, productID int64, options []SelectedOption) *AddToCartReq {
	return &AddToCartReq{
		Identity:  identity,
		ProductID: productID,
		Options:   options,
	}
}

func NewQuickAddReq(identity domain.Identity, productID int64) *QuickAddReq {
	return &QuickAddReq{
		Identity:  identity,
		ProductID: productID,
	}
}

func NewRemoveFromCartReq(identity domain.Identity, productID, cartItemID int64) *RemoveFromCartReq {
	return &RemoveFromCartReq{
		Identity:   identity,
		ProductID:  productID,
		CartItemID: cartItemID,
	}
}

func NewPlaceOrderReq(userID int64, customer CustomerInfo, ip string) *PlaceOrderReq {
	return &PlaceOrderReq{
		UserID:   userID,
		Customer: customer,
		IP:       ip,
	}
}

func NewProductInfo(id int64, name, slug, artist, category string, price int64) ProductInfo {
	return ProductInfo{
		ID:           id,
		Name:         name,
		Slug:         slug,
		Artist:       artist,
		CategoryName: category,
		Price:        price,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewAddNewProductReq(name, categoryName, giftCategoryName, artist, description string, price int64, stock int32, images []ProductImage) *AddNewProductReq {
	return &AddNewProductReq{
		Name:             name,
		CategoryName:     categoryName,
		GiftCategoryName: giftCategoryName,
		Artist:           artist,
		Description:      description,
		Price:            price,
		Stock:            stock,
		Images:           images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}

package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID             int64
	Name           string
	Slug           string
	Description    string
	Artist         string
	PriceID        int64
	Price          int64 // Цена хранится в копейках
	Stock          int32
	IsAvailable    bool
	CategoryID     int64
	GiftCategoryID int64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

func NewProduct(name, slug, description, artist string, priceID int64, stock int32, categoryID, giftCategoryID int64) *Product {
	return &Product{
		Name:           name,
		Slug:           slug,
		Description:    description,
		Artist:         artist,
		PriceID:        priceID,
		Stock:          stock,
		IsAvailable:    true,
		CategoryID:     categoryID,
		GiftCategoryID: giftCategoryID,
	}
}

// Price — прайс-запись, на которую могут ссылаться несколько товаров
type Price struct {
	ID     int64
	Amount int64 // Сумма хранится в копейках
}

func NewPrice(amount int64) *Price {
	return &Price{Amount: amount}
}

package domain

import "time"

// Category описывает категорию товара
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(name, slug string) *Category {
	return &Category{
		Name: name,
		Slug: slug,
	}
}

// GiftCategory описывает подарочную категорию товара
type GiftCategory struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewGiftCategory(name, slug string) *GiftCategory {
	return &GiftCategory{
		Name: name,
		Slug: slug,
	}
}

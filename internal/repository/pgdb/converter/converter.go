//go:generate goverter gen github.com/artline-tech/shop-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOptionalID
// goverter:extend ConvertIDPointer
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// GiftCategoryConverter преобразует сущности GiftCategory между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type GiftCategoryConverter interface {
	ToModel(entity *domain.GiftCategory) *GiftCategoryModel
	ToEntity(model *GiftCategoryModel) *domain.GiftCategory
}

// CartItemConverter преобразует сущности CartItem между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertVariationSet
// goverter:extend ConvertVariationIDs
type CartItemConverter interface {
	ToModel(entity *domain.CartItem) *CartItemModel
	ToEntity(model *CartItemModel) *domain.CartItem
	ToArrEntity(models []*CartItemModel) []*domain.CartItem
}

// OrderConverter преобразует сущности Order между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel) *domain.Order
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOptionalID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func ConvertIDPointer(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func ConvertVariationSet(ids []int64) domain.VariationSet {
	return domain.VariationSet(ids).Normalize()
}

func ConvertVariationIDs(set domain.VariationSet) []int64 {
	return []int64(set.Normalize())
}

func ConvertOrderStatus(s domain.OrderStatus) domain.OrderStatus {
	return s
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}

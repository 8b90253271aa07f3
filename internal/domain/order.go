package domain

import (
	"fmt"
	"time"
)

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order — оформленный заказ. После создания изменяются только статус
// и номер заказа (дозаписывается сразу после вставки).
type Order struct {
	ID           int64
	UserID       int64
	OrderNumber  string
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
	OrderTotal   int64 // Сумма хранится в копейках
	Tax          int64 // Налог хранится в копейках
	Status       OrderStatus
	IP           string
	IsOrdered    bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// FullName возвращает полное имя покупателя.
func (o *Order) FullName() string {
	return fmt.Sprintf("%s %s", o.FirstName, o.LastName)
}

// FullAddress возвращает полный адрес покупателя.
func (o *Order) FullAddress() string {
	return fmt.Sprintf("%s %s", o.AddressLine1, o.AddressLine2)
}

// BuildOrderNumber формирует человекочитаемый номер заказа:
// дата создания в формате YYYYMMDD плюс первичный ключ.
func BuildOrderNumber(date time.Time, id int64) string {
	return fmt.Sprintf("%s%d", date.Format("20060102"), id)
}

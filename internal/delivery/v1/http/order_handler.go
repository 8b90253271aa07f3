package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	cartUsecase  usecase.CartUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, cartUsecase usecase.CartUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, cartUsecase: cartUsecase, logger: logger}
}

type orderResponse struct {
	ID          int64              `json:"id"`
	OrderNumber string             `json:"order_number"`
	Status      domain.OrderStatus `json:"status"`
	FullName    string             `json:"full_name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	FullAddress string             `json:"full_address"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	Country     string             `json:"country"`
	OrderNote   string             `json:"order_note,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type orderConfirmationResponse struct {
	Order      orderResponse      `json:"order"`
	Items      []cartItemResponse `json:"items"`
	Total      int64              `json:"total"`
	Tax        int64              `json:"tax"`
	GrandTotal int64              `json:"grand_total"`
}

// checkout
//
//	@Summary		Страница оформления заказа
//	@Description	Возвращает содержимое корзины с итогами для подтверждения перед оформлением
//	@Tags			orders
//	@Produce		json
//	@Success		200	{object}	cartViewResponse
//	@Failure		401	{object}	ErrorResponse	"Требуется аутентификация"
//	@Router			/orders/checkout [get]
func (o *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	identity := identityFromCtx(r.Context())
	if !identity.IsUser() {
		o.logger.Warnf("%d %s", http.StatusUnauthorized, e.ErrAuthRequired.Error())
		WriteError(w, e.ErrAuthRequired)
		return
	}

	res, err := o.cartUsecase.ViewCart(r.Context(), identity)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartViewResponse(res))
}

// placeOrder
//
//	@Summary		Оформление заказа
//	@Description	Превращает активную корзину пользователя в заказ; пустая корзина перенаправляет в каталог
//	@Tags			orders
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			first_name		formData	string	true	"Имя"
//	@Param			last_name		formData	string	true	"Фамилия"
//	@Param			phone			formData	string	true	"Телефон"
//	@Param			email			formData	string	true	"Email"
//	@Param			address_line_1	formData	string	true	"Адрес, строка 1"
//	@Param			address_line_2	formData	string	false	"Адрес, строка 2"
//	@Param			country			formData	string	true	"Страна"
//	@Param			state			formData	string	true	"Регион"
//	@Param			city			formData	string	true	"Город"
//	@Param			order_note		formData	string	false	"Комментарий к заказу"
//	@Success		201				{object}	orderConfirmationResponse
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		401				{object}	ErrorResponse	"Требуется аутентификация"
//	@Router			/orders [post]
func (o *OrderHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	identity := identityFromCtx(r.Context())
	if !identity.IsUser() {
		o.logger.Warnf("%d %s", http.StatusUnauthorized, e.ErrAuthRequired.Error())
		WriteError(w, e.ErrAuthRequired)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, err)
		return
	}

	customer := usecase.CustomerInfo{
		FirstName:    r.PostFormValue("first_name"),
		LastName:     r.PostFormValue("last_name"),
		Phone:        r.PostFormValue("phone"),
		Email:        r.PostFormValue("email"),
		AddressLine1: r.PostFormValue("address_line_1"),
		AddressLine2: r.PostFormValue("address_line_2"),
		Country:      r.PostFormValue("country"),
		State:        r.PostFormValue("state"),
		City:         r.PostFormValue("city"),
		OrderNote:    r.PostFormValue("order_note"),
	}

	res, err := o.orderUsecase.PlaceOrder(r.Context(), usecase.NewPlaceOrderReq(identity.UserID, customer, clientIP(r)))
	if err != nil {
		// Пустая корзина возвращает покупателя в каталог
		if errors.Is(err, e.ErrEmptyCart) {
			http.Redirect(w, r, "/api/v1/store", http.StatusSeeOther)
			return
		}

		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderConfirmationResponse(res))
}

func newOrderConfirmationResponse(res *usecase.PlaceOrderRes) orderConfirmationResponse {
	items := make([]cartItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		variations := make([]cartVariationResponse, 0, len(item.Variations))
		for _, v := range item.Variations {
			variations = append(variations, cartVariationResponse{Category: v.Category, Value: v.Value})
		}

		items = append(items, cartItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       item.ProductName,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			SubTotal:   item.SubTotal,
			Variations: variations,
		})
	}

	return orderConfirmationResponse{
		Order: orderResponse{
			ID:          res.Order.ID,
			OrderNumber: res.Order.OrderNumber,
			Status:      res.Order.Status,
			FullName:    res.Order.FullName,
			Phone:       res.Order.Phone,
			Email:       res.Order.Email,
			FullAddress: res.Order.FullAddress,
			City:        res.Order.City,
			State:       res.Order.State,
			Country:     res.Order.Country,
			OrderNote:   res.Order.OrderNote,
			CreatedAt:   res.Order.CreatedAt,
		},
		Items:      items,
		Total:      res.Total,
		Tax:        res.Tax,
		GrandTotal: res.GrandTotal,
	}
}

package http

import (
	"net/http"

	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type cartVariationResponse struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

type cartItemResponse struct {
	ID         int64                   `json:"id"`
	ProductID  int64                   `json:"product_id"`
	Name       string                  `json:"name"`
	UnitPrice  int64                   `json:"unit_price"`
	Quantity   int32                   `json:"quantity"`
	SubTotal   int64                   `json:"sub_total"`
	Variations []cartVariationResponse `json:"variations"`
}

type cartViewResponse struct {
	Items      []cartItemResponse `json:"items"`
	Quantity   int32              `json:"quantity"`
	Total      int64              `json:"total"`
	Tax        int64              `json:"tax"`
	GrandTotal int64              `json:"grand_total"`
}

// viewCart
//
//	@Summary		Просмотр корзины
//	@Description	Возвращает активные позиции корзины с подытогами, налогом и итогом
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	cartViewResponse
//	@Router			/cart [get]
func (c *CartHandler) viewCart(w http.ResponseWriter, r *http.Request) {
	res, err := c.cartUsecase.ViewCart(r.Context(), identityFromCtx(r.Context()))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartViewResponse(res))
}

// addToCart
//
//	@Summary		Добавление товара в корзину
//	@Description	Добавляет единицу товара с выбранным набором вариаций; все поля формы трактуются как пары (категория, значение)
//	@Tags			cart
//	@Accept			x-www-form-urlencoded
//	@Param			productID	path	int	true	"ID товара"
//	@Success		303			"Перенаправление на корзину"
//	@Failure		404			{object}	ErrorResponse	"Товар не найден"
//	@Failure		409			{object}	ErrorResponse	"Недостаточно остатка"
//	@Router			/cart/add/{productID} [post]
func (c *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, err)
		return
	}

	// Каждое поле формы — пара (категория вариации, выбранное значение)
	options := make([]usecase.SelectedOption, 0, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		options = append(options, usecase.SelectedOption{Category: key, Value: values[0]})
	}

	if err := c.cartUsecase.AddToCart(r.Context(), usecase.NewAddToCartReq(identityFromCtx(r.Context()), productID, options)); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	http.Redirect(w, r, "/api/v1/cart", http.StatusSeeOther)
}

// quickAdd
//
//	@Summary		Быстрое добавление товара
//	@Description	Увеличивает первую позицию корзины по товару или создаёт позицию без вариаций
//	@Tags			cart
//	@Param			productID	path	int	true	"ID товара"
//	@Success		303			"Перенаправление на корзину"
//	@Failure		409			{object}	ErrorResponse	"Недостаточно остатка"
//	@Router			/cart/quick-add/{productID} [post]
func (c *CartHandler) quickAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.cartUsecase.QuickAdd(r.Context(), usecase.NewQuickAddReq(identityFromCtx(r.Context()), productID)); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	http.Redirect(w, r, "/api/v1/cart", http.StatusSeeOther)
}

// removeFromCart
//
//	@Summary		Удаление единицы товара из корзины
//	@Description	Уменьшает позицию на единицу либо удаляет её целиком; отсутствующая позиция игнорируется
//	@Tags			cart
//	@Param			productID	path	int	true	"ID товара"
//	@Param			itemID		path	int	true	"ID позиции корзины"
//	@Success		303			"Перенаправление на корзину"
//	@Router			/cart/remove/{productID}/{itemID} [post]
func (c *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID, err := parsePathID(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}
	itemID, err := parsePathID(r, "itemID")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.cartUsecase.RemoveFromCart(r.Context(), usecase.NewRemoveFromCartReq(identityFromCtx(r.Context()), productID, itemID)); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	http.Redirect(w, r, "/api/v1/cart", http.StatusSeeOther)
}

func newCartViewResponse(res *usecase.CartViewRes) cartViewResponse {
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

	return cartViewResponse{
		Items:      items,
		Quantity:   res.Quantity,
		Total:      res.Total,
		Tax:        res.Tax,
		GrandTotal: res.GrandTotal,
	}
}

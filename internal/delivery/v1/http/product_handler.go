package http

import (
	"errors"
	"net/http"

	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/logger"
)

type ProductHandler struct {
	storeUsecase usecase.StoreUC
	logger       logger.Logger
}

func NewProductHandler(storeUsecase usecase.StoreUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{storeUsecase: storeUsecase, logger: logger}
}

// registerNewProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает новый товар в каталоге с изображениями
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string					true	"Название товара"
//	@Param			category		formData	string					true	"Категория"
//	@Param			gift_category	formData	string					false	"Подарочная категория"
//	@Param			artist			formData	string					true	"Художник"
//	@Param			description		formData	string					false	"Описание"
//	@Param			price			formData	number					true	"Цена"
//	@Param			stock			formData	int						false	"Остаток"
//	@Param			images			formData	file					false	"Изображения товара"
//	@Success		201				{object}	map[string]interface{}	"Успешное создание"
//	@Failure		400				{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) registerNewProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	prMeta, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		if !errors.Is(err, e.ErrNoImages) {
			p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
			WriteError(w, err)
			return
		}
	}

	res, err := p.storeUsecase.RegisterNewProduct(r.Context(), usecase.NewAddNewProductReq(
		prMeta.Name,
		prMeta.CategoryName,
		prMeta.GiftCategoryName,
		prMeta.Artist,
		prMeta.Description,
		prMeta.Price,
		prMeta.Stock,
		images,
	))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"ProductID": res.ProductID,
		"Slug":      res.Slug,
	})
}

package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrCartNotFound     = fmt.Errorf("cart not found")
	ErrCartItemNotFound = fmt.Errorf("cart item not found")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrMissingFields        = fmt.Errorf("required fields are missing")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidStock         = fmt.Errorf("invalid stock value")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 401 Unauthorized
	ErrAuthRequired = fmt.Errorf("authentication required")

	// 409 Conflict
	ErrInsufficientStock = fmt.Errorf("insufficient stock")
	ErrProductSlugTaken  = fmt.Errorf("product slug already taken")

	// Бизнес-ошибки корзины и заказов
	ErrEmptyCart = fmt.Errorf("cart is empty")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

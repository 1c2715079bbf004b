package domain

import "fmt"

// ErrorCode стабильный код клиентской ошибки, уходит в ответ как error_code
type ErrorCode int

const (
	MissingRequiredInputs      ErrorCode = 1
	InvalidOrderTotal          ErrorCode = 2
	MissingOrderItems          ErrorCode = 3
	NonExistingCustomer        ErrorCode = 4
	InvalidOrderQuantity       ErrorCode = 5
	NonExistingProduct         ErrorCode = 6
	NonExistingOrder           ErrorCode = 7
	NonExistingOrderStatus     ErrorCode = 8
	NonExistingDistributionHub ErrorCode = 9
)

var codeNames = map[ErrorCode]string{
	MissingRequiredInputs:      "missing_required_inputs",
	InvalidOrderTotal:          "invalid_order_total",
	MissingOrderItems:          "missing_order_items",
	NonExistingCustomer:        "non_existing_customer",
	InvalidOrderQuantity:       "invalid_order_quantity",
	NonExistingProduct:         "non_existing_product",
	NonExistingOrder:           "non_existing_order",
	NonExistingOrderStatus:     "non_existing_order_status",
	NonExistingDistributionHub: "non_existing_distribution_hub",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("error_code_%d", int(c))
}

// ValidationError ошибка входных данных с одним кодом
type ValidationError struct {
	Code ErrorCode
}

func NewValidationError(code ErrorCode) *ValidationError {
	return &ValidationError{Code: code}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Code.String()
}

// Is matches any *ValidationError carrying the same code.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

package orders

import "fmt"

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindConflict
	KindExternal
)

// Error is the typed failure surface of the order engine. Code is a stable
// machine-readable tag; Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

var (
	ErrEmptyCart = &Error{KindValidation, "EMPTY_CART", "cart is empty"}

	ErrMissingFields = &Error{KindValidation, "MISSING_FIELDS", "all required fields must be provided"}

	ErrOrderNotFound = &Error{KindNotFound, "ORDER_NOT_FOUND", "order not found"}

	ErrAdminOnly = &Error{KindUnauthorized, "ADMIN_ONLY", "only admins can modify orders"}

	ErrNotAssignedRider = &Error{KindUnauthorized, "NOT_ASSIGNED_RIDER", "unauthorized to modify this order"}

	ErrInvalidDeliveryFee = &Error{KindConflict, "INVALID_DELIVERY_FEE", "invalid delivery fee"}

	ErrAlreadyDelivered = &Error{KindConflict, "ALREADY_DELIVERED", "order already delivered"}

	ErrInvalidState = &Error{KindConflict, "INVALID_STATE", "order is not awaiting payment"}

	ErrInvalidRider = &Error{KindConflict, "INVALID_RIDER", "invalid rider"}

	ErrInvalidAction = &Error{KindValidation, "INVALID_ACTION", "invalid action"}

	ErrInvalidDeliveryStatus = &Error{KindValidation, "INVALID_DELIVERY_STATUS", "invalid delivery status"}

	ErrPaymentVerificationFailed = &Error{KindConflict, "PAYMENT_VERIFICATION_FAILED", "payment verification failed"}

	ErrPaymentUnavailable = &Error{KindExternal, "PAYMENT_UNAVAILABLE", "payment verifier unreachable"}
)

// InsufficientStock names the first product that could not be reserved.
func InsufficientStock(productName string) *Error {
	if productName == "" {
		productName = "item"
	}
	return &Error{KindConflict, "INSUFFICIENT_STOCK", fmt.Sprintf("insufficient stock for %s", productName)}
}

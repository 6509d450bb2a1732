package checkout

import "fmt"

// Error is a checkout failure with a machine-readable code. The HTTP layer
// maps codes to status codes; the core only decides what went wrong.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation failures, in the order the validator checks them. Each aborts
// the request; none produce a partial instruction.
var (
	ErrMissingAccount                = &Error{Code: "missing_account", Message: "missing account"}
	ErrInvalidAccount                = &Error{Code: "invalid_account", Message: "invalid account"}
	ErrCustomerNotFound              = &Error{Code: "customer_not_found", Message: "customer not found"}
	ErrCustomerAccountNotInitialized = &Error{Code: "customer_account_not_initialized", Message: "customer not initialized"}
	ErrCustomerAccountFrozen         = &Error{Code: "customer_account_frozen", Message: "customer frozen"}
	ErrMerchantAccountCreationFailed = &Error{Code: "merchant_account_creation_failed", Message: "merchant account creation failed"}
	ErrMerchantAccountNotInitialized = &Error{Code: "merchant_account_not_initialized", Message: "merchant not initialized"}
	ErrMerchantAccountFrozen         = &Error{Code: "merchant_account_frozen", Message: "merchant frozen"}
	ErrMintNotInitialized            = &Error{Code: "mint_not_initialized", Message: "mint not initialized"}
	ErrInsufficientFunds             = &Error{Code: "insufficient_funds", Message: "insufficient funds"}
)

// fail wraps a sentinel with its cause while keeping errors.Is matching the
// sentinel.
func fail(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}

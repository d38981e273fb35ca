package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusConflict         = http.StatusConflict
	ErrStatusBadGateway       = http.StatusBadGateway
)

var (
	ErrInternalServer            = errors.New("Internal server error")
	ErrClient                    = errors.New("Bad request")
	ErrNotLoggedIn               = errors.New("Not authorized, token failed")
	ErrInvalidCredentialsEmail   = errors.New("Invalid email or password")
	ErrUnauthorized              = errors.New("Not authorized as an admin")
	ErrForbidden                 = errors.New("Forbidden access")
	ErrNotFound                  = errors.New("Resource not found")
	ErrProductNotFound           = errors.New("Product not found")
	ErrOrderNotFound             = errors.New("Order not found")
	ErrAccountNotFound           = errors.New("User not found")
	ErrEmailAlreadyUsed          = errors.New("User already exists")
	ErrConflict                  = errors.New("Conflicting record found")
	ErrCannotDeleteAdmin         = errors.New("Can not delete admin user")
	ErrInvalidProduct            = errors.New("Invalid product data")
	ErrInvalidReview             = errors.New("Rating must be between 1 and 5 and comment is required")
	ErrProductAlreadyReviewed    = errors.New("Product already reviewed")
	ErrNoOrderItems              = errors.New("No order items")
	ErrInsufficientStock         = errors.New("Insufficient stock for one or more items")
	ErrOrderAlreadyPaid          = errors.New("Order has already been paid")
	ErrPaymentVerificationFailed = errors.New("Payment verification failed")
	ErrPaymentProcessor          = errors.New("Error verifying payment")
	ErrPaymentNotFound           = errors.New("Payment not found at processor")
	ErrInventoryFeed             = errors.New("Failed to fetch inventory data")
	ErrInvalidSeedSecret         = errors.New("Invalid seed secret")
	ErrSeedNotConfigured         = errors.New("Seed secret is not configured")
)

var errorMap = map[error]int{
	ErrInternalServer:            ErrStatusInternalServer,
	ErrClient:                    ErrStatusClient,
	ErrNotLoggedIn:               ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail:   ErrStatusUnauthorized,
	ErrUnauthorized:              ErrStatusNoPermission,
	ErrForbidden:                 ErrStatusNoPermission,
	ErrNotFound:                  ErrStatusNotFound,
	ErrProductNotFound:           ErrStatusNotFound,
	ErrOrderNotFound:             ErrStatusNotFound,
	ErrAccountNotFound:           ErrStatusNotFound,
	ErrEmailAlreadyUsed:          ErrStatusEmailAlreadyUsed,
	ErrConflict:                  ErrStatusConflict,
	ErrCannotDeleteAdmin:         ErrStatusClient,
	ErrInvalidProduct:            ErrStatusClient,
	ErrInvalidReview:             ErrStatusClient,
	ErrProductAlreadyReviewed:    ErrStatusConflict,
	ErrNoOrderItems:              ErrStatusClient,
	ErrInsufficientStock:         ErrStatusConflict,
	ErrOrderAlreadyPaid:          ErrStatusConflict,
	ErrPaymentVerificationFailed: ErrStatusClient,
	ErrPaymentProcessor:          ErrStatusBadGateway,
	ErrPaymentNotFound:           ErrStatusClient,
	ErrInventoryFeed:             ErrStatusBadGateway,
	ErrInvalidSeedSecret:         ErrStatusUnauthorized,
	ErrSeedNotConfigured:         ErrStatusInternalServer,
}

// GetErrorStatusCode resolves wrapped sentinels too. Anything unknown is a 500.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

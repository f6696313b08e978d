package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// City errors
var (
	ErrCityNotFound      = errors.New("city not found")
	ErrCityAlreadyExists = errors.New("city with this name already exists in the state")
	ErrCityHasRelations  = errors.New("city has associated data and cannot be deleted")
)

// Community errors
var (
	ErrCommunityNotFound     = errors.New("community not found")
	ErrCommunityHasEvents    = errors.New("community is referenced by events and cannot be deleted")
	ErrTransferSameCommunity = errors.New("transfer target must differ from the source community")
)

// Venue errors
var (
	ErrVenueNotFound      = errors.New("venue not found")
	ErrVenueAlreadyExists = errors.New("venue with this name already exists in the city")
)

// Event errors
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidDateRange = errors.New("event end date must not be before its start date")
	ErrInvalidEventType = errors.New("unknown event type")
	ErrEventNotArchived = errors.New("archived event not found")
)

// Subscription errors
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Duplicate review errors
var (
	ErrDuplicateNotFound        = errors.New("duplicate record not found")
	ErrDuplicateAlreadyResolved = errors.New("duplicate record already resolved")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

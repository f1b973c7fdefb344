package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("reset password token is invalid or has been expired")
	ErrUnauthorized       = errors.New("please login to access this resource")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrNotFound        = errors.New("resource not found")
	ErrProductNotFound = fmt.Errorf("product not found: %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("review not found: %w", ErrNotFound)

	ErrValidation        = errors.New("invalid input data")
	ErrPasswordMismatch  = fmt.Errorf("password does not match: %w", ErrValidation)
	ErrOldPasswordWrong  = fmt.Errorf("old password is incorrect: %w", ErrValidation)
	ErrMissingCredential = fmt.Errorf("please enter email & password: %w", ErrValidation)

	ErrConflict          = errors.New("resource was modified concurrently")
	ErrUserAlreadyExists = fmt.Errorf("user already exists: %w", ErrConflict)

	ErrUpstream        = errors.New("upstream service failure")
	ErrRateLimited     = fmt.Errorf("upstream rate limit exceeded: %w", ErrUpstream)
	ErrPayloadTooLarge = fmt.Errorf("upstream rejected payload size: %w", ErrUpstream)
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps a validator failure so that it maps to a 400 response.
func Validation(message string, err error) *AppError {
	if err == nil {
		err = ErrValidation
	} else {
		err = fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return NewAppError("VALIDATION_ERROR", message, err)
}

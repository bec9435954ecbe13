package domain

import (
	"errors"
	"fmt"
)

const ErrorContext = "UserManagement"

// Error is a user management failure with a stable numeric code
type Error struct {
	Code        int
	Name        string
	Description string
	Method      string
	Err         error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Description)
	if e.Method != "" {
		msg = e.Method + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// In returns a copy of e tagged with the method that detected it.
func (e *Error) In(method string) *Error {
	c := *e
	c.Method = method
	return &c
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

func newError(code int, name, description string) *Error {
	return &Error{Code: code, Name: name, Description: description}
}

var (
	ErrInternal                  = newError(16001, "InternalError", "Internal server error")
	ErrPermissionDenied          = newError(16002, "PermissionDenied", "Permission denied")
	ErrMissingData               = newError(16010, "MissingData", "User missing data")
	ErrUsernameAlreadyUsed       = newError(16011, "UsernameAlreadyUsed", "Username already used")
	ErrInvalidFormat             = newError(16012, "InvalidFormat", "Invalid username format")
	ErrMissingBusiness           = newError(16013, "MissingBusiness", "Missing business id")
	ErrEmailAlreadyUsed          = newError(16014, "EmailAlreadyUsed", "Email already used")
	ErrSelfUpdateForbidden       = newError(16015, "SelfUpdateForbidden", "You cannot update your own info")
	ErrCrossBusinessForbidden    = newError(16016, "CrossBusinessForbidden", "User belongs to other business")
	ErrInvalidCredentialsOrToken = newError(16017, "InvalidCredentialsOrToken", "Invalid user credentials or token")
	ErrCredentialsAlreadyExist   = newError(16018, "CredentialsAlreadyExist", "User credentials already exist")
	ErrUserNotFound              = newError(16019, "UserNotFound", "User not found")
	ErrNoAuthCredentials         = newError(16020, "NoAuthCredentials", "User does not have auth credentials")
	ErrDeletionNotConfirmed      = newError(16021, "DeletionNotConfirmed", "Auth credentials deletion could not be confirmed")
)

// Aliases used by the gateway clients.
var (
	ErrBelongsToOtherBusiness = ErrCrossBusinessForbidden
	ErrCannotUpdateOwnInfo    = ErrSelfUpdateForbidden
)

// AsError converts err into a *Error, wrapping unknown errors as ErrInternal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return ErrInternal.Wrap(err)
}

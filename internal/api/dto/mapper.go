package dto

import (
	"net/http"

	"github.com/kingrain94/user-management-api/internal/domain"
)

// Success wraps data into a successful Response
func Success(data any) Response {
	return Response{
		Data:   data,
		Result: Result{Code: http.StatusOK},
	}
}

// Failure converts err into an error Response. Unknown errors become InternalError.
func Failure(err error) Response {
	domainErr := domain.AsError(err)
	return Response{
		Data: nil,
		Result: Result{
			Code: domainErr.Code,
			Error: &ErrorContent{
				Name:   domain.ErrorContext,
				Code:   domainErr.Code,
				Msg:    domainErr.Description,
				Method: domainErr.Method,
			},
		},
	}
}

// NewMutationResult builds the data of a successful mutation
func NewMutationResult(message string) *MutationResult {
	return &MutationResult{Code: http.StatusOK, Message: message}
}

// FromRoleNames never returns a nil slice so the role list encodes as []
func FromRoleNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

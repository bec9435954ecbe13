package dto

import (
	"encoding/json"

	"github.com/kingrain94/user-management-api/internal/domain"
)

// GraphQLRequest is the payload forwarded by a gateway for a query or mutation
type GraphQLRequest struct {
	Root json.RawMessage `json:"root,omitempty" swaggertype:"object"`
	Args json.RawMessage `json:"args,omitempty" swaggertype:"object"`
	JWT  string          `json:"jwt,omitempty"`
}

type GetUsersArgs struct {
	Page         int    `json:"page"`
	Count        int    `json:"count"`
	SearchFilter string `json:"searchFilter"`
	BusinessID   string `json:"businessId"`
}

type GetUserArgs struct {
	ID         string `json:"id"`
	BusinessID string `json:"businessId"`
}

type GetUserCountArgs struct {
	BusinessID string `json:"businessId"`
}

type GetUserRoleMappingArgs struct {
	UserID string `json:"userId"`
}

// NoArgs is used by operations without arguments
type NoArgs struct{}

type UserInput struct {
	GeneralInfo *domain.GeneralInfo `json:"generalInfo"`
	State       *bool               `json:"state"`
}

type CreateUserArgs struct {
	BusinessID string     `json:"businessId"`
	Input      *UserInput `json:"input"`
}

type UpdateUserGeneralInfoArgs struct {
	UserID string     `json:"userId"`
	Input  *UserInput `json:"input"`
}

type UpdateUserStateArgs struct {
	UserID string `json:"userId"`
	State  *bool  `json:"state"`
}

type AuthInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Temporary bool   `json:"temporary"`
}

type CreateUserAuthArgs struct {
	UserID string     `json:"userId"`
	Input  *AuthInput `json:"input"`
}

type RemoveUserAuthArgs struct {
	UserID string `json:"userId"`
}

type PasswordInput struct {
	Password  string `json:"password"`
	Temporary bool   `json:"temporary"`
}

type ResetUserPasswordArgs struct {
	UserID string         `json:"userId"`
	Input  *PasswordInput `json:"input"`
}

type RolesInput struct {
	Roles []string `json:"roles"`
}

type UserRolesArgs struct {
	UserID string      `json:"userId"`
	Input  *RolesInput `json:"input"`
}

type ExportUserHistoryArgs struct {
	UserID string `json:"userId"`
}

type GetTokenArgs struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	RefreshToken string `json:"refreshToken"`
}

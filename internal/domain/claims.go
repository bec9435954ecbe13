package domain

import "github.com/golang-jwt/jwt/v5"

type RealmAccess struct {
	Roles []string `json:"roles"`
}

// AuthToken holds the verified claims of a caller
type AuthToken struct {
	jwt.RegisteredClaims
	PreferredUsername string      `json:"preferred_username,omitempty"`
	BusinessID        string      `json:"businessId,omitempty"`
	RealmAccess       RealmAccess `json:"realm_access"`
}

// UserID is the subject of the token.
func (t *AuthToken) UserID() string {
	if t == nil {
		return ""
	}
	return t.Subject
}

func (t *AuthToken) Roles() []string {
	if t == nil {
		return nil
	}
	return t.RealmAccess.Roles
}

func (t *AuthToken) IsPlatformAdmin() bool {
	return HasRole(t.Roles(), RolePlatformAdmin)
}

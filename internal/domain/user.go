package domain

import (
	"strings"
	"time"
)

type GeneralInfo struct {
	Name         string `gorm:"type:text;not null" json:"name"`
	Lastname     string `gorm:"type:text;not null" json:"lastname"`
	DocumentType string `gorm:"type:text" json:"documentType"`
	DocumentID   string `gorm:"type:text" json:"documentId"`
	Email        string `gorm:"type:text;not null" json:"email"`
	Phone        string `gorm:"type:text" json:"phone"`
}

// Normalize trims every field and lower-cases the email.
func (g GeneralInfo) Normalize() GeneralInfo {
	return GeneralInfo{
		Name:         strings.TrimSpace(g.Name),
		Lastname:     strings.TrimSpace(g.Lastname),
		DocumentType: strings.TrimSpace(g.DocumentType),
		DocumentID:   strings.TrimSpace(g.DocumentID),
		Email:        strings.ToLower(strings.TrimSpace(g.Email)),
		Phone:        strings.TrimSpace(g.Phone),
	}
}

// AuthLink binds a profile to its identity provider account
type AuthLink struct {
	UserKeycloakID string `json:"userKeycloakId"`
	Username       string `json:"username"`
}

type User struct {
	ID          string      `gorm:"primaryKey;type:text" json:"_id"`
	BusinessID  string      `gorm:"type:text;not null;index" json:"businessId"`
	GeneralInfo GeneralInfo `gorm:"embedded;embeddedPrefix:general_info_" json:"generalInfo"`
	Auth        *AuthLink   `gorm:"type:jsonb;serializer:json" json:"auth,omitempty"`
	Roles       []string    `gorm:"type:jsonb;serializer:json;not null" json:"roles"`
	State       bool        `gorm:"not null" json:"state"`
	CreatedAt   time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// HasAuth reports whether the user is linked to an identity provider account.
func (u *User) HasAuth() bool {
	return u.Auth != nil && u.Auth.UserKeycloakID != ""
}

type UserFilter struct {
	BusinessID   string `json:"businessId"`
	SearchFilter string `json:"searchFilter"`
	Page         int    `json:"page"`
	Count        int    `json:"count"`
}

// Offset is the number of rows skipped for the requested page.
func (f UserFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return f.Page * f.Count
}

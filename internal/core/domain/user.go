package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// AdminUser models an account in the dashboard's own authentication store,
// distinct from whatever users the RAG platform tracks on its side.
//
// Admission state machine: a freshly registered account is PENDING
// (IsActive=false, IsActivated=false, activation token set). Consuming the
// activation token moves it to ACTIVE (both flags true, token cleared).
// There is no path back to PENDING. An activated account whose IsActive was
// later revoked is DISABLED and refused at login.
type AdminUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	IsActivated  bool   `json:"isActivated"`

	// ActivationToken is single-use and time-limited. Both fields are nil
	// once the token has been consumed.
	ActivationToken        string     `json:"-"`
	ActivationTokenExpires *time.Time `json:"-"`

	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	AvatarColor string     `json:"avatarColor"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FullName joins first and last name for display and email templates.
func (u *AdminUser) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

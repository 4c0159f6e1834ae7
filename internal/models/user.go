package models

import "strconv"

// Role values recognized by the backend.
const (
	RoleCustomer       = "customer"
	RoleAdmin          = "admin"
	RoleProductManager = "product_manager"
	RoleSalesManager   = "sales_manager"
	RoleSupport        = "support"
)

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	TaxID     string `json:"taxId"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"` // unix millis, session expiry
}

// Identity returns the storage-key suffix for this user: id if known,
// otherwise email.
func (u *User) Identity() string {
	if u == nil {
		return ""
	}
	if u.ID > 0 {
		return strconv.FormatInt(u.ID, 10)
	}
	return u.Email
}

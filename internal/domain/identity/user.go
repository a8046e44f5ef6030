package identity

import "time"

// Role is the backend-assigned authorization level
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User is the signed-in profile (or an admin-listed account)
type User struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	ProfileImg string     `json:"profileImg,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	Role       Role       `json:"role"`
	Active     *bool      `json:"active,omitempty"`
	Wishlist   []string   `json:"wishlist,omitempty"`
	Addresses  []Address  `json:"addresses,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// CanManage reports whether the user may reach the admin back-office
func (u *User) CanManage() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// Session is a bearer credential plus the profile it authenticates. It is the
// only client-owned authentication state and is persisted across restarts.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

package domain

// UserRoleEndUser is the helpdesk role for customers.
const UserRoleEndUser = "end-user"

// User is a remote helpdesk user. The bridge reads or creates users, never updates them.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

// UserCreate is the payload for creating a helpdesk user.
type UserCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	Phone    string `json:"phone,omitempty"`
}

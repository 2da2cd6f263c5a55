package dto

// User is the users-permissions account representation.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
	Blocked   bool   `json:"blocked"`
	Role      *Role  `json:"role,omitempty"`
}

// AssignRoleRequest is the body of PUT /api/users/{id}.
type AssignRoleRequest struct {
	Role int `json:"role" validate:"required,gt=0"`
}

// UserSeedInput describes a demo account to create.
type UserSeedInput struct {
	Username string
	Email    string
	Password string
	RoleName string
}

package dto

// RegisterRequest is the body of POST /api/auth/local/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterResponse is returned by a successful registration. User is nil
// when the service answered 2xx without a user object.
type RegisterResponse struct {
	JWT  string `json:"jwt"`
	User *User  `json:"user"`
}

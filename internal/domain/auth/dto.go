package auth

type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	FirstName string   `json:"first_name" validate:"required,min=2"`
	LastName  string   `json:"last_name" validate:"required,min=2"`
	Phone     string   `json:"phone"`
	Role      UserRole `json:"role" validate:"omitempty,oneof=doctor patient"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

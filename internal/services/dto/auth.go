package dto

type RegisterRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// AuthResponse carries the bearer token issued on login/registration.
// Clients keep it as a fallback for requests where the session cookie is
// not delivered.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

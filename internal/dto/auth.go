package dto

// ── auth ──

// SignupRequest account creation
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName"  binding:"required,max=100"`
	Email     string `json:"email"     binding:"required,email,max=255"`
	Password  string `json:"password"  binding:"required,min=8,max=72"`
}

// LoginRequest email + password login
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returned by signup and login. Clients that keep the
// user id in local storage may ignore Token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"` // seconds
}

package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in. Identifier matches
// either username or email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UpdateProfileRequest is the request body for updating one's own profile
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// ChangePasswordRequest is the request body for changing one's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SaveProgressRequest is the request body for recording a play result
type SaveProgressRequest struct {
	Score     int  `json:"score"`
	Completed bool `json:"completed"`
}

// GameRequest is the request body for creating or updating a game.
// On update, nil fields keep their current value.
type GameRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Path        *string `json:"path"`
	Color       *string `json:"color"`
	Status      *string `json:"status"`
}

// UpdateUserRequest is the request body for administrative user updates.
// Nil fields keep their current value.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

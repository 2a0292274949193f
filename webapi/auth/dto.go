package auth

// LoginRequest is the JSON body for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

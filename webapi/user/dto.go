package user

// RegisterRequest is the JSON body for registering a user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32" example:"jane"`
	Email    string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"s3cret-pass"`
}

package account

// CreateAccountRequest is the JSON body for provisioning a new account.
type CreateAccountRequest struct {
	InitialBalance int64 `json:"initialBalance" validate:"min=0" example:"10000"`
}

package transaction

// UseBalanceRequest is the JSON body for spending from an account.
type UseBalanceRequest struct {
	UserID        string `json:"userId" validate:"required,uuid4" example:"b2c3d4e5-f6a7-8901-bcde-f23456789012"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10" example:"1000000001"`
	Amount        int64  `json:"amount" validate:"required,min=10,max=1000000000" example:"1000"`
}

// CancelBalanceRequest is the JSON body for reversing a prior use.
type CancelBalanceRequest struct {
	TransactionID string `json:"transactionId" validate:"required" example:"c2033bb6d82a4250aecf7e4bb364f3e8"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10" example:"1000000001"`
	Amount        int64  `json:"amount" validate:"required,min=10,max=1000000000" example:"1000"`
}

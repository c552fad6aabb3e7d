package dto

type AddTransactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Source      string  `json:"source"`
	CreatedAt   string  `json:"createdAt"`
}

type TransactionListResponse struct {
	Success      bool                  `json:"success"`
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

package dto

import "finsight/internal/models"

type StatementResponse struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"userId"`
	FileName      string                   `json:"fileName"`
	FileURL       string                   `json:"fileUrl"`
	StatementName string                   `json:"statementName"`
	Analysis      string                   `json:"analysis"`
	Transactions  []models.TransactionStub `json:"transactions"`
	TotalIncome   float64                  `json:"totalIncome"`
	TotalExpenses float64                  `json:"totalExpenses"`
	Processed     bool                     `json:"processed"`
	UploadedAt    string                   `json:"uploadedAt"`
}

// UploadStatementResponse reports the stored statement plus what the analysis
// produced. Structured distinguishes a parsed model reply from the free-text
// fallback.
type UploadStatementResponse struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message"`
	Statement         StatementResponse `json:"statement"`
	Analysis          string            `json:"analysis"`
	Structured        bool              `json:"structured"`
	Insights          []string          `json:"insights,omitempty"`
	Recommendations   []string          `json:"recommendations,omitempty"`
	TransactionsAdded int               `json:"transactionsAdded"`
}

type StatementListResponse struct {
	Success    bool                `json:"success"`
	Statements []StatementResponse `json:"statements"`
}

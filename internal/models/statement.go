package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStub is a transaction-shaped record extracted by the model from
// statement text. Amount keeps the model's sign; the income/expense direction
// is derived from it when the stub is promoted to a Transaction row.
type TransactionStub struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// AccountStatement is one uploaded financial document. ExtractedText is
// truncated to the configured storage budget before persisting; Transactions
// holds the raw extraction stubs as reported by the model (stored as jsonb),
// which are not guaranteed consistent with the ledger rows derived from them.
type AccountStatement struct {
	ID            uuid.UUID         `db:"id"`
	UserID        uuid.UUID         `db:"user_id"`
	FileName      string            `db:"file_name"`
	FilePath      string            `db:"file_path"`
	FileURL       string            `db:"file_url"`
	StatementName string            `db:"statement_name"`
	ExtractedText string            `db:"extracted_text"`
	Analysis      string            `db:"analysis"`
	Transactions  []TransactionStub `db:"transactions"`
	TotalIncome   float64           `db:"total_income"`
	TotalExpenses float64           `db:"total_expenses"`
	Processed     bool              `db:"processed"`
	UploadedAt    time.Time         `db:"uploaded_at"`
}

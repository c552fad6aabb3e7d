package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type TransactionSource string

const (
	SourceManual          TransactionSource = "manual"
	SourceStatementImport TransactionSource = "statement_import"
)

// Transaction is a single ledger entry. Amount is a non-negative magnitude;
// the income/expense direction lives in Type.
type Transaction struct {
	ID          uuid.UUID         `db:"id"`
	UserID      uuid.UUID         `db:"user_id"`
	Amount      float64           `db:"amount"`
	Category    string            `db:"category"`
	Description string            `db:"description"`
	Date        time.Time         `db:"date"`
	Type        TransactionType   `db:"type"`
	Source      TransactionSource `db:"source"`
	CreatedAt   time.Time         `db:"created_at"`
}

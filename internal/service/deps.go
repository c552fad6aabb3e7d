package service

import (
	"context"

	"finsight/internal/llm"
	"finsight/internal/models"

	"github.com/google/uuid"
)

// Completer is the hosted chat-completion dependency shared by the ingestion
// and chat pipelines. Satisfied by *llm.Client; tests swap in fakes.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
	Model() string
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type StatementStore interface {
	CreateWithTransactions(ctx context.Context, stmt *models.AccountStatement, transactions []*models.Transaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.AccountStatement, error)
}

type ChatStore interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ChatMessage, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

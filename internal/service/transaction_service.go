package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionService struct {
	transactions TransactionStore
	logger       *zap.Logger
}

func NewTransactionService(transactions TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		logger:       logger,
	}
}

func (s *TransactionService) Add(ctx context.Context, userID uuid.UUID, req *dto.AddTransactionRequest) (*dto.TransactionResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Type:        models.TransactionType(req.Type),
		Source:      models.SourceManual,
		CreatedAt:   time.Now(),
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to add transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to add transaction: %w", err)
	}

	resp := transactionToResponse(tx)
	return &resp, nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.TransactionListResponse, error) {
	transactions, err := s.transactions.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = transactionToResponse(tx)
	}

	return &dto.TransactionListResponse{
		Success:      true,
		Transactions: responses,
		Total:        len(responses),
	}, nil
}

// Delete removes a transaction owned by userID. A transaction belonging to a
// different user is reported as not found, never deleted.
func (s *TransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	deleted, err := s.transactions.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("Failed to delete transaction", zap.Error(err))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func transactionToResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID.String(),
		UserID:      tx.UserID.String(),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format("2006-01-02"),
		Type:        string(tx.Type),
		Source:      string(tx.Source),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

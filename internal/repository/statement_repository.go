package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var statementColumns = []string{
	"id", "user_id", "file_name", "file_path", "file_url", "statement_name",
	"extracted_text", "analysis", "transactions", "total_income",
	"total_expenses", "processed", "uploaded_at",
}

type StatementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStatementRepository(db *pgxpool.Pool, logger *zap.Logger) *StatementRepository {
	return &StatementRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithTransactions inserts the statement row and its derived ledger
// rows in a single database transaction, so a failed insert leaves neither a
// dangling statement nor a partial set of transactions behind.
func (r *StatementRepository) CreateWithTransactions(ctx context.Context, stmt *models.AccountStatement, transactions []*models.Transaction) error {
	stubs, err := json.Marshal(stmt.Transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transaction stubs: %w", err)
	}

	query := squirrel.Insert("account_statements").
		Columns(statementColumns...).
		Values(
			stmt.ID, stmt.UserID, stmt.FileName, stmt.FilePath, stmt.FileURL,
			stmt.StatementName, stmt.ExtractedText, stmt.Analysis, stubs,
			stmt.TotalIncome, stmt.TotalExpenses, stmt.Processed, stmt.UploadedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	stmtSQL, stmtArgs, err := query.ToSql()
	if err != nil {
		return err
	}

	dbTx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	if _, err := dbTx.Exec(ctx, stmtSQL, stmtArgs...); err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}

	if len(transactions) > 0 {
		builder := squirrel.Insert("transactions").
			Columns(transactionColumns...).
			PlaceholderFormat(squirrel.Dollar)

		for _, tx := range transactions {
			builder = builder.Values(
				tx.ID, tx.UserID, tx.Amount, tx.Category, tx.Description,
				tx.Date, tx.Type, tx.Source, tx.CreatedAt,
			)
		}

		txSQL, txArgs, err := builder.ToSql()
		if err != nil {
			return err
		}

		if _, err := dbTx.Exec(ctx, txSQL, txArgs...); err != nil {
			return fmt.Errorf("failed to insert extracted transactions: %w", err)
		}
	}

	return dbTx.Commit(ctx)
}

// ListByUserID returns the user's statements newest-first by upload time.
func (r *StatementRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.AccountStatement, error) {
	query := squirrel.Select(statementColumns...).
		From("account_statements").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("uploaded_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statements []*models.AccountStatement
	for rows.Next() {
		var stmt models.AccountStatement
		var stubs []byte
		if err := rows.Scan(
			&stmt.ID, &stmt.UserID, &stmt.FileName, &stmt.FilePath, &stmt.FileURL,
			&stmt.StatementName, &stmt.ExtractedText, &stmt.Analysis, &stubs,
			&stmt.TotalIncome, &stmt.TotalExpenses, &stmt.Processed, &stmt.UploadedAt,
		); err != nil {
			return nil, err
		}
		if len(stubs) > 0 {
			if err := json.Unmarshal(stubs, &stmt.Transactions); err != nil {
				r.logger.Warn("Failed to decode transaction stubs",
					zap.String("statement_id", stmt.ID.String()), zap.Error(err))
			}
		}
		statements = append(statements, &stmt)
	}

	return statements, rows.Err()
}

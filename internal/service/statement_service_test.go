package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStatementService(statements *fakeStatementStore, blobs *fakeBlobStore, completer *fakeCompleter) *StatementService {
	uploadCfg := &config.UploadConfig{
		MaxFileSize:      10 * 1024 * 1024,
		PromptCharBudget: 10000,
		StoreCharBudget:  5000,
	}
	llmCfg := &config.LLMConfig{
		AnalysisTemperature: 0.3,
		AnalysisMaxTokens:   2000,
	}
	return NewStatementService(statements, blobs, newExtractService(), completer, uploadCfg, llmCfg, zap.NewNop())
}

func csvUpload(name, statementName string, body string) UploadInput {
	return UploadInput{
		File:          strings.NewReader(body),
		FileName:      name,
		Size:          int64(len(body)),
		ContentType:   "text/csv",
		StatementName: statementName,
	}
}

func TestUploadRejectsMissingName(t *testing.T) {
	svc := newStatementService(&fakeStatementStore{}, &fakeBlobStore{}, &fakeCompleter{})

	_, err := svc.Upload(context.Background(), uuid.New(), csvUpload("a.csv", "  ", "Date,Amount\n"))

	assert.ErrorIs(t, err, ErrStatementNameMissing)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	blobs := &fakeBlobStore{}
	svc := newStatementService(&fakeStatementStore{}, blobs, &fakeCompleter{})

	in := csvUpload("a.csv", "March", "Date,Amount\n")
	in.Size = 11 * 1024 * 1024

	_, err := svc.Upload(context.Background(), uuid.New(), in)

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, blobs.saved)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	blobs := &fakeBlobStore{}
	svc := newStatementService(&fakeStatementStore{}, blobs, &fakeCompleter{})

	in := UploadInput{
		File:          strings.NewReader("GIF89a"),
		FileName:      "statement.gif",
		Size:          6,
		ContentType:   "image/gif",
		StatementName: "March",
	}

	_, err := svc.Upload(context.Background(), uuid.New(), in)

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Empty(t, blobs.saved)
}

func TestUploadRejectsMismatchedContentType(t *testing.T) {
	svc := newStatementService(&fakeStatementStore{}, &fakeBlobStore{}, &fakeCompleter{})

	in := csvUpload("a.csv", "March", "Date,Amount\n")
	in.ContentType = "application/zip"

	_, err := svc.Upload(context.Background(), uuid.New(), in)

	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestUploadCleansUpUnparsableFile(t *testing.T) {
	blobs := &fakeBlobStore{}
	svc := newStatementService(&fakeStatementStore{}, blobs, &fakeCompleter{})

	in := UploadInput{
		File:          strings.NewReader("not a workbook"),
		FileName:      "broken.xlsx",
		Size:          14,
		ContentType:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		StatementName: "March",
	}

	_, err := svc.Upload(context.Background(), uuid.New(), in)

	require.ErrorIs(t, err, ErrUnparsable)
	require.Len(t, blobs.saved, 1)
	require.Len(t, blobs.removed, 1)
}

func TestUploadStructuredAnalysis(t *testing.T) {
	statements := &fakeStatementStore{}
	blobs := &fakeBlobStore{}
	completer := &fakeCompleter{reply: `{
		"summary": "Two transactions",
		"totalIncome": 1000,
		"totalExpenses": 42.50,
		"transactions": [
			{"date": "2024-03-01", "amount": 1000, "description": "Salary", "category": "Income"},
			{"date": "2024-03-02", "amount": -42.50, "description": "Groceries", "category": "Food"}
		],
		"insights": ["ok"],
		"recommendations": ["save more"]
	}`}
	svc := newStatementService(statements, blobs, completer)

	userID := uuid.New()
	resp, err := svc.Upload(context.Background(), userID,
		csvUpload("march.csv", "March", "Date,Amount,Description\n2024-03-01,1000,Salary\n2024-03-02,-42.50,Groceries\n"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Structured)
	assert.Equal(t, "Two transactions", resp.Analysis)
	assert.Equal(t, 2, resp.TransactionsAdded)
	assert.Equal(t, []string{"ok"}, resp.Insights)

	require.Len(t, statements.created, 1)
	stmt := statements.created[0]
	assert.Equal(t, userID, stmt.UserID)
	assert.Equal(t, "March", stmt.StatementName)
	assert.True(t, stmt.Processed)
	assert.Equal(t, 1000.0, stmt.TotalIncome)
	assert.Equal(t, 42.50, stmt.TotalExpenses)
	assert.Len(t, stmt.Transactions, 2)

	require.Len(t, statements.createdTxs, 1)
	rows := statements.createdTxs[0]
	require.Len(t, rows, 2)
	assert.Equal(t, models.TypeIncome, rows[0].Type)
	assert.Equal(t, models.TypeExpense, rows[1].Type)
	assert.Equal(t, 42.50, rows[1].Amount)
	assert.Equal(t, models.SourceStatementImport, rows[1].Source)

	// Prompt carried the extracted text.
	require.Len(t, completer.requests, 1)
	assert.Contains(t, completer.requests[0].User, "Groceries")
	assert.Equal(t, 0.3, completer.requests[0].Temperature)
	assert.Equal(t, 2000, completer.requests[0].MaxTokens)
}

func TestUploadUnstructuredReplyStillSucceeds(t *testing.T) {
	statements := &fakeStatementStore{}
	completer := &fakeCompleter{reply: "The statement looks mostly like groceries."}
	svc := newStatementService(statements, &fakeBlobStore{}, completer)

	resp, err := svc.Upload(context.Background(), uuid.New(),
		csvUpload("march.csv", "March", "Date,Amount\n2024-03-01,10\n"))

	require.NoError(t, err)
	assert.False(t, resp.Structured)
	assert.Equal(t, "The statement looks mostly like groceries.", resp.Analysis)
	assert.Equal(t, 0, resp.TransactionsAdded)

	require.Len(t, statements.created, 1)
	assert.Empty(t, statements.createdTxs[0])
}

func TestUploadModelFailureDegradesToFallback(t *testing.T) {
	statements := &fakeStatementStore{}
	completer := &fakeCompleter{err: errors.New("provider unavailable")}
	svc := newStatementService(statements, &fakeBlobStore{}, completer)

	resp, err := svc.Upload(context.Background(), uuid.New(),
		csvUpload("march.csv", "March", "Date,Amount\n2024-03-01,10\n"))

	require.NoError(t, err)
	assert.False(t, resp.Structured)
	assert.Equal(t, "AI analysis failed. Manual review required.", resp.Analysis)
	assert.Equal(t, 0, resp.TransactionsAdded)

	require.Len(t, statements.created, 1)
	assert.True(t, statements.created[0].Processed)
}

func TestUploadCleansUpOnPersistenceFailure(t *testing.T) {
	statements := &fakeStatementStore{createErr: errors.New("db down")}
	blobs := &fakeBlobStore{}
	completer := &fakeCompleter{reply: `{"summary": "s"}`}
	svc := newStatementService(statements, blobs, completer)

	_, err := svc.Upload(context.Background(), uuid.New(),
		csvUpload("march.csv", "March", "Date,Amount\n2024-03-01,10\n"))

	require.Error(t, err)
	require.Len(t, blobs.removed, 1)
}

func TestStubsToTransactionsDefaults(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	stubs := []models.TransactionStub{
		{Date: "2024-03-01", Amount: -25, Description: "Lunch", Category: "Food"},
		{Date: "", Amount: 100, Description: "Refund", Category: ""},
		{Date: "not-a-date", Amount: -5, Description: "Fee", Category: "Bank"},
	}

	rows := stubsToTransactions(userID, stubs, now)

	require.Len(t, rows, 3)

	assert.Equal(t, models.TypeExpense, rows[0].Type)
	assert.Equal(t, 25.0, rows[0].Amount)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)

	assert.Equal(t, models.TypeIncome, rows[1].Type)
	assert.Equal(t, "Other", rows[1].Category)
	assert.Equal(t, now, rows[1].Date)

	assert.Equal(t, now, rows[2].Date)

	for _, row := range rows {
		assert.Equal(t, userID, row.UserID)
		assert.Equal(t, models.SourceStatementImport, row.Source)
	}
}

func TestListStatements(t *testing.T) {
	statements := &fakeStatementStore{statements: []*models.AccountStatement{
		{ID: uuid.New(), UserID: uuid.New(), StatementName: "March", UploadedAt: time.Now()},
	}}
	svc := newStatementService(statements, &fakeBlobStore{}, &fakeCompleter{})

	resp, err := svc.List(context.Background(), uuid.New(), 20, 0)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Statements, 1)
	assert.Equal(t, "March", resp.Statements[0].StatementName)
}

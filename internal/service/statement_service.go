package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"finsight/internal/dto"
	"finsight/internal/llm"
	"finsight/internal/models"
	"finsight/internal/storage"
	"finsight/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFileType  = errors.New("only PDF, CSV, Excel, and text files are allowed")
	ErrStatementNameMissing = errors.New("statement name is required")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".txt":  true,
}

var allowedContentTypes = map[string]bool{
	"application/pdf":          true,
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// UploadInput is one multipart statement upload. Size and ContentType come
// from the multipart header and are validated before anything is stored.
type UploadInput struct {
	File          io.Reader
	FileName      string
	Size          int64
	ContentType   string
	StatementName string
}

// StatementService runs the ingestion pipeline: validate, store, extract
// text, summarize with the model, normalize, persist. The pipeline is linear;
// the only branch points are the documented degradations (model call failure
// and unparsable model replies), both of which still produce a stored
// statement.
type StatementService struct {
	statements StatementStore
	blobs      storage.Store
	extractor  *ExtractService
	completer  Completer
	uploadCfg  *config.UploadConfig
	llmCfg     *config.LLMConfig
	logger     *zap.Logger
}

func NewStatementService(
	statements StatementStore,
	blobs storage.Store,
	extractor *ExtractService,
	completer Completer,
	uploadCfg *config.UploadConfig,
	llmCfg *config.LLMConfig,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		statements: statements,
		blobs:      blobs,
		extractor:  extractor,
		completer:  completer,
		uploadCfg:  uploadCfg,
		llmCfg:     llmCfg,
		logger:     logger,
	}
}

func (s *StatementService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*dto.UploadStatementResponse, error) {
	if strings.TrimSpace(in.StatementName) == "" {
		return nil, ErrStatementNameMissing
	}
	if in.Size > s.uploadCfg.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(fileExt(in.FileName))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedFileType
	}
	if contentType := normalizeContentType(in.ContentType); contentType != "" && !allowedContentTypes[contentType] {
		return nil, ErrUnsupportedFileType
	}

	// Buffer the upload so extraction can run on the bytes regardless of
	// which blob store holds the file. Size was checked above; read one byte
	// past the ceiling to catch clients that lie in the multipart header.
	data, err := io.ReadAll(io.LimitReader(in.File, s.uploadCfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.uploadCfg.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	now := time.Now()
	key := fmt.Sprintf("%s/%d-%s%s", userID, now.UnixMilli(), uuid.New(), ext)

	obj, err := s.blobs.Save(ctx, bytes.NewReader(data), key)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	extractedText, err := s.extractor.Extract(ctx, in.FileName, data)
	if err != nil {
		s.removeBlob(ctx, obj.Path)
		return nil, err
	}

	analysis := s.analyze(ctx, extractedText)

	statement := &models.AccountStatement{
		ID:            uuid.New(),
		UserID:        userID,
		FileName:      in.FileName,
		FilePath:      obj.Path,
		FileURL:       obj.URL,
		StatementName: in.StatementName,
		ExtractedText: truncateRunes(extractedText, s.uploadCfg.StoreCharBudget),
		Analysis:      analysis.Summary,
		Transactions:  analysis.Transactions,
		TotalIncome:   analysis.TotalIncome,
		TotalExpenses: analysis.TotalExpenses,
		Processed:     true,
		UploadedAt:    now,
	}

	transactions := stubsToTransactions(userID, analysis.Transactions, now)

	if err := s.statements.CreateWithTransactions(ctx, statement, transactions); err != nil {
		s.logger.Error("Failed to save statement", zap.Error(err))
		s.removeBlob(ctx, obj.Path)
		return nil, fmt.Errorf("failed to save statement: %w", err)
	}

	s.logger.Info("Statement ingested",
		zap.String("statement_id", statement.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("structured", analysis.Structured),
		zap.Int("transactions_added", len(transactions)),
	)

	return &dto.UploadStatementResponse{
		Success:           true,
		Message:           "Statement uploaded and analyzed successfully",
		Statement:         statementToResponse(statement),
		Analysis:          analysis.Summary,
		Structured:        analysis.Structured,
		Insights:          analysis.Insights,
		Recommendations:   analysis.Recommendations,
		TransactionsAdded: len(transactions),
	}, nil
}

// analyze submits the extracted text to the model and normalizes the reply.
// A provider failure degrades to the fixed fallback summary instead of
// failing the upload.
func (s *StatementService) analyze(ctx context.Context, extractedText string) *Analysis {
	reply, err := s.completer.Complete(ctx, llm.Request{
		System:      analysisSystemPrompt,
		User:        buildAnalysisPrompt(extractedText, s.uploadCfg.PromptCharBudget),
		Temperature: s.llmCfg.AnalysisTemperature,
		MaxTokens:   s.llmCfg.AnalysisMaxTokens,
	})
	if err != nil {
		s.logger.Error("AI analysis failed", zap.Error(err))
		return &Analysis{Summary: analysisFallback}
	}

	analysis := parseAnalysis(reply)
	if !analysis.Structured {
		s.logger.Warn("Model reply was not valid JSON, storing raw text",
			zap.Int("reply_length", len(reply)))
	}

	return analysis
}

func (s *StatementService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*dto.StatementListResponse, error) {
	statements, err := s.statements.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StatementResponse, len(statements))
	for i, stmt := range statements {
		responses[i] = statementToResponse(stmt)
	}

	return &dto.StatementListResponse{Success: true, Statements: responses}, nil
}

func (s *StatementService) removeBlob(ctx context.Context, path string) {
	if err := s.blobs.Remove(ctx, path); err != nil {
		s.logger.Warn("Failed to clean up stored file", zap.String("path", path), zap.Error(err))
	}
}

// stubsToTransactions promotes extraction stubs to ledger rows. Direction
// comes from the stub amount's sign, the stored amount is its magnitude;
// missing dates default to today and missing categories to "Other".
func stubsToTransactions(userID uuid.UUID, stubs []models.TransactionStub, now time.Time) []*models.Transaction {
	transactions := make([]*models.Transaction, 0, len(stubs))
	for _, stub := range stubs {
		txType := models.TypeIncome
		if stub.Amount < 0 {
			txType = models.TypeExpense
		}

		category := stub.Category
		if category == "" {
			category = "Other"
		}

		date := now
		if stub.Date != "" {
			if parsed, err := time.Parse("2006-01-02", stub.Date); err == nil {
				date = parsed
			}
		}

		transactions = append(transactions, &models.Transaction{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      math.Abs(stub.Amount),
			Category:    category,
			Description: stub.Description,
			Date:        date,
			Type:        txType,
			Source:      models.SourceStatementImport,
			CreatedAt:   now,
		})
	}

	return transactions
}

func statementToResponse(stmt *models.AccountStatement) dto.StatementResponse {
	return dto.StatementResponse{
		ID:            stmt.ID.String(),
		UserID:        stmt.UserID.String(),
		FileName:      stmt.FileName,
		FileURL:       stmt.FileURL,
		StatementName: stmt.StatementName,
		Analysis:      stmt.Analysis,
		Transactions:  stmt.Transactions,
		TotalIncome:   stmt.TotalIncome,
		TotalExpenses: stmt.TotalExpenses,
		Processed:     stmt.Processed,
		UploadedAt:    stmt.UploadedAt.Format(time.RFC3339),
	}
}

func fileExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx:]
	}
	return ""
}

func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(strings.ToLower(ct))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}
	return ct
}

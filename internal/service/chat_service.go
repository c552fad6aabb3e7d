package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finsight/internal/dto"
	"finsight/internal/llm"
	"finsight/internal/models"
	"finsight/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// chatContextTransactions bounds how much ledger history feeds the prompt.
	chatContextTransactions = 100
	chatContextStatements   = 5
	chatPromptRecent        = 5
	defaultHistoryLimit     = 50
)

// ChatService answers free-text questions with the user's financial context
// embedded in the system prompt. Unlike ingestion, a model failure here
// aborts the whole request.
type ChatService struct {
	chats        ChatStore
	transactions TransactionStore
	statements   StatementStore
	completer    Completer
	llmCfg       *config.LLMConfig
	logger       *zap.Logger
}

func NewChatService(
	chats ChatStore,
	transactions TransactionStore,
	statements StatementStore,
	completer Completer,
	llmCfg *config.LLMConfig,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:        chats,
		transactions: transactions,
		statements:   statements,
		completer:    completer,
		llmCfg:       llmCfg,
		logger:       logger,
	}
}

func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	transactions, err := s.transactions.ListByUserID(ctx, userID, chatContextTransactions, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	statements, err := s.statements.ListByUserID(ctx, userID, chatContextStatements, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements: %w", err)
	}

	systemPrompt := buildChatSystemPrompt(transactions, len(statements), req.Context)

	reply, err := s.completer.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        req.Message,
		Temperature: s.llmCfg.ChatTemperature,
		MaxTokens:   s.llmCfg.ChatMaxTokens,
	})
	if err != nil {
		s.logger.Error("Chat completion failed", zap.Error(err))
		return nil, fmt.Errorf("failed to get model response: %w", err)
	}

	now := time.Now()
	model := s.completer.Model()

	userMessage := &models.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   req.Message,
		IsUser:    true,
		Category:  "general",
		CreatedAt: now,
	}

	aiMessage := &models.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   reply,
		IsUser:    false,
		ModelUsed: &model,
		Category:  "response",
		CreatedAt: now.Add(time.Millisecond),
	}

	if err := s.chats.Create(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}
	if err := s.chats.Create(ctx, aiMessage); err != nil {
		return nil, fmt.Errorf("failed to save model reply: %w", err)
	}

	return &dto.SendMessageResponse{
		Success:  true,
		Response: reply,
		Conversation: dto.ConversationResponse{
			UserMessage: messageToResponse(userMessage),
			AIMessage:   messageToResponse(aiMessage),
		},
	}, nil
}

// History returns the user's most recent messages in chronological order.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit int) (*dto.ChatHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, err := s.chats.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	// ListRecent is newest-first; flip to oldest-first for the client.
	responses := make([]dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[len(messages)-1-i] = messageToResponse(msg)
	}

	return &dto.ChatHistoryResponse{Success: true, Messages: responses}, nil
}

// buildChatSystemPrompt embeds locally computed aggregates and the most
// recent transactions so the model can give grounded advice.
func buildChatSystemPrompt(transactions []*models.Transaction, statementCount int, extraContext string) string {
	var totalIncome, totalExpenses float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome += tx.Amount
		case models.TypeExpense:
			totalExpenses += tx.Amount
		}
	}
	balance := totalIncome - totalExpenses

	var recent strings.Builder
	for i, tx := range transactions {
		if i >= chatPromptRecent {
			break
		}
		sign := "+"
		if tx.Type == models.TypeExpense {
			sign = "-"
		}
		fmt.Fprintf(&recent, "- %s: %s$%.2f for %s (%s)\n",
			tx.Date.Format("2006-01-02"), sign, tx.Amount, tx.Description, tx.Category)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, `You are a financial AI assistant. The user has these financial details:

Financial Summary:
- Total Balance: $%.2f
- Total Income: $%.2f
- Total Expenses: $%.2f
- Number of Transactions: %d
- Analyzed Statements: %d

Recent Transactions (last %d):
%s
Provide detailed, actionable financial advice. Be specific and helpful.
If asked about statements, reference the %d statements analyzed.`,
		balance, totalIncome, totalExpenses, len(transactions), statementCount,
		chatPromptRecent, recent.String(), statementCount)

	if extraContext != "" {
		fmt.Fprintf(&builder, "\n\nAdditional context from the user:\n%s", extraContext)
	}

	return builder.String()
}

func messageToResponse(msg *models.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        msg.ID.String(),
		UserID:    msg.UserID.String(),
		Content:   msg.Content,
		IsUser:    msg.IsUser,
		ModelUsed: msg.ModelUsed,
		Category:  msg.Category,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339Nano),
	}
}

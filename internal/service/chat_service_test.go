package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChatService(chats *fakeChatStore, transactions *fakeTransactionStore, statements *fakeStatementStore, completer *fakeCompleter) *ChatService {
	llmCfg := &config.LLMConfig{
		ChatTemperature: 0.7,
		ChatMaxTokens:   1000,
	}
	return NewChatService(chats, transactions, statements, completer, llmCfg, zap.NewNop())
}

func TestSendMessageEmbedsFinancialContext(t *testing.T) {
	userID := uuid.New()
	transactions := &fakeTransactionStore{transactions: []*models.Transaction{
		{UserID: userID, Amount: 3000, Type: models.TypeIncome, Category: "Salary", Description: "Payroll", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, Amount: 500, Type: models.TypeExpense, Category: "Rent", Description: "March rent", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}}
	statements := &fakeStatementStore{statements: []*models.AccountStatement{
		{ID: uuid.New(), UserID: userID},
	}}
	chats := &fakeChatStore{}
	completer := &fakeCompleter{reply: "You are doing fine."}
	svc := newChatService(chats, transactions, statements, completer)

	resp, err := svc.SendMessage(context.Background(), userID, &dto.SendMessageRequest{Message: "How am I doing?"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "You are doing fine.", resp.Response)

	require.Len(t, completer.requests, 1)
	prompt := completer.requests[0].System
	assert.Contains(t, prompt, "Total Balance: $2500.00")
	assert.Contains(t, prompt, "Total Income: $3000.00")
	assert.Contains(t, prompt, "Total Expenses: $500.00")
	assert.Contains(t, prompt, "Analyzed Statements: 1")
	assert.Contains(t, prompt, "March rent")
	assert.Equal(t, "How am I doing?", completer.requests[0].User)
	assert.Equal(t, 0.7, completer.requests[0].Temperature)
	assert.Equal(t, 1000, completer.requests[0].MaxTokens)
}

func TestSendMessagePersistsBothSides(t *testing.T) {
	chats := &fakeChatStore{}
	completer := &fakeCompleter{reply: "Answer."}
	svc := newChatService(chats, &fakeTransactionStore{}, &fakeStatementStore{}, completer)

	userID := uuid.New()
	resp, err := svc.SendMessage(context.Background(), userID, &dto.SendMessageRequest{Message: "Hi"})

	require.NoError(t, err)
	require.Len(t, chats.created, 2)

	userMsg, aiMsg := chats.created[0], chats.created[1]
	assert.True(t, userMsg.IsUser)
	assert.Equal(t, "Hi", userMsg.Content)
	assert.Equal(t, "general", userMsg.Category)
	assert.Nil(t, userMsg.ModelUsed)

	assert.False(t, aiMsg.IsUser)
	assert.Equal(t, "Answer.", aiMsg.Content)
	assert.Equal(t, "response", aiMsg.Category)
	require.NotNil(t, aiMsg.ModelUsed)
	assert.Equal(t, "test-model", *aiMsg.ModelUsed)
	assert.True(t, aiMsg.CreatedAt.After(userMsg.CreatedAt))

	assert.Equal(t, "Hi", resp.Conversation.UserMessage.Content)
	assert.Equal(t, "Answer.", resp.Conversation.AIMessage.Content)
}

func TestSendMessageIncludesExtraContext(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	svc := newChatService(&fakeChatStore{}, &fakeTransactionStore{}, &fakeStatementStore{}, completer)

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		Message: "Hi",
		Context: "I am saving for a house.",
	})

	require.NoError(t, err)
	assert.Contains(t, completer.requests[0].System, "I am saving for a house.")
}

func TestSendMessageModelFailure(t *testing.T) {
	chats := &fakeChatStore{}
	completer := &fakeCompleter{err: errors.New("provider unavailable")}
	svc := newChatService(chats, &fakeTransactionStore{}, &fakeStatementStore{}, completer)

	_, err := svc.SendMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{Message: "Hi"})

	require.Error(t, err)
	assert.Empty(t, chats.created)
}

func TestHistoryReturnsChronologicalOrder(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	chats := &fakeChatStore{recent: []*models.ChatMessage{
		{ID: uuid.New(), UserID: userID, Content: "newest", IsUser: false, CreatedAt: now},
		{ID: uuid.New(), UserID: userID, Content: "middle", IsUser: true, CreatedAt: now.Add(-time.Minute)},
		{ID: uuid.New(), UserID: userID, Content: "oldest", IsUser: true, CreatedAt: now.Add(-2 * time.Minute)},
	}}
	svc := newChatService(chats, &fakeTransactionStore{}, &fakeStatementStore{}, &fakeCompleter{})

	resp, err := svc.History(context.Background(), userID, 50)

	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "oldest", resp.Messages[0].Content)
	assert.Equal(t, "middle", resp.Messages[1].Content)
	assert.Equal(t, "newest", resp.Messages[2].Content)
}

package service

import (
	"context"
	"errors"
	"io"

	"finsight/internal/llm"
	"finsight/internal/models"
	"finsight/internal/storage"

	"github.com/google/uuid"
)

type fakeCompleter struct {
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) Model() string { return "test-model" }

type fakeStatementStore struct {
	created    []*models.AccountStatement
	createdTxs [][]*models.Transaction
	statements []*models.AccountStatement
	createErr  error
	listErr    error
}

func (f *fakeStatementStore) CreateWithTransactions(ctx context.Context, stmt *models.AccountStatement, transactions []*models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, stmt)
	f.createdTxs = append(f.createdTxs, transactions)
	return nil
}

func (f *fakeStatementStore) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.AccountStatement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.statements, nil
}

type fakeTransactionStore struct {
	created      []*models.Transaction
	transactions []*models.Transaction
	deleted      bool
	createErr    error
	deleteErr    error
}

func (f *fakeTransactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionStore) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeTransactionStore) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return f.deleted, nil
}

type fakeChatStore struct {
	created []*models.ChatMessage
	recent  []*models.ChatMessage
}

func (f *fakeChatStore) Create(ctx context.Context, msg *models.ChatMessage) error {
	f.created = append(f.created, msg)
	return nil
}

func (f *fakeChatStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ChatMessage, error) {
	return f.recent, nil
}

type fakeUserStore struct {
	users      map[string]*models.User
	updated    *models.User
	createErr  error
	getByIDErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, user *models.User) error {
	f.updated = user
	return nil
}

type fakeBlobStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeBlobStore) Save(ctx context.Context, r io.Reader, key string) (*storage.Object, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	io.Copy(io.Discard, r)
	f.saved = append(f.saved, key)
	return &storage.Object{Path: "blobs/" + key, URL: "/uploads/" + key}, nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one side of a chat turn. User and assistant messages are
// independent rows linked only by user id and adjacent timestamps; ModelUsed
// is nil for user-authored rows.
type ChatMessage struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Content   string    `db:"content"`
	IsUser    bool      `db:"is_user"`
	ModelUsed *string   `db:"model_used"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnalysisRun — сохраненный прогон анализа с входом и итоговым результатом.
type AnalysisRun struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	SessionID     string          `json:"session_id"`
	Provider      string          `json:"provider"`
	Model         string          `json:"model"`
	InputPayload  json.RawMessage `json:"input"`
	ResultPayload json.RawMessage `json:"results"`
	UsedFallback  bool            `json:"used_fallback"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

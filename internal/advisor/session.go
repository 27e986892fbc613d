package advisor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/ai-financial-coach/internal/ledger"
)

// Session — состояние одного прогона анализа, принадлежащее вызывающему коду.
//
// The session is created per analysis, threaded through the stages explicitly
// and released on every exit path. Nothing about an analysis run lives in
// package-level state.
type Session struct {
	ID        string
	CreatedAt time.Time
	State     ledger.FinancialState
	outputs   map[string]StageOutput
}

// Output возвращает сохраненный вывод этапа.
func (s *Session) Output(stage string) (StageOutput, bool) {
	output, ok := s.outputs[stage]
	return output, ok
}

func (s *Session) setOutput(stage string, output StageOutput) {
	s.outputs[stage] = output
}

// SessionStore — реестр активных сессий анализа.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore создает пустой реестр сессий.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create регистрирует новую сессию с идентификатором на основе времени создания.
func (s *SessionStore) Create(state ledger.FinancialState, now time.Time) *Session {
	session := &Session{
		ID:        fmt.Sprintf("finance_session_%s_%s", now.UTC().Format("20060102_150405"), uuid.NewString()[:8]),
		CreatedAt: now.UTC(),
		State:     state,
		outputs:   make(map[string]StageOutput),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Delete удаляет сессию из реестра; повторный вызов безопасен.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len возвращает число активных сессий.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventAnalysisStarted   = "analysis_started"
	EventStageCompleted    = "stage_completed"
	EventAnalysisCompleted = "analysis_completed"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type subscriber struct {
	userID uuid.UUID
	ch     chan Event
}

// Hub рассылает события хода анализа SSE-подписчикам пользователя.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

// NewHub создает хаб событий анализа.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[*subscriber]struct{})}
}

// Subscribe подписывает пользователя и возвращает канал с функцией отписки.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	sub := &subscriber{
		userID: userID,
		ch:     make(chan Event, 16),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, sub)
			h.mu.Unlock()
			close(sub.ch)
		})
	}

	return sub.ch, unsubscribe
}

// Publish отправляет событие всем подпискам пользователя.
//
// A slow subscriber whose buffer is full misses the event; delivery is
// best-effort so an analysis never blocks on a dead SSE connection.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

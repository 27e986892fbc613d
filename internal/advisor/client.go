package advisor

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client — транспорт к удаленной LLM; возвращает текст ответа и сырое тело API.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, []byte, error)
}

const defaultMaxTokens = 4096

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}

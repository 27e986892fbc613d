package advisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"example.com/ai-financial-coach/internal/ledger"
)

// StageOutput — размеченное объединение вывода этапа: структура или сырой текст.
type StageOutput struct {
	Structured json.RawMessage `json:"structured,omitempty"`
	Raw        string          `json:"raw,omitempty"`
}

// decode разбирает вывод в целевую структуру; текст терпим к код-фенсам.
func (o StageOutput) decode(target interface{}) bool {
	if len(o.Structured) > 0 {
		return json.Unmarshal(o.Structured, target) == nil
	}

	payload := extractJSON(o.Raw)
	if payload == "" {
		return false
	}

	return json.Unmarshal([]byte(payload), target) == nil
}

// StageObserver получает уведомление о завершении каждого этапа.
type StageObserver func(stage string, usedDefault bool)

// AnalyzeResult — детали одного прогона: результаты и статус деградации.
type AnalyzeResult struct {
	Results      ResultBundle
	SessionID    string
	UsedFallback bool
	StageErrors  map[string]string
}

type Service struct {
	client   Client
	policy   Policy
	sessions *SessionStore
	now      func() time.Time
}

// NewService создает сервис трехэтапного финансового анализа.
func NewService(client Client, policy Policy) *Service {
	if policy.EmergencyFundMultiplier <= 0 {
		policy.EmergencyFundMultiplier = DefaultPolicy().EmergencyFundMultiplier
	}
	if policy.EmergencyFundHorizonMonths <= 0 {
		policy.EmergencyFundHorizonMonths = DefaultPolicy().EmergencyFundHorizonMonths
	}

	return &Service{
		client:   client,
		policy:   policy,
		sessions: NewSessionStore(),
		now:      time.Now,
	}
}

// Policy возвращает действующую политику резервного фонда.
func (s *Service) Policy() Policy {
	return s.policy
}

// Analyze прогоняет три этапа анализа и всегда возвращает полный результат.
//
// A stage failure degrades that stage to its default value; the other stages
// keep whatever valid output they produced. The caller always receives a
// complete, renderable bundle.
func (s *Service) Analyze(ctx context.Context, state ledger.FinancialState, observe StageObserver) AnalyzeResult {
	defaults := s.policy.DefaultResults(state)

	session := s.sessions.Create(state, s.now())
	defer s.sessions.Delete(session.ID)

	result := AnalyzeResult{
		Results:     defaults,
		SessionID:   session.ID,
		StageErrors: make(map[string]string),
	}

	if s.client == nil {
		result.UsedFallback = true
		result.StageErrors["pipeline"] = "no model client configured"
		slog.Error("analysis pipeline unavailable", slog.String("session_id", session.ID))
		notifyAll(observe, true)
		return result
	}

	for _, stage := range stageOrder {
		usedDefault := s.runStage(ctx, session, stage, defaults, &result)
		if usedDefault {
			result.UsedFallback = true
		}
		if observe != nil {
			observe(stage, usedDefault)
		}
	}

	return result
}

func (s *Service) runStage(ctx context.Context, session *Session, stage string, defaults ResultBundle, result *AnalyzeResult) bool {
	prompt, err := s.buildStagePrompt(session.State, stage, result.Results)
	if err != nil {
		result.StageErrors[stage] = err.Error()
		slog.Error("stage prompt build failed",
			slog.String("session_id", session.ID),
			slog.String("stage", stage),
			slog.String("error", err.Error()))
		return true
	}

	content, _, err := s.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		result.StageErrors[stage] = err.Error()
		slog.Warn("stage fallback used",
			slog.String("session_id", session.ID),
			slog.String("stage", stage),
			slog.String("error", err.Error()))
		return true
	}

	session.setOutput(stage, StageOutput{Raw: content})
	output, _ := session.Output(stage)

	switch stage {
	case StageBudgetAnalysis:
		value, ok := ReconcileBudget(output, defaults.BudgetAnalysis)
		result.Results.BudgetAnalysis = value
		return s.recordDecode(session, stage, ok, result)
	case StageSavingsStrategy:
		value, ok := ReconcileSavings(output, defaults.SavingsStrategy)
		result.Results.SavingsStrategy = value
		return s.recordDecode(session, stage, ok, result)
	case StageDebtReduction:
		value, ok := ReconcileDebt(output, defaults.DebtReduction)
		result.Results.DebtReduction = value
		return s.recordDecode(session, stage, ok, result)
	}

	return false
}

func (s *Service) buildStagePrompt(state ledger.FinancialState, stage string, current ResultBundle) (string, error) {
	switch stage {
	case StageSavingsStrategy:
		budget, err := json.Marshal(current.BudgetAnalysis)
		if err != nil {
			return "", err
		}
		return buildSavingsPrompt(state, budget)
	case StageDebtReduction:
		budget, err := json.Marshal(current.BudgetAnalysis)
		if err != nil {
			return "", err
		}
		savings, err := json.Marshal(current.SavingsStrategy)
		if err != nil {
			return "", err
		}
		return buildDebtPrompt(state, budget, savings)
	default:
		return buildBudgetPrompt(state)
	}
}

func (s *Service) recordDecode(session *Session, stage string, ok bool, result *AnalyzeResult) bool {
	if ok {
		return false
	}

	result.StageErrors[stage] = "stage output is not valid json"
	slog.Warn("stage output decode failed, default substituted",
		slog.String("session_id", session.ID),
		slog.String("stage", stage))
	return true
}

// ReconcileBudget выбирает вывод этапа бюджета или значение по умолчанию.
func ReconcileBudget(output StageOutput, fallback BudgetAnalysis) (BudgetAnalysis, bool) {
	var parsed BudgetAnalysis
	if output.decode(&parsed) {
		return parsed, true
	}
	return fallback, false
}

// ReconcileSavings выбирает вывод этапа сбережений или значение по умолчанию.
func ReconcileSavings(output StageOutput, fallback SavingsStrategy) (SavingsStrategy, bool) {
	var parsed SavingsStrategy
	if output.decode(&parsed) {
		return parsed, true
	}
	return fallback, false
}

// ReconcileDebt выбирает вывод этапа долгов или значение по умолчанию.
func ReconcileDebt(output StageOutput, fallback DebtReduction) (DebtReduction, bool) {
	var parsed DebtReduction
	if output.decode(&parsed) {
		return parsed, true
	}
	return fallback, false
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}

func notifyAll(observe StageObserver, usedDefault bool) {
	if observe == nil {
		return
	}
	for _, stage := range stageOrder {
		observe(stage, usedDefault)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/ai-financial-coach/internal/advisor"
	"example.com/ai-financial-coach/internal/auth"
	"example.com/ai-financial-coach/internal/ledger"
	"example.com/ai-financial-coach/internal/models"
	"example.com/ai-financial-coach/internal/notifications"
	"example.com/ai-financial-coach/internal/repository"
)

type AnalysisHandler struct {
	Service  *advisor.Service
	Runs     *repository.AnalysisRepository
	Notifier *notifications.Hub
	Provider string
	Model    string
}

// NewAnalysisHandler создает обработчик прогонов финансового анализа.
func NewAnalysisHandler(service *advisor.Service, runs *repository.AnalysisRepository, notifier *notifications.Hub, provider, model string) *AnalysisHandler {
	return &AnalysisHandler{
		Service:  service,
		Runs:     runs,
		Notifier: notifier,
		Provider: provider,
		Model:    model,
	}
}

type AnalyzeRequest struct {
	MonthlyIncome  float64                 `json:"monthly_income" validate:"gte=0"`
	Dependants     int                     `json:"dependants" validate:"gte=0"`
	Transactions   []ledger.RawTransaction `json:"transactions"`
	ManualExpenses map[string]float64      `json:"manual_expenses"`
	Debts          []ledger.RawDebt        `json:"debts"`
}

type AnalyzeResponse struct {
	ID           uuid.UUID            `json:"id"`
	SessionID    string               `json:"session_id"`
	Results      advisor.ResultBundle `json:"results"`
	UsedFallback bool                 `json:"used_fallback"`
	StageErrors  map[string]string    `json:"stage_errors,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type AnalysisListResponse struct {
	Analyses []models.AnalysisRun `json:"analyses"`
}

// Analyze прогоняет трехэтапный анализ и сохраняет результат.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	state := buildFinancialState(req, time.Now().UTC())

	publishAnalysisStarted(h.Notifier, userID, len(state.Transactions), len(state.Debts))

	observer := func(stage string, usedDefault bool) {
		publishStageCompleted(h.Notifier, userID, stage, usedDefault)
	}

	result := h.Service.Analyze(c.Request().Context(), state, observer)

	publishAnalysisCompleted(h.Notifier, userID, result.SessionID, result.UsedFallback)

	run, err := h.storeRun(c, userID, state, result)
	if err != nil {
		slog.Error("failed to store analysis run",
			slog.String("user_id", userID.String()),
			slog.String("session_id", result.SessionID),
			slog.String("error", err.Error()),
		)
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, AnalyzeResponse{
		ID:           run.ID,
		SessionID:    result.SessionID,
		Results:      result.Results,
		UsedFallback: result.UsedFallback,
		StageErrors:  result.StageErrors,
		CreatedAt:    run.CreatedAt,
	})
}

// List возвращает историю прогонов текущего пользователя.
func (h *AnalysisHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit := 0
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = parsed
	}

	runs, err := h.Runs.ListByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AnalysisListResponse{Analyses: runs})
}

// Get возвращает полный прогон с входом и результатами.
func (h *AnalysisHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id")
	}

	run, err := h.Runs.GetByID(c.Request().Context(), userID, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, run)
}

func (h *AnalysisHandler) storeRun(c echo.Context, userID uuid.UUID, state ledger.FinancialState, result advisor.AnalyzeResult) (models.AnalysisRun, error) {
	inputPayload, err := json.Marshal(state)
	if err != nil {
		return models.AnalysisRun{}, err
	}

	resultPayload, err := json.Marshal(result.Results)
	if err != nil {
		return models.AnalysisRun{}, err
	}

	return h.Runs.Create(c.Request().Context(), repository.AnalysisRunInput{
		UserID:        userID,
		SessionID:     result.SessionID,
		Provider:      h.Provider,
		Model:         h.Model,
		InputPayload:  inputPayload,
		ResultPayload: resultPayload,
		UsedFallback:  result.UsedFallback,
		ErrorMessage:  joinStageErrors(result.StageErrors),
	})
}

// buildFinancialState нормализует вход запроса в состояние для анализа.
func buildFinancialState(req AnalyzeRequest, now time.Time) ledger.FinancialState {
	transactions := ledger.NormalizeTransactions(req.Transactions)
	transactions = ledger.MergeManualExpenses(transactions, req.ManualExpenses, now)

	return ledger.FinancialState{
		MonthlyIncome:  req.MonthlyIncome,
		Dependants:     req.Dependants,
		Transactions:   transactions,
		CategoryTotals: ledger.Aggregate(transactions),
		ManualExpenses: req.ManualExpenses,
		Debts:          ledger.NormalizeDebts(req.Debts),
	}
}

func joinStageErrors(stageErrors map[string]string) *string {
	if len(stageErrors) == 0 {
		return nil
	}

	stages := make([]string, 0, len(stageErrors))
	for stage := range stageErrors {
		stages = append(stages, stage)
	}
	sort.Strings(stages)

	parts := make([]string, 0, len(stages))
	for _, stage := range stages {
		parts = append(parts, stage+": "+stageErrors[stage])
	}

	joined := strings.Join(parts, "; ")
	return &joined
}

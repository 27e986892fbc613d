package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/ai-financial-coach/internal/models"
)

type AnalysisRepository struct {
	db *pgxpool.Pool
}

// AnalysisRunInput — данные для сохранения одного прогона анализа.
type AnalysisRunInput struct {
	UserID        uuid.UUID
	SessionID     string
	Provider      string
	Model         string
	InputPayload  []byte
	ResultPayload []byte
	UsedFallback  bool
	ErrorMessage  *string
}

// NewAnalysisRepository создает репозиторий прогонов анализа.
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create сохраняет прогон и возвращает запись с идентификатором.
func (r *AnalysisRepository) Create(ctx context.Context, input AnalysisRunInput) (models.AnalysisRun, error) {
	var run models.AnalysisRun

	err := r.db.QueryRow(ctx,
		`INSERT INTO analysis_runs
		 (user_id, session_id, provider, model, input_payload, result_payload, used_fallback, error_message)
		 VALUES ($1, $2, $3, $4, NULLIF($5, '')::jsonb, NULLIF($6, '')::jsonb, $7, $8)
		 RETURNING id, user_id, session_id, provider, model, input_payload, result_payload, used_fallback, error_message, created_at`,
		input.UserID,
		input.SessionID,
		input.Provider,
		input.Model,
		string(input.InputPayload),
		string(input.ResultPayload),
		input.UsedFallback,
		input.ErrorMessage,
	).Scan(&run.ID, &run.UserID, &run.SessionID, &run.Provider, &run.Model,
		&run.InputPayload, &run.ResultPayload, &run.UsedFallback, &run.ErrorMessage, &run.CreatedAt)
	if err != nil {
		return run, fmt.Errorf("insert analysis run: %w", err)
	}

	return run, nil
}

// ListByUser возвращает прогоны пользователя без тяжелых payload-колонок.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, session_id, provider, model, used_fallback, error_message, created_at
		 FROM analysis_runs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	runs := make([]models.AnalysisRun, 0)
	for rows.Next() {
		var run models.AnalysisRun
		if err := rows.Scan(&run.ID, &run.UserID, &run.SessionID, &run.Provider, &run.Model,
			&run.UsedFallback, &run.ErrorMessage, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetByID возвращает полный прогон пользователя, включая payload-колонки.
func (r *AnalysisRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (models.AnalysisRun, error) {
	var run models.AnalysisRun

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, session_id, provider, model, input_payload, result_payload, used_fallback, error_message, created_at
		 FROM analysis_runs
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&run.ID, &run.UserID, &run.SessionID, &run.Provider, &run.Model,
		&run.InputPayload, &run.ResultPayload, &run.UsedFallback, &run.ErrorMessage, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return run, ErrNotFound
		}
		return run, err
	}

	return run, nil
}

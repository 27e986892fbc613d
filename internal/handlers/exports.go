package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/ai-financial-coach/internal/advisor"
	"example.com/ai-financial-coach/internal/auth"
	"example.com/ai-financial-coach/internal/repository"
)

const (
	exportTypeSpending = "spending"
	exportTypeDebts    = "debts"
)

// ExportJSON выгружает прогон анализа в JSON-файл.
func (h *AnalysisHandler) ExportJSON(c echo.Context) error {
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

	filename := "analysis-" + run.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, run)
}

// ExportCSV выгружает расходы или долги прогона в CSV-файл.
func (h *AnalysisHandler) ExportCSV(c echo.Context) error {
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

	var results advisor.ResultBundle
	if err := json.Unmarshal(run.ResultPayload, &results); err != nil {
		return serverError(c)
	}

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeSpending
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeSpending:
		if err := writeSpendingCSV(writer, run.ID, results.BudgetAnalysis); err != nil {
			return serverError(c)
		}
	case exportTypeDebts:
		if err := writeDebtsCSV(writer, run.ID, results.DebtReduction); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "analysis-" + run.ID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeSpendingCSV(writer *csv.Writer, runID uuid.UUID, analysis advisor.BudgetAnalysis) error {
	header := []string{
		"analysis_id",
		"category",
		"amount",
		"percentage",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, category := range analysis.SpendingCategories {
		record := []string{
			runID.String(),
			category.Category,
			formatAmount(category.Amount),
			formatAmount(category.Percentage),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeDebtsCSV(writer *csv.Writer, runID uuid.UUID, reduction advisor.DebtReduction) error {
	header := []string{
		"analysis_id",
		"name",
		"balance",
		"annual_percentage_rate",
		"minimum_payment",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, debt := range reduction.Debts {
		record := []string{
			runID.String(),
			debt.Name,
			formatAmount(debt.Balance),
			formatAmount(debt.APR),
			formatAmount(debt.MinimumPayment),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-financial-coach/internal/ledger"
)

// maxUploadBytes ограничивает размер принимаемого CSV-файла.
const maxUploadBytes = 5 << 20

type UploadHandler struct{}

// NewUploadHandler создает обработчик загрузки транзакций.
func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

type UploadErrorResponse struct {
	Error          string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// ParseTransactions принимает CSV с транзакциями и возвращает нормализованный результат.
func (h *UploadHandler) ParseTransactions(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file is too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return serverError(c)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return serverError(c)
	}
	if int64(len(content)) > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "file is too large"})
	}

	result, err := ledger.ParseTransactionsCSV(content)
	if err != nil {
		var schemaErr *ledger.SchemaError
		if errors.As(err, &schemaErr) {
			return c.JSON(http.StatusBadRequest, UploadErrorResponse{
				Error:          schemaErr.Error(),
				MissingColumns: schemaErr.Missing,
			})
		}
		return badRequest(c, err.Error())
	}

	return c.JSON(http.StatusOK, result)
}

// Template отдает образец CSV-файла с ожидаемыми колонками.
func (h *UploadHandler) Template(c echo.Context) error {
	template := "Date,Category,Amount\n" +
		"2025-01-05,Housing,1200.00\n" +
		"2025-01-07,Food,84.50\n" +
		"2025-01-12,Transport,40.00\n"

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"transactions-template.csv\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(template))
}

package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"example.com/ai-financial-coach/internal/ledger"
)

func uploadRequest(t *testing.T, csvBody string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "transactions.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csvBody)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/transactions", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

// TestParseTransactionsUpload проверяет успешный разбор загруженного CSV.
func TestParseTransactionsUpload(t *testing.T) {
	c, rec := uploadRequest(t, "Date,Category,Amount\n2025-01-05,Food,200.00\n2025-01-06,Housing,1200.00\n")

	if err := NewUploadHandler().ParseTransactions(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result ledger.ParseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if total := ledger.TotalExpenses(result.CategoryTotals); total != 1400 {
		t.Fatalf("expected total 1400, got %v", total)
	}
}

// TestParseTransactionsUploadMissingColumns проверяет ответ на CSV без обязательных колонок.
func TestParseTransactionsUploadMissingColumns(t *testing.T) {
	c, rec := uploadRequest(t, "Category,Note\nFood,lunch\n")

	if err := NewUploadHandler().ParseTransactions(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var response UploadErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.MissingColumns) != 2 || response.MissingColumns[0] != "Amount" || response.MissingColumns[1] != "Date" {
		t.Fatalf("expected missing Amount and Date, got %v", response.MissingColumns)
	}
}

// TestParseTransactionsUploadWithoutFile проверяет ответ без файла в форме.
func TestParseTransactionsUploadWithoutFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/transactions", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := NewUploadHandler().ParseTransactions(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

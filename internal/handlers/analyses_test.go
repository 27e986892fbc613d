package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"example.com/ai-financial-coach/internal/ledger"
)

// TestBuildFinancialState проверяет нормализацию входа запроса.
func TestBuildFinancialState(t *testing.T) {
	req := AnalyzeRequest{
		MonthlyIncome: 5000,
		Dependants:    1,
		Transactions: []ledger.RawTransaction{
			{Date: "2025-01-05", Category: "Food", Amount: json.RawMessage(`200`)},
			{Date: "2025-01-06", Category: "Food", Amount: json.RawMessage(`"bad"`)},
		},
		ManualExpenses: map[string]float64{"Housing": 1200},
		Debts: []ledger.RawDebt{
			{Name: "Card", Balance: 3000},
			{Name: "   ", Balance: 500},
		},
	}

	state := buildFinancialState(req, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	if len(state.Transactions) != 2 {
		t.Fatalf("expected 2 transactions (1 parsed + 1 manual), got %d", len(state.Transactions))
	}

	total := ledger.TotalExpenses(state.CategoryTotals)
	if total != 1400 {
		t.Fatalf("expected total 1400, got %v", total)
	}

	if len(state.Debts) != 1 || state.Debts[0].Name != "Card" {
		t.Fatalf("expected single debt Card, got %+v", state.Debts)
	}

	if state.MonthlyIncome != 5000 || state.Dependants != 1 {
		t.Fatalf("income and dependants must pass through, got %+v", state)
	}
}

// TestJoinStageErrors проверяет детерминированную склейку ошибок этапов.
func TestJoinStageErrors(t *testing.T) {
	if joinStageErrors(nil) != nil {
		t.Fatal("expected nil for empty map")
	}

	joined := joinStageErrors(map[string]string{
		"savings_strategy": "timeout",
		"budget_analysis":  "bad json",
	})
	if joined == nil {
		t.Fatal("expected non-nil message")
	}

	want := "budget_analysis: bad json; savings_strategy: timeout"
	if *joined != want {
		t.Fatalf("expected %q, got %q", want, *joined)
	}
}

// TestNormalizeName проверяет обрезку пробелов и пустых имен.
func TestNormalizeName(t *testing.T) {
	if normalizeName(nil) != nil {
		t.Fatal("expected nil for nil name")
	}

	blank := "   "
	if normalizeName(&blank) != nil {
		t.Fatal("expected nil for blank name")
	}

	raw := "  Alice  "
	normalized := normalizeName(&raw)
	if normalized == nil || *normalized != "Alice" {
		t.Fatalf("expected Alice, got %v", normalized)
	}
}

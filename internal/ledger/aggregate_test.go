package ledger

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

// TestAggregate проверяет равенство суммы итогов и суммы транзакций.
func TestAggregate(t *testing.T) {
	transactions := []Transaction{
		{Date: "2024-01-01", Category: "Housing", Amount: 1200.00},
		{Date: "2024-01-02", Category: "Food", Amount: 150.50},
		{Date: "2024-01-03", Category: "Food", Amount: 49.50},
		{Date: "2024-01-04", Category: "Transport", Amount: 30.00},
	}

	totals := Aggregate(transactions)

	want := []CategoryTotal{
		{Category: "Housing", Amount: 1200.00},
		{Category: "Food", Amount: 200.00},
		{Category: "Transport", Amount: 30.00},
	}
	if !reflect.DeepEqual(totals, want) {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	var sum float64
	for _, transaction := range transactions {
		sum += transaction.Amount
	}
	if math.Abs(TotalExpenses(totals)-sum) > 1e-9 {
		t.Fatalf("expected totals sum %f, got %f", sum, TotalExpenses(totals))
	}
}

// TestAggregateEmpty проверяет пустой вход.
func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	if len(totals) != 0 {
		t.Fatalf("expected no totals, got %+v", totals)
	}
	if TotalExpenses(totals) != 0 {
		t.Fatalf("expected zero total, got %f", TotalExpenses(totals))
	}
}

// TestMergeManualExpenses проверяет согласованность итогов после слияния.
func TestMergeManualExpenses(t *testing.T) {
	transactions := []Transaction{
		{Date: "2024-01-01", Category: "Housing", Amount: 1200.00},
	}
	manual := map[string]float64{
		"Food":    600.00,
		"Housing": 250.00,
	}
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	merged := MergeManualExpenses(transactions, manual, now)

	if len(merged) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(merged))
	}

	// Manual entries are appended in sorted category order, dated "now".
	if merged[1].Category != "Food" || merged[2].Category != "Housing" {
		t.Fatalf("unexpected order: %+v", merged)
	}
	if merged[1].Date != "2024-02-01" {
		t.Fatalf("expected merge date 2024-02-01, got %s", merged[1].Date)
	}

	total := TotalExpenses(Aggregate(merged))
	if math.Abs(total-2050.00) > 1e-9 {
		t.Fatalf("expected total 2050.00, got %f", total)
	}
}

// TestMergeManualExpensesNoInput проверяет отсутствие изменений без ручных расходов.
func TestMergeManualExpensesNoInput(t *testing.T) {
	transactions := []Transaction{
		{Date: "2024-01-01", Category: "Housing", Amount: 1200.00},
	}

	merged := MergeManualExpenses(transactions, nil, time.Now())
	if !reflect.DeepEqual(merged, transactions) {
		t.Fatalf("expected unchanged transactions, got %+v", merged)
	}
}

// TestNormalizeTransactions проверяет отбрасывание нечитаемых сырых рядов.
func TestNormalizeTransactions(t *testing.T) {
	rows := []RawTransaction{
		{Date: "2024-01-01", Category: "Housing", Amount: json.RawMessage(`1200`)},
		{Date: "2024-01-02", Category: "Food", Amount: json.RawMessage(`"$150.50"`)},
		{Date: "bad", Category: "Food", Amount: json.RawMessage(`10`)},
		{Date: "2024-01-04", Category: "Food", Amount: json.RawMessage(`"oops"`)},
		{Date: "2024-01-05", Category: "Food", Amount: json.RawMessage(`-3`)},
	}

	transactions := NormalizeTransactions(rows)

	want := []Transaction{
		{Date: "2024-01-01", Category: "Housing", Amount: 1200},
		{Date: "2024-01-02", Category: "Food", Amount: 150.50},
	}
	if !reflect.DeepEqual(transactions, want) {
		t.Fatalf("unexpected transactions: %+v", transactions)
	}
}

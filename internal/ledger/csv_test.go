package ledger

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// TestParseTransactionsCSV проверяет разбор корректного CSV.
func TestParseTransactionsCSV(t *testing.T) {
	content := []byte("Date,Category,Amount\n2024-01-01,Housing,1200.00\n2024-01-02,Food,150.50")

	result, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantTransactions := []Transaction{
		{Date: "2024-01-01", Category: "Housing", Amount: 1200.00},
		{Date: "2024-01-02", Category: "Food", Amount: 150.50},
	}
	if !reflect.DeepEqual(result.Transactions, wantTransactions) {
		t.Fatalf("unexpected transactions: %+v", result.Transactions)
	}

	wantTotals := []CategoryTotal{
		{Category: "Housing", Amount: 1200.00},
		{Category: "Food", Amount: 150.50},
	}
	if !reflect.DeepEqual(result.CategoryTotals, wantTotals) {
		t.Fatalf("unexpected totals: %+v", result.CategoryTotals)
	}
}

// TestParseTransactionsCSVMissingColumns проверяет SchemaError со списком колонок.
func TestParseTransactionsCSVMissingColumns(t *testing.T) {
	content := []byte("Category,Comment\nFood,lunch")

	_, err := ParseTransactionsCSV(content)

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}

	want := []string{"Amount", "Date"}
	if !reflect.DeepEqual(schemaErr.Missing, want) {
		t.Fatalf("expected missing %v, got %v", want, schemaErr.Missing)
	}

	if !strings.Contains(schemaErr.Error(), "Amount, Date") {
		t.Fatalf("expected sorted comma-joined columns in message, got %s", schemaErr.Error())
	}
}

// TestParseTransactionsCSVEmpty проверяет SchemaError для пустого файла.
func TestParseTransactionsCSVEmpty(t *testing.T) {
	_, err := ParseTransactionsCSV([]byte(""))

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

// TestParseTransactionsCSVDropsBadRows проверяет отбрасывание нечитаемых рядов.
func TestParseTransactionsCSVDropsBadRows(t *testing.T) {
	content := []byte(strings.Join([]string{
		"Date,Category,Amount",
		"2024-01-01,Housing,1200.00",
		"not-a-date,Food,50.00",
		"2024-01-03,Food,not-a-number",
		"2024-01-04,Transport,-15.00",
		"2024-01-05,Food,25.00",
	}, "\n"))

	result, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 surviving rows, got %d: %+v", len(result.Transactions), result.Transactions)
	}

	total := TotalExpenses(result.CategoryTotals)
	if math.Abs(total-1225.00) > 1e-9 {
		t.Fatalf("expected total 1225.00, got %f", total)
	}
}

// TestParseTransactionsCSVCurrencyDecoration проверяет очистку $ и разделителей.
func TestParseTransactionsCSVCurrencyDecoration(t *testing.T) {
	content := []byte("Date,Category,Amount\n2024-01-01,Housing,\"$1,200.00\"")

	result, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(result.Transactions))
	}
	if result.Transactions[0].Amount != 1200.00 {
		t.Fatalf("expected 1200.00, got %f", result.Transactions[0].Amount)
	}
}

// TestParseTransactionsCSVDateFormats проверяет распознавание разных форматов дат.
func TestParseTransactionsCSVDateFormats(t *testing.T) {
	content := []byte(strings.Join([]string{
		"Date,Category,Amount",
		"2024/01/05,Food,10.00",
		"01/15/2024,Food,10.00",
		"Jan 2, 2024,Food,10.00",
	}, "\n"))

	result, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"2024-01-05", "2024-01-15", "2024-01-02"}
	for i, transaction := range result.Transactions {
		if transaction.Date != want[i] {
			t.Fatalf("expected date %s, got %s", want[i], transaction.Date)
		}
	}
}

// TestParseTransactionsCSVEncodingFallback проверяет запасную кодировку Windows-1252.
func TestParseTransactionsCSVEncodingFallback(t *testing.T) {
	// "Café" in Windows-1252: 0xE9 is not valid UTF-8.
	content := []byte("Date,Category,Amount\n2024-01-01,Caf\xe9,20.00")

	result, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Transactions) != 1 || result.Transactions[0].Category != "Café" {
		t.Fatalf("unexpected transactions: %+v", result.Transactions)
	}
}

// TestParseTransactionsCSVIdempotent проверяет стабильность повторного прогона.
func TestParseTransactionsCSVIdempotent(t *testing.T) {
	content := []byte("Date,Category,Amount\n2024-01-01,Housing,1200.00\n01/02/2024,Food,150.50\nbad,Food,1.00")

	first, err := ParseTransactionsCSV(content)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var builder strings.Builder
	builder.WriteString("Date,Category,Amount\n")
	for _, transaction := range first.Transactions {
		fmt.Fprintf(&builder, "%s,%s,%s\n", transaction.Date, transaction.Category,
			strconv.FormatFloat(transaction.Amount, 'f', -1, 64))
	}

	second, err := ParseTransactionsCSV([]byte(builder.String()))
	if err != nil {
		t.Fatalf("expected no error on second pass, got %v", err)
	}

	if !reflect.DeepEqual(first.Transactions, second.Transactions) {
		t.Fatalf("expected identical transactions, got %+v vs %+v", first.Transactions, second.Transactions)
	}
}

// TestParseAmount проверяет разбор денежных значений.
func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("$1,200.00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if amount != 1200.00 {
		t.Fatalf("expected 1200.00, got %f", amount)
	}

	if _, err := ParseAmount("-5"); err == nil {
		t.Fatal("expected error for negative amount")
	}

	if _, err := ParseAmount("abc"); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}

	if _, err := ParseAmount("  "); err == nil {
		t.Fatal("expected error for blank amount")
	}
}

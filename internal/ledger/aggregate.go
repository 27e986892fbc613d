package ledger

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Aggregate группирует транзакции по категориям в порядке первого появления.
func Aggregate(transactions []Transaction) []CategoryTotal {
	index := make(map[string]int, len(transactions))
	totals := make([]CategoryTotal, 0, len(transactions))

	for _, transaction := range transactions {
		i, ok := index[transaction.Category]
		if !ok {
			index[transaction.Category] = len(totals)
			totals = append(totals, CategoryTotal{Category: transaction.Category})
			i = len(totals) - 1
		}
		totals[i].Amount += transaction.Amount
	}

	return totals
}

// TotalExpenses возвращает сумму всех категорийных итогов.
func TotalExpenses(totals []CategoryTotal) float64 {
	var total float64
	for _, entry := range totals {
		total += entry.Amount
	}
	return total
}

// MergeManualExpenses добавляет ручные расходы как транзакции с текущей датой.
//
// Manual entries are appended in sorted category order: a Go map has no
// insertion order, and two merges of the same input must produce the same
// transaction sequence.
func MergeManualExpenses(transactions []Transaction, manual map[string]float64, now time.Time) []Transaction {
	if len(manual) == 0 {
		return transactions
	}

	categories := make([]string, 0, len(manual))
	for category := range manual {
		if strings.TrimSpace(category) == "" {
			continue
		}
		categories = append(categories, category)
	}
	sort.Strings(categories)

	date := now.Format(DateLayout)
	merged := make([]Transaction, len(transactions), len(transactions)+len(categories))
	copy(merged, transactions)

	for _, category := range categories {
		amount := manual[category]
		if amount < 0 {
			amount = 0
		}
		merged = append(merged, Transaction{
			Date:     date,
			Category: category,
			Amount:   amount,
		})
	}

	return merged
}

// RawTransaction — сырой ряд транзакции с внешней границы (не из CSV).
type RawTransaction struct {
	Date     string          `json:"date"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
}

// NormalizeTransactions приводит сырые ряды к нормализованным транзакциям.
//
// Same policy as CSV ingestion: a row with an unparsable date or amount is
// dropped, never defaulted to zero.
func NormalizeTransactions(rows []RawTransaction) []Transaction {
	transactions := make([]Transaction, 0, len(rows))

	for _, row := range rows {
		date, ok := parseDate(row.Date)
		if !ok {
			continue
		}

		amount, err := parseRawAmount(row.Amount)
		if err != nil {
			continue
		}

		transactions = append(transactions, Transaction{
			Date:     date,
			Category: strings.TrimSpace(row.Category),
			Amount:   amount,
		})
	}

	return transactions
}

func parseRawAmount(raw json.RawMessage) (float64, error) {
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		if number < 0 {
			return 0, errNegativeAmount
		}
		return number, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, err
	}

	return ParseAmount(text)
}

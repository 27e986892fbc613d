package ledger

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DateLayout — каноничный формат даты для нормализованных транзакций.
const DateLayout = "2006-01-02"

var requiredColumns = []string{"Amount", "Category", "Date"}

// dateLayouts перечисляет принимаемые форматы даты во входном CSV.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	time.RFC3339,
}

// SchemaError возвращается, когда в CSV нет обязательных колонок.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// ParseResult — результат разбора загруженного CSV.
type ParseResult struct {
	Transactions   []Transaction   `json:"transactions"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
}

// ParseTransactionsCSV разбирает байты загруженного CSV в нормализованные транзакции.
//
// Text is decoded as UTF-8, with a Windows-1252 fallback for exports from older
// spreadsheet tools. The header must contain Date, Category and Amount; a row
// whose date or amount cannot be parsed is dropped entirely so it never shows
// up as a zero-amount transaction in the totals.
func ParseTransactionsCSV(content []byte) (ParseResult, error) {
	text, err := decodeText(content)
	if err != nil {
		return ParseResult{}, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ParseResult{}, &SchemaError{Missing: requiredColumns}
		}
		return ParseResult{}, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ParseResult{}, &SchemaError{Missing: missing}
	}

	dateIdx := columns["Date"]
	categoryIdx := columns["Category"]
	amountIdx := columns["Amount"]
	maxIdx := dateIdx
	if categoryIdx > maxIdx {
		maxIdx = categoryIdx
	}
	if amountIdx > maxIdx {
		maxIdx = amountIdx
	}

	transactions := make([]Transaction, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read csv row: %w", err)
		}
		if len(row) <= maxIdx {
			continue
		}

		date, ok := parseDate(row[dateIdx])
		if !ok {
			continue
		}

		amount, err := ParseAmount(row[amountIdx])
		if err != nil {
			continue
		}

		transactions = append(transactions, Transaction{
			Date:     date,
			Category: strings.TrimSpace(row[categoryIdx]),
			Amount:   amount,
		})
	}

	return ParseResult{
		Transactions:   transactions,
		CategoryTotals: Aggregate(transactions),
	}, nil
}

// ParseAmount разбирает денежную сумму, убирая знак валюты и разделители тысяч.
func ParseAmount(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, errors.New("empty amount")
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", value, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative amount %q", value)
	}

	return amount, nil
}

func parseDate(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return parsed.Format(DateLayout), true
		}
	}

	return "", false
}

func decodeText(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(content) {
		return string(content), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("decode csv content: %w", err)
	}

	return string(decoded), nil
}

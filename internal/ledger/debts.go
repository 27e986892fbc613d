package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errNegativeAmount = errors.New("negative amount")

// FlexibleAmount — денежное поле, принимающее число, строку или null.
//
// A malformed or missing value decodes to 0 instead of failing the whole debt
// entry. This is deliberately the opposite of the transaction policy, where a
// bad amount drops the row.
type FlexibleAmount float64

func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	*a = 0

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		if number > 0 {
			*a = FlexibleAmount(number)
		}
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		if value, parseErr := ParseAmount(text); parseErr == nil {
			*a = FlexibleAmount(value)
		}
	}

	return nil
}

// RawDebt — сырой долг с внешней границы; числовые поля допускают разные виды.
//
// Amount, InterestRate and MinPayment are legacy aliases still produced by the
// manual entry form.
type RawDebt struct {
	Name           string         `json:"name"`
	Balance        FlexibleAmount `json:"balance"`
	Amount         FlexibleAmount `json:"amount"`
	APR            FlexibleAmount `json:"annual_percentage_rate"`
	InterestRate   FlexibleAmount `json:"interest_rate"`
	MinimumPayment FlexibleAmount `json:"minimum_payment"`
	MinPayment     FlexibleAmount `json:"min_payment"`
}

// NormalizeDebts отбрасывает долги без имени и приводит числовые поля.
func NormalizeDebts(raw []RawDebt) []Debt {
	debts := make([]Debt, 0, len(raw))

	for _, entry := range raw {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		debts = append(debts, Debt{
			Name:           name,
			Balance:        pickAmount(entry.Balance, entry.Amount),
			APR:            pickAmount(entry.APR, entry.InterestRate),
			MinimumPayment: pickAmount(entry.MinimumPayment, entry.MinPayment),
		})
	}

	return debts
}

// TotalDebt возвращает сумму балансов нормализованных долгов.
func TotalDebt(debts []Debt) float64 {
	var total float64
	for _, debt := range debts {
		total += debt.Balance
	}
	return total
}

func pickAmount(primary, alias FlexibleAmount) float64 {
	if primary != 0 {
		return float64(primary)
	}
	return float64(alias)
}

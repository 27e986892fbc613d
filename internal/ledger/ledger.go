package ledger

// Transaction — нормализованная расходная операция из CSV или ручного ввода.
type Transaction struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryTotal — сумма расходов по одной категории.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Debt — нормализованный долг с обязательным непустым именем.
type Debt struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	APR            float64 `json:"annual_percentage_rate"`
	MinimumPayment float64 `json:"minimum_payment"`
}

// FinancialState — рабочий набор данных одного анализа.
type FinancialState struct {
	MonthlyIncome  float64            `json:"monthly_income"`
	Dependants     int                `json:"dependants"`
	Transactions   []Transaction      `json:"transactions"`
	CategoryTotals []CategoryTotal    `json:"category_totals"`
	ManualExpenses map[string]float64 `json:"manual_expenses,omitempty"`
	Debts          []Debt             `json:"debts"`
}

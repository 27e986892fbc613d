package advisor

import (
	"math"
	"testing"

	"example.com/ai-financial-coach/internal/ledger"
)

// TestDefaultResultsEmptyState проверяет полноту результата для пустого входа.
func TestDefaultResultsEmptyState(t *testing.T) {
	bundle := DefaultPolicy().DefaultResults(ledger.FinancialState{})

	if bundle.BudgetAnalysis.TotalExpenses != 0 {
		t.Fatalf("expected zero expenses, got %f", bundle.BudgetAnalysis.TotalExpenses)
	}
	if bundle.SavingsStrategy.EmergencyFund.RecommendedAmount != 0 {
		t.Fatalf("expected zero emergency target, got %f", bundle.SavingsStrategy.EmergencyFund.RecommendedAmount)
	}
	if bundle.SavingsStrategy.EmergencyFund.MonthsToTarget != 0 {
		t.Fatalf("expected zero horizon, got %d", bundle.SavingsStrategy.EmergencyFund.MonthsToTarget)
	}
	if bundle.DebtReduction.TotalDebt != 0 {
		t.Fatalf("expected zero debt, got %f", bundle.DebtReduction.TotalDebt)
	}

	if bundle.BudgetAnalysis.Recommendations == nil ||
		bundle.SavingsStrategy.Recommendations == nil ||
		bundle.SavingsStrategy.AutomationTechniques == nil ||
		bundle.DebtReduction.Recommendations == nil {
		t.Fatal("expected empty, non-nil recommendation lists")
	}
	if bundle.DebtReduction.Debts == nil {
		t.Fatal("expected empty, non-nil debts list")
	}
}

// TestDefaultResultsEmergencyFund проверяет расчет резервного фонда.
func TestDefaultResultsEmergencyFund(t *testing.T) {
	transactions := ledger.MergeManualExpenses(nil, map[string]float64{
		"Housing": 1450,
		"Food":    600,
	}, testTime())

	state := ledger.FinancialState{
		MonthlyIncome:  5000,
		Transactions:   transactions,
		CategoryTotals: ledger.Aggregate(transactions),
	}

	bundle := DefaultPolicy().DefaultResults(state)

	if math.Abs(bundle.BudgetAnalysis.TotalExpenses-2050) > 1e-9 {
		t.Fatalf("expected total expenses 2050, got %f", bundle.BudgetAnalysis.TotalExpenses)
	}

	fund := bundle.SavingsStrategy.EmergencyFund
	if fund.RecommendedAmount != 15000 {
		t.Fatalf("expected target 15000, got %f", fund.RecommendedAmount)
	}
	if fund.MonthlyContribution != 1250 {
		t.Fatalf("expected monthly 1250, got %f", fund.MonthlyContribution)
	}
	if fund.MonthsToTarget != 12 {
		t.Fatalf("expected 12 months, got %d", fund.MonthsToTarget)
	}
	if bundle.DebtReduction.TotalDebt != 0 {
		t.Fatalf("expected zero debt, got %f", bundle.DebtReduction.TotalDebt)
	}
}

// TestDefaultResultsExpensesExceedIncome проверяет выбор большего из двух целей.
func TestDefaultResultsExpensesExceedIncome(t *testing.T) {
	state := ledger.FinancialState{
		MonthlyIncome:  1000,
		CategoryTotals: []ledger.CategoryTotal{{Category: "Housing", Amount: 4000}},
	}

	bundle := DefaultPolicy().DefaultResults(state)

	if bundle.SavingsStrategy.EmergencyFund.RecommendedAmount != 4000 {
		t.Fatalf("expected target 4000, got %f", bundle.SavingsStrategy.EmergencyFund.RecommendedAmount)
	}
}

// TestDefaultResultsPayoffPlaceholders проверяет нулевые планы погашения.
func TestDefaultResultsPayoffPlaceholders(t *testing.T) {
	state := ledger.FinancialState{
		Debts: []ledger.Debt{
			{Name: "Card", Balance: 3000, APR: 18.5, MinimumPayment: 120},
			{Name: "Car Loan", Balance: 15000, APR: 6.5, MinimumPayment: 350},
		},
	}

	bundle := DefaultPolicy().DefaultResults(state)

	if bundle.DebtReduction.TotalDebt != 18000 {
		t.Fatalf("expected total debt 18000, got %f", bundle.DebtReduction.TotalDebt)
	}

	plans := bundle.DebtReduction.PayoffPlans
	if len(plans) != 2 {
		t.Fatalf("expected 2 payoff plans, got %d", len(plans))
	}
	if plans[0].Method != "avalanche" || plans[1].Method != "snowball" {
		t.Fatalf("unexpected plan methods: %+v", plans)
	}
	for _, plan := range plans {
		if plan.MonthlyPayment != 0 || plan.MonthsToPayoff != 0 || plan.InterestSaved != 0 {
			t.Fatalf("expected zero-valued placeholder, got %+v", plan)
		}
	}
}

// TestDefaultResultsPercentages проверяет доли категорий в расходах.
func TestDefaultResultsPercentages(t *testing.T) {
	state := ledger.FinancialState{
		CategoryTotals: []ledger.CategoryTotal{
			{Category: "Housing", Amount: 750},
			{Category: "Food", Amount: 250},
		},
	}

	bundle := DefaultPolicy().DefaultResults(state)

	categories := bundle.BudgetAnalysis.SpendingCategories
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if math.Abs(categories[0].Percentage-75) > 1e-9 || math.Abs(categories[1].Percentage-25) > 1e-9 {
		t.Fatalf("unexpected percentages: %+v", categories)
	}
}

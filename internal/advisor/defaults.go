package advisor

import "example.com/ai-financial-coach/internal/ledger"

// Policy — политика резервного фонда; значения приходят из конфигурации.
type Policy struct {
	EmergencyFundMultiplier    float64
	EmergencyFundHorizonMonths int
}

// DefaultPolicy возвращает стандартную политику: 3 месячных дохода за 12 месяцев.
func DefaultPolicy() Policy {
	return Policy{
		EmergencyFundMultiplier:    3,
		EmergencyFundHorizonMonths: 12,
	}
}

// DefaultResults вычисляет детерминированный базовый результат анализа.
//
// Used both as the seed sent to the model and as the fallback when a stage
// fails. Works for any well-typed input, including a completely empty state:
// the output is zero-valued but always shape-complete.
func (p Policy) DefaultResults(state ledger.FinancialState) ResultBundle {
	totals := state.CategoryTotals
	if len(totals) == 0 {
		totals = ledger.Aggregate(state.Transactions)
	}
	totalExpenses := ledger.TotalExpenses(totals)

	categories := make([]SpendingCategory, 0, len(totals))
	for _, total := range totals {
		category := SpendingCategory{
			Category: total.Category,
			Amount:   total.Amount,
		}
		if totalExpenses > 0 {
			category.Percentage = total.Amount / totalExpenses * 100
		}
		categories = append(categories, category)
	}

	emergencyTarget := state.MonthlyIncome * p.EmergencyFundMultiplier
	if totalExpenses > emergencyTarget {
		emergencyTarget = totalExpenses
	}

	var emergencyMonthly float64
	emergencyMonths := 0
	if emergencyTarget > 0 && p.EmergencyFundHorizonMonths > 0 {
		emergencyMonthly = emergencyTarget / float64(p.EmergencyFundHorizonMonths)
		emergencyMonths = p.EmergencyFundHorizonMonths
	}

	debts := state.Debts
	if debts == nil {
		debts = make([]ledger.Debt, 0)
	}

	return ResultBundle{
		BudgetAnalysis: BudgetAnalysis{
			TotalExpenses:      totalExpenses,
			MonthlyIncome:      state.MonthlyIncome,
			SpendingCategories: categories,
			Recommendations:    make([]SpendingRecommendation, 0),
		},
		SavingsStrategy: SavingsStrategy{
			EmergencyFund: EmergencyFund{
				RecommendedAmount:   emergencyTarget,
				MonthlyContribution: emergencyMonthly,
				MonthsToTarget:      emergencyMonths,
			},
			Recommendations:      make([]SavingsRecommendation, 0),
			AutomationTechniques: make([]AutomationTechnique, 0),
		},
		DebtReduction: DebtReduction{
			TotalDebt: ledger.TotalDebt(debts),
			Debts:     debts,
			PayoffPlans: []PayoffPlan{
				{Method: payoffMethodAvalanche},
				{Method: payoffMethodSnowball},
			},
			Recommendations: make([]DebtRecommendation, 0),
		},
	}
}

package advisor

import "example.com/ai-financial-coach/internal/ledger"

const (
	StageBudgetAnalysis  = "budget_analysis"
	StageSavingsStrategy = "savings_strategy"
	StageDebtReduction   = "debt_reduction"

	payoffMethodAvalanche = "avalanche"
	payoffMethodSnowball  = "snowball"
)

// stageOrder фиксирует последовательность запуска этапов анализа.
var stageOrder = []string{StageBudgetAnalysis, StageSavingsStrategy, StageDebtReduction}

type SpendingCategory struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type SpendingRecommendation struct {
	Category         string  `json:"category"`
	Recommendation   string  `json:"recommendation"`
	PotentialSavings float64 `json:"potential_savings,omitempty"`
}

type BudgetAnalysis struct {
	TotalExpenses      float64                  `json:"total_expenses"`
	MonthlyIncome      float64                  `json:"monthly_income"`
	SpendingCategories []SpendingCategory       `json:"spending_categories"`
	Recommendations    []SpendingRecommendation `json:"recommendations"`
}

type EmergencyFund struct {
	RecommendedAmount   float64 `json:"recommended_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	MonthsToTarget      int     `json:"months_to_target"`
}

type SavingsRecommendation struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Rationale string  `json:"rationale,omitempty"`
}

type AutomationTechnique struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SavingsStrategy struct {
	EmergencyFund        EmergencyFund           `json:"emergency_fund"`
	Recommendations      []SavingsRecommendation `json:"recommendations"`
	AutomationTechniques []AutomationTechnique   `json:"automation_techniques"`
}

type PayoffPlan struct {
	Method         string  `json:"method"`
	MonthlyPayment float64 `json:"monthly_payment"`
	MonthsToPayoff int     `json:"months_to_payoff"`
	InterestSaved  float64 `json:"interest_saved"`
}

type DebtRecommendation struct {
	Recommendation string  `json:"recommendation"`
	ImpactAmount   float64 `json:"impact_amount,omitempty"`
}

type DebtReduction struct {
	TotalDebt       float64              `json:"total_debt"`
	Debts           []ledger.Debt        `json:"debts"`
	PayoffPlans     []PayoffPlan         `json:"payoff_plans"`
	Recommendations []DebtRecommendation `json:"recommendations"`
}

// ResultBundle — итог анализа; все три этапа заполнены всегда.
type ResultBundle struct {
	BudgetAnalysis  BudgetAnalysis  `json:"budget_analysis"`
	SavingsStrategy SavingsStrategy `json:"savings_strategy"`
	DebtReduction   DebtReduction   `json:"debt_reduction"`
}

package advisor

import (
	"encoding/json"
	"fmt"

	"example.com/ai-financial-coach/internal/ledger"
)

const systemPrompt = "You are a financial coach. Respond with JSON only, without extra text."

func buildBudgetPrompt(state ledger.FinancialState) (string, error) {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Analyze the user's spending and suggest budget improvements. You are the first of three financial coaching stages; savings and debt stages build on your output.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "total_expenses": number,
  "monthly_income": number,
  "spending_categories": [
    {"category": string, "amount": number, "percentage": number}
  ],
  "recommendations": [
    {"category": string, "recommendation": string, "potential_savings": number}
  ]
}
- total_expenses must equal the sum of spending_categories amounts.
- Keep recommendations short and actionable (3-5 entries).

Financial data:
%s`, string(payload))

	return prompt, nil
}

func buildSavingsPrompt(state ledger.FinancialState, budget json.RawMessage) (string, error) {
	payload, err := json.MarshalIndent(struct {
		State          ledger.FinancialState `json:"financial_data"`
		BudgetAnalysis json.RawMessage       `json:"budget_analysis"`
	}{State: state, BudgetAnalysis: budget}, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Create a personalized savings strategy. You are the second of three financial coaching stages; the budget analysis stage output is included below.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "emergency_fund": {"recommended_amount": number, "monthly_contribution": number, "months_to_target": integer},
  "recommendations": [
    {"category": string, "amount": number, "rationale": string}
  ],
  "automation_techniques": [
    {"name": string, "description": string}
  ]
}
- Emergency fund target should cover at least three months of income or total expenses, whichever is larger.
- Account for the number of dependants when sizing the fund.

Input:
%s`, string(payload))

	return prompt, nil
}

func buildDebtPrompt(state ledger.FinancialState, budget, savings json.RawMessage) (string, error) {
	payload, err := json.MarshalIndent(struct {
		State           ledger.FinancialState `json:"financial_data"`
		BudgetAnalysis  json.RawMessage       `json:"budget_analysis"`
		SavingsStrategy json.RawMessage       `json:"savings_strategy"`
	}{State: state, BudgetAnalysis: budget, SavingsStrategy: savings}, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Create a debt payoff plan. You are the final of three financial coaching stages; prior stage outputs are included below.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "total_debt": number,
  "debts": [
    {"name": string, "balance": number, "annual_percentage_rate": number, "minimum_payment": number}
  ],
  "payoff_plans": [
    {"method": "avalanche" | "snowball", "monthly_payment": number, "months_to_payoff": integer, "interest_saved": number}
  ],
  "recommendations": [
    {"recommendation": string, "impact_amount": number}
  ]
}
- Provide both an avalanche (highest rate first) and a snowball (smallest balance first) plan.
- Only include debts from the input; never invent new ones.

Input:
%s`, string(payload))

	return prompt, nil
}

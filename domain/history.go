package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CalculationKind string

const (
	KindLoan          CalculationKind = "loan"
	KindMortgage      CalculationKind = "mortgage"
	KindCarLoan       CalculationKind = "car_loan"
	KindInvestment    CalculationKind = "investment"
	KindSavingsGoal   CalculationKind = "savings_goal"
	KindAffordability CalculationKind = "affordability"
	KindBreakEven     CalculationKind = "break_even"
	KindTermCompare   CalculationKind = "term_comparison"
)

// CalculationRecord is a saved calculation with its inputs and result as JSON.
type CalculationRecord struct {
	ID        uuid.UUID       `json:"id"`
	Kind      CalculationKind `json:"kind"`
	Inputs    json.RawMessage `json:"inputs"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fincalc/advice"
	"fincalc/domain"
	"fincalc/finance"
)

var ErrAdviceUnavailable = errors.New("advice unavailable")

const systemPrompt = "You are a personal finance coach. You explain loan and mortgage numbers in plain language, " +
	"give one or two practical suggestions the borrower can act on, and never invent figures that were not provided. " +
	"Answer in 3-4 sentences."

// AdviceClient is satisfied by *advice.Client.
type AdviceClient interface {
	Complete(ctx context.Context, messages []advice.Message) (string, error)
}

// Tip is an advice completion together with the quota decision that
// allowed (or denied) it.
type Tip struct {
	Text     string               `json:"text,omitempty"`
	Decision domain.UsageDecision `json:"decision"`
}

// AdviceService gates advice requests on the daily AI quota. Usage is only
// recorded for completions that were delivered.
type AdviceService struct {
	client       AdviceClient
	entitlements *EntitlementService
	logger       *slog.Logger
}

// NewAdviceService creates an AdviceService. A nil client makes every
// allowed request fail with ErrAdviceUnavailable.
func NewAdviceService(client AdviceClient, entitlements *EntitlementService, logger *slog.Logger) *AdviceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdviceService{client: client, entitlements: entitlements, logger: logger}
}

func (s *AdviceService) Tip(ctx context.Context, kind domain.CalculationKind, prompt string) (Tip, error) {
	decision := s.entitlements.CanUseAI(ctx, 1)
	if !decision.Allowed {
		return Tip{Decision: decision}, ErrQuotaExceeded
	}
	if s.client == nil {
		return Tip{Decision: decision}, fmt.Errorf("%w: no advice endpoint configured", ErrAdviceUnavailable)
	}

	text, err := s.client.Complete(ctx, []advice.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("advice request failed", "kind", kind, "err", err)
		return Tip{Decision: decision}, fmt.Errorf("%w: %w", ErrAdviceUnavailable, err)
	}

	quota := s.entitlements.RecordAIUse(ctx, 1)
	if !quota.Unlimited {
		decision.Remaining = max(0, quota.DailyLimit-quota.DailyCount)
	}
	return Tip{Text: text, Decision: decision}, nil
}

// MortgageTip calculates the mortgage and asks for a tip about it.
func (s *AdviceService) MortgageTip(ctx context.Context, in domain.MortgageInputs) (Tip, error) {
	calc, err := finance.CalculateMortgage(in)
	if err != nil {
		return Tip{}, err
	}
	return s.Tip(ctx, domain.KindMortgage, MortgagePrompt(in, calc))
}

// CarLoanTip calculates the car loan and asks for a tip about it.
func (s *AdviceService) CarLoanTip(ctx context.Context, in domain.CarLoanInputs) (Tip, error) {
	calc, err := finance.CalculateCarLoan(in)
	if err != nil {
		return Tip{}, err
	}
	return s.Tip(ctx, domain.KindCarLoan, CarLoanPrompt(in, calc))
}

func MortgagePrompt(in domain.MortgageInputs, c domain.MortgageCalculation) string {
	pmi := "No PMI is charged."
	if c.RequiresPMI {
		pmi = fmt.Sprintf("PMI of $%.2f per month is charged because the loan-to-value ratio is above 80%%.", c.Breakdown.PMI)
	}
	return fmt.Sprintf(`Review this mortgage and suggest how the borrower could lower its cost.

- Home price: $%.2f
- Down payment: $%.2f
- Loan amount: $%.2f (loan-to-value %.2f%%)
- Interest rate: %.3f%% for %d years
- Principal and interest: $%.2f per month
- Total monthly payment with taxes, insurance and HOA: $%.2f
- Total interest over the loan: $%.2f
%s`,
		in.HomePrice, in.DownPayment, c.LoanAmount, c.LoanToValue,
		in.InterestRate, in.LoanTerm, c.MonthlyPayment, c.TotalMonthlyPayment,
		c.TotalInterest, pmi)
}

func CarLoanPrompt(in domain.CarLoanInputs, c domain.CarLoanCalculation) string {
	if c.PaidInCash {
		return fmt.Sprintf(`The buyer is paying $%.2f for a $%.2f vehicle entirely with the down payment and trade-in.
Suggest what to keep in mind when buying a car without financing.`, c.TotalAmount, in.VehiclePrice)
	}
	return fmt.Sprintf(`Review this car loan and suggest how the buyer could lower its cost.

- Vehicle price: $%.2f
- Down payment: $%.2f, trade-in: $%.2f
- Sales tax: $%.2f, fees: $%.2f
- Amount financed: $%.2f
- Interest rate: %.3f%% for %d years
- Monthly payment: $%.2f
- Total interest over the loan: $%.2f`,
		in.VehiclePrice, in.DownPayment, in.TradeInValue,
		c.SalesTax, in.Fees, c.LoanAmount,
		in.InterestRate, in.LoanTerm, c.MonthlyPayment, c.TotalInterest)
}

// UserMessage turns an advice failure into text that can be shown to the
// user as-is.
func UserMessage(err error, decision domain.UsageDecision) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaExceeded):
		return decision.Reason
	case errors.Is(err, advice.ErrTimeout):
		return "The tip service took too long to respond. Please try again."
	case errors.Is(err, ErrAdviceUnavailable):
		return "We couldn't get a tip right now. Check your connection and try again."
	default:
		return err.Error()
	}
}

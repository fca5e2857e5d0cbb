package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fincalc/domain"
	"fincalc/finance"
	"fincalc/repository"
)

// CalculatorService runs the calculation engine and keeps a history of
// successful calculations. History failures never affect the result.
type CalculatorService struct {
	repo   repository.CalculationRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewCalculatorService creates a CalculatorService. repo may be nil to
// disable history.
func NewCalculatorService(repo repository.CalculationRepository, logger *slog.Logger) *CalculatorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculatorService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *CalculatorService) CalculateLoan(ctx context.Context, in domain.LoanInput) finance.Result[domain.LoanResult] {
	return recordResult(ctx, s, domain.KindLoan, in, finance.NewResult(finance.CalculateLoan(in)))
}

func (s *CalculatorService) CalculateMortgage(ctx context.Context, in domain.MortgageInputs) finance.Result[domain.MortgageCalculation] {
	return recordResult(ctx, s, domain.KindMortgage, in, finance.NewResult(finance.CalculateMortgage(in)))
}

func (s *CalculatorService) CalculateCarLoan(ctx context.Context, in domain.CarLoanInputs) finance.Result[domain.CarLoanCalculation] {
	return recordResult(ctx, s, domain.KindCarLoan, in, finance.NewResult(finance.CalculateCarLoan(in)))
}

func (s *CalculatorService) CalculateInvestment(ctx context.Context, in domain.InvestmentInputs) finance.Result[domain.InvestmentCalculation] {
	return recordResult(ctx, s, domain.KindInvestment, in, finance.NewResult(finance.CalculateInvestment(in)))
}

func (s *CalculatorService) CalculateSavingsGoal(ctx context.Context, in domain.SavingsGoalInputs) finance.Result[domain.SavingsGoalCalculation] {
	return recordResult(ctx, s, domain.KindSavingsGoal, in, finance.NewResult(finance.CalculateSavingsGoal(in)))
}

func (s *CalculatorService) CalculateLoanAffordability(ctx context.Context, in domain.AffordabilityInputs) finance.Result[domain.AffordabilityCalculation] {
	return recordResult(ctx, s, domain.KindAffordability, in, finance.NewResult(finance.CalculateLoanAffordability(in)))
}

func (s *CalculatorService) CalculateBreakEvenPoint(ctx context.Context, in domain.BreakEvenInputs) finance.Result[domain.BreakEvenCalculation] {
	return recordResult(ctx, s, domain.KindBreakEven, in, finance.NewResult(finance.CalculateBreakEvenPoint(in)))
}

func (s *CalculatorService) CompareLoanTerms(ctx context.Context, in domain.TermComparisonInputs) finance.Result[domain.TermComparison] {
	return recordResult(ctx, s, domain.KindTermCompare, in, finance.NewResult(finance.CompareLoanTerms(in)))
}

// AmortizationSchedule is not kept in history; it is derived from a saved
// loan calculation on demand.
func (s *CalculatorService) AmortizationSchedule(_ context.Context, req domain.AmortizationRequest) finance.Result[[]domain.AmortizationEntry] {
	return finance.NewResult(finance.AmortizationSchedule(req))
}

// History returns the most recent calculations, newest first.
func (s *CalculatorService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListCalculations(ctx, limit)
}

func recordResult[I, T any](ctx context.Context, s *CalculatorService, kind domain.CalculationKind, in I, res finance.Result[T]) finance.Result[T] {
	if !res.OK() {
		s.logger.Debug("calculation rejected", "kind", kind, "field", res.Err.Field, "err", res.Err.Message)
		return res
	}
	s.save(ctx, kind, in, res.Value)
	return res
}

func (s *CalculatorService) save(ctx context.Context, kind domain.CalculationKind, in, out any) {
	if s.repo == nil {
		return
	}
	inputs, err := json.Marshal(in)
	if err != nil {
		s.logger.Warn("failed to encode calculation inputs", "kind", kind, "err", err)
		return
	}
	result, err := json.Marshal(out)
	if err != nil {
		s.logger.Warn("failed to encode calculation result", "kind", kind, "err", err)
		return
	}

	rec := domain.CalculationRecord{
		ID:        uuid.New(),
		Kind:      kind,
		Inputs:    inputs,
		Result:    result,
		CreatedAt: s.now(),
	}
	if err := s.repo.SaveCalculation(ctx, rec); err != nil {
		s.logger.Warn("failed to save calculation", "kind", kind, "err", err)
	}
}

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fincalc/cli"
	"fincalc/domain"
	"fincalc/finance"
	"fincalc/service"
)

var (
	mortgageIn domain.MortgageInputs
	carLoanIn  domain.CarLoanInputs
	scheduleIn domain.AmortizationRequest
	flagStep   int
)

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Monthly payment, PMI and total cost of a home loan",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalculation(func(svc *service.CalculatorService) error {
			res := svc.CalculateMortgage(cmd.Context(), mortgageIn)
			return report(cmd.OutOrStdout(), res, cli.RenderMortgage)
		})
	},
}

var carLoanCmd = &cobra.Command{
	Use:   "car-loan",
	Short: "Monthly payment and total cost of an auto loan",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCalculation(func(svc *service.CalculatorService) error {
			res := svc.CalculateCarLoan(cmd.Context(), carLoanIn)
			return report(cmd.OutOrStdout(), res, cli.RenderCarLoan)
		})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Amortization schedule for a fixed-payment loan",
	Long:  "Amortization schedule for a fixed-payment loan. Without --payment the level payment for the term is used.",
	RunE:  runSchedule,
}

func init() {
	f := mortgageCmd.Flags()
	f.Float64Var(&mortgageIn.HomePrice, "home-price", 0, "Home price")
	f.Float64Var(&mortgageIn.DownPayment, "down-payment", 0, "Down payment")
	f.Float64Var(&mortgageIn.InterestRate, "rate", 0, "Annual interest rate (%)")
	f.IntVar(&mortgageIn.LoanTerm, "term", 30, "Loan term in years")
	f.Float64Var(&mortgageIn.PropertyTaxRate, "tax-rate", 0, "Annual property tax rate (%)")
	f.Float64Var(&mortgageIn.HomeInsuranceRate, "insurance-rate", 0, "Annual home insurance rate (%)")
	f.Float64Var(&mortgageIn.PMIRate, "pmi-rate", 0, "Annual PMI rate (%)")
	f.Float64Var(&mortgageIn.HOAFees, "hoa", 0, "Monthly HOA fees")
	_ = mortgageCmd.MarkFlagRequired("home-price")

	f = carLoanCmd.Flags()
	f.Float64Var(&carLoanIn.VehiclePrice, "price", 0, "Vehicle price")
	f.Float64Var(&carLoanIn.DownPayment, "down-payment", 0, "Down payment")
	f.Float64Var(&carLoanIn.TradeInValue, "trade-in", 0, "Trade-in value")
	f.Float64Var(&carLoanIn.InterestRate, "rate", 0, "Annual interest rate (%)")
	f.IntVar(&carLoanIn.LoanTerm, "term", 5, "Loan term in years")
	f.Float64Var(&carLoanIn.SalesTaxRate, "sales-tax", 0, "Sales tax rate (%)")
	f.Float64Var(&carLoanIn.Fees, "fees", 0, "Fees added to the loan")
	_ = carLoanCmd.MarkFlagRequired("price")

	f = scheduleCmd.Flags()
	f.Float64Var(&scheduleIn.LoanAmount, "amount", 0, "Loan amount")
	f.Float64Var(&scheduleIn.InterestRate, "rate", 0, "Annual interest rate (%)")
	f.IntVar(&scheduleIn.TermYears, "years", 30, "Term in years")
	f.Float64Var(&scheduleIn.MonthlyPayment, "payment", 0, "Monthly payment")
	f.IntVar(&flagStep, "step", 12, "Show every n-th month")
	_ = scheduleCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(mortgageCmd, carLoanCmd, scheduleCmd)
}

// runCalculation gives fn a calculator that records into the local store.
// History is best effort: when the store cannot be opened the calculation
// still runs.
func runCalculation(fn func(*service.CalculatorService) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cliLogger(cfg)

	st, err := openLocalStore(cfg)
	if err != nil {
		logger.Warn("history disabled", "err", err)
		return fn(service.NewCalculatorService(nil, logger))
	}
	defer st.Close()
	return fn(service.NewCalculatorService(st, logger))
}

func report[T any](w io.Writer, res finance.Result[T], render func(T) string) error {
	if !res.OK() {
		fmt.Fprintf(w, "\n  Invalid %s: %s\n\n", res.Err.Field, res.Err.Message)
		return res.Err
	}
	if flagJSON {
		return printJSON(w, res.Value)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, render(res.Value))
	return nil
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	req := scheduleIn
	if req.MonthlyPayment == 0 {
		loan, err := finance.CalculateLoan(domain.LoanInput{
			Amount:       req.LoanAmount,
			InterestRate: req.InterestRate,
			TermMonths:   req.TermYears * 12,
		})
		if err != nil {
			return err
		}
		req.MonthlyPayment = loan.MonthlyPayment
	}

	svc := service.NewCalculatorService(nil, nil)
	res := svc.AmortizationSchedule(cmd.Context(), req)
	return report(cmd.OutOrStdout(), res, func(entries []domain.AmortizationEntry) string {
		return cli.RenderSchedule(entries, flagStep)
	})
}

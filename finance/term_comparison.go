package finance

import (
	"sort"

	"fincalc/domain"
)

var preferenceWeights = map[domain.TermPreference][2]float64{
	domain.PreferMinimizeInterest: {0.6, 0.4},
	domain.PreferMinimizePayment:  {0.4, 0.6},
	domain.PreferBalanced:         {0.5, 0.5},
}

// CompareLoanTerms prices the same loan over several terms and ranks the
// affordable ones by the caller's preference. Scores run from 0 to 10.
func CompareLoanTerms(in domain.TermComparisonInputs) (domain.TermComparison, error) {
	err := firstError(
		checkPositive("loanAmount", in.LoanAmount),
		checkRate("interestRate", in.InterestRate, MaxInterestRate),
		checkNonNegative("maxMonthlyPayment", in.MaxMonthlyPayment),
	)
	if err != nil {
		return domain.TermComparison{}, err
	}
	if len(in.TermsYears) == 0 {
		return domain.TermComparison{}, invalid("termsYears", "at least one term is required")
	}
	seen := make(map[int]bool, len(in.TermsYears))
	for _, term := range in.TermsYears {
		if err := checkYears("termsYears", term, MinTermYears, MaxMortgageTermYears); err != nil {
			return domain.TermComparison{}, err
		}
		if seen[term] {
			return domain.TermComparison{}, invalid("termsYears", "duplicate term of %d years", term)
		}
		seen[term] = true
	}

	preference := in.Preference
	if preference == "" {
		preference = domain.PreferBalanced
	}
	weights, ok := preferenceWeights[preference]
	if !ok {
		return domain.TermComparison{}, invalid("preference", "unknown preference %q", preference)
	}

	options := make([]domain.TermOption, 0, len(in.TermsYears))
	for _, term := range in.TermsYears {
		n := term * 12
		payment := levelPayment(in.LoanAmount, in.InterestRate, n)
		if in.MaxMonthlyPayment > 0 && payment > in.MaxMonthlyPayment {
			continue
		}
		interest := totalInterest(payment, n, in.LoanAmount)
		if in.InterestRate == 0 {
			interest = 0
		}
		options = append(options, domain.TermOption{
			TermYears:      term,
			MonthlyPayment: payment,
			TotalInterest:  interest,
			TotalCost:      RoundCents(in.LoanAmount + interest),
		})
	}
	if len(options) == 0 {
		return domain.TermComparison{}, invalid("maxMonthlyPayment", "no term keeps the payment at or below %.2f", in.MaxMonthlyPayment)
	}

	scoreOptions(options, weights)

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Score != options[j].Score {
			return options[i].Score > options[j].Score
		}
		return options[i].TermYears < options[j].TermYears
	})

	return domain.TermComparison{
		RecommendedTerm: options[0].TermYears,
		Options:         options,
	}, nil
}

// scoreOptions normalizes interest and payment across the candidate set;
// the cheapest option on an axis scores 10 on it.
func scoreOptions(options []domain.TermOption, weights [2]float64) {
	minI, maxI := options[0].TotalInterest, options[0].TotalInterest
	minP, maxP := options[0].MonthlyPayment, options[0].MonthlyPayment
	for _, o := range options[1:] {
		minI, maxI = min(minI, o.TotalInterest), max(maxI, o.TotalInterest)
		minP, maxP = min(minP, o.MonthlyPayment), max(maxP, o.MonthlyPayment)
	}

	for i := range options {
		interestScore := normalized(options[i].TotalInterest, minI, maxI)
		paymentScore := normalized(options[i].MonthlyPayment, minP, maxP)
		options[i].Score = RoundCents(weights[0]*interestScore + weights[1]*paymentScore)
	}
}

func normalized(v, lo, hi float64) float64 {
	if hi == lo {
		return 10
	}
	return 10 * (hi - v) / (hi - lo)
}

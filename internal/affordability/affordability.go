// Package affordability checks the debt-service ratio lenders apply to the household
// or to each shareholder.
package affordability

import (
	"fmt"
	"math"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

const source = "affordability"

// Analyze computes the ratio for the borrower(s). newPayment is the monthly loan
// instalment including insurance.
func Analyze(in domain.Input, newPayment float64, cfg paramdomain.ResolvedConfiguration) (domain.AffordabilityResult, []domain.Alert) {
	rules := cfg.Affordability
	weighting := math.Min(in.Options.RentalIncomeWeighting/100, rules.MaxRentalWeighting)
	if weighting < 0 {
		weighting = 0
	}

	maxTerm := rules.MaxTermYears
	if in.Property.Condition == domain.ConditionNew {
		maxTerm = rules.MaxTermYearsNew
	}

	res := domain.AffordabilityResult{
		MaxRatio:      rules.MaxRatio,
		Weighting:     weighting * 100,
		TermYears:     in.Financing.TermYears,
		MaxTermYears:  maxTerm,
		TermCompliant: in.Financing.TermYears <= maxTerm,
	}

	var alerts []domain.Alert
	borrowers := borrowersOf(in.Structure)
	res.Borrowers = make([]domain.DebtRatio, 0, len(borrowers))
	res.RatioCompliant = true
	for _, b := range borrowers {
		share := b.OwnershipPct / 100
		ratio := debtRatio(b, share*newPayment, share*in.Operating.MonthlyRent*weighting)
		ratio.Compliant = ratio.Ratio <= rules.MaxRatio
		res.Borrowers = append(res.Borrowers, ratio)

		res.Ratio = math.Max(res.Ratio, ratio.Ratio)
		res.ResidualIncome += ratio.ResidualIncome
		res.RatioCompliant = res.RatioCompliant && ratio.Compliant
		alerts = append(alerts, ratioAlerts(ratio, rules, in.Structure.Corporate())...)
	}

	res.NearLimit = res.RatioCompliant && res.Ratio >= rules.MaxRatio-rules.ProximityPoints
	res.Compliant = res.RatioCompliant && res.TermCompliant
	if !res.TermCompliant {
		alerts = append(alerts, domain.NewAlert(domain.SeverityError, source, "loan_term_exceeded",
			fmt.Sprintf("Loan term of %d years exceeds the %d-year lending ceiling", in.Financing.TermYears, maxTerm)))
	}
	return res, alerts
}

// borrowersOf returns the household as a single full-ownership borrower, or the
// shareholders of a company.
func borrowersOf(s domain.Structure) []domain.Shareholder {
	if s.Corporate() {
		return s.Shareholders
	}
	return []domain.Shareholder{{
		OwnershipPct:           100,
		MonthlyIncome:          s.MonthlyIncome,
		ExistingMonthlyDebt:    s.ExistingMonthlyDebt,
		ExistingMonthlyCharges: s.ExistingMonthlyCharges,
	}}
}

func debtRatio(b domain.Shareholder, payment, weightedRent float64) domain.DebtRatio {
	r := domain.DebtRatio{
		Name:                   b.Name,
		OwnershipPct:           b.OwnershipPct,
		MonthlyIncome:          b.MonthlyIncome,
		WeightedRent:           weightedRent,
		ExistingMonthlyDebt:    b.ExistingMonthlyDebt,
		ExistingMonthlyCharges: b.ExistingMonthlyCharges,
		NewPayment:             payment,
	}
	denominator := b.MonthlyIncome + weightedRent
	if denominator <= 0 {
		r.Ratio = 100
	} else {
		r.Ratio = (b.ExistingMonthlyDebt + payment) / denominator * 100
	}
	r.ResidualIncome = denominator - b.ExistingMonthlyDebt - payment - b.ExistingMonthlyCharges
	return r
}

func ratioAlerts(r domain.DebtRatio, rules paramdomain.AffordabilityRules, corporate bool) []domain.Alert {
	who := "The household"
	suffix := ""
	if corporate {
		who = "Shareholder " + r.Name
		suffix = "_" + r.Name
	}

	var alerts []domain.Alert
	if r.MonthlyIncome <= 0 {
		alerts = append(alerts, withField(domain.NewAlert(domain.SeverityInfo, source, "income_missing"+suffix,
			fmt.Sprintf("%s has no declared income, the ratio relies on rent only", who))))
	}
	switch {
	case !r.Compliant:
		alerts = append(alerts, withField(domain.NewAlert(domain.SeverityError, source, "debt_ratio_exceeded"+suffix,
			fmt.Sprintf("%s debt ratio of %.2f%% exceeds the %.0f%% ceiling", who, r.Ratio, rules.MaxRatio))))
	case r.Ratio >= rules.MaxRatio-rules.ProximityPoints:
		alerts = append(alerts, withField(domain.NewAlert(domain.SeverityWarning, source, "debt_ratio_near_limit"+suffix,
			fmt.Sprintf("%s debt ratio of %.2f%% is close to the %.0f%% ceiling", who, r.Ratio, rules.MaxRatio))))
	}
	return alerts
}

func withField(a domain.Alert) domain.Alert {
	a.Field = "structure"
	return a
}

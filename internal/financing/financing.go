// Package financing computes acquisition costs, the loan and its amortization table.
package financing

import (
	"math"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// Notary computes purchase fees on the price net of furniture.
func Notary(p domain.Property, cfg paramdomain.ResolvedConfiguration) domain.NotaryFees {
	base := math.Max(0, p.Price-p.FurnitureValue)

	var emoluments float64
	brackets := cfg.Notary.Brackets
	for i, b := range brackets {
		upper := math.Inf(1)
		if i+1 < len(brackets) {
			upper = brackets[i+1].From
		}
		if base <= b.From {
			break
		}
		emoluments += (math.Min(base, upper) - b.From) * b.Rate
	}

	transferRate := cfg.Notary.TransferRate
	if p.Condition == domain.ConditionNew {
		transferRate = cfg.Notary.TransferRateNew
	}

	fees := domain.NotaryFees{
		Base:          base,
		Emoluments:    emoluments,
		EmolumentsVAT: emoluments * cfg.Notary.VAT,
		TransferTax:   base * transferRate,
		Disbursements: cfg.Notary.DisbursementsFee,
	}
	fees.Total = fees.Emoluments + fees.EmolumentsVAT + fees.TransferTax + fees.Disbursements
	return fees
}

// AcquisitionCost is price, notary fees, renovation and lender fees.
func AcquisitionCost(p domain.Property, f domain.Financing, cfg paramdomain.ResolvedConfiguration) (domain.NotaryFees, float64) {
	notary := Notary(p, cfg)
	return notary, p.Price + notary.Total + p.RenovationCost + f.LenderFees
}

// MonthlyPayment returns the constant instalment repaying principal over months
// at annualRate percent.
func MonthlyPayment(principal, annualRate float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	r := annualRate / 100 / 12
	if r == 0 {
		return principal / float64(months)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(months)))
}

// Calculate builds the loan for in. The schedule has one row per loan year.
func Calculate(in domain.Input, cfg paramdomain.ResolvedConfiguration) domain.FinancingResult {
	notary, cost := AcquisitionCost(in.Property, in.Financing, cfg)
	principal := math.Max(0, cost-in.Financing.DownPayment)
	months := in.Financing.TermYears * 12
	payment := MonthlyPayment(principal, in.Financing.AnnualRate, months)
	initialInsurance := principal * in.Financing.InsuranceRate / 100 / 12

	schedule, totalInterest, totalInsurance := amortize(principal, payment, in.Financing, months)

	return domain.FinancingResult{
		Notary:           notary,
		AcquisitionCost:  cost,
		Principal:        principal,
		MonthlyPayment:   payment,
		MonthlyInsurance: initialInsurance,
		MonthlyTotal:     payment + initialInsurance,
		TotalInterest:    totalInterest,
		TotalInsurance:   totalInsurance,
		TotalCreditCost:  totalInterest + totalInsurance + in.Financing.LenderFees,
		Schedule:         schedule,
	}
}

func amortize(principal, payment float64, f domain.Financing, months int) ([]domain.ScheduleYear, float64, float64) {
	rate := f.AnnualRate / 100 / 12
	insuranceRate := f.InsuranceRate / 100 / 12

	schedule := make([]domain.ScheduleYear, f.TermYears)
	balance := principal
	var totalInterest, totalInsurance float64

	for m := 1; m <= months; m++ {
		interest := balance * rate
		repaid := payment - interest
		if m == months || repaid > balance {
			repaid = balance
		}

		insurance := principal * insuranceRate
		if f.InsuranceMode == domain.InsuranceDeclining {
			insurance = balance * insuranceRate
		}
		balance -= repaid

		row := &schedule[(m-1)/12]
		row.Year = (m-1)/12 + 1
		row.Interest += interest
		row.Principal += repaid
		row.Insurance += insurance
		row.Payment += interest + repaid
		row.ClosingBalance = balance

		totalInterest += interest
		totalInsurance += insurance
	}
	return schedule, totalInterest, totalInsurance
}

// YearSlice returns the loan figures for projection year y, zero once repaid.
func YearSlice(schedule []domain.ScheduleYear, y int) domain.ScheduleYear {
	if y < 1 || y > len(schedule) {
		return domain.ScheduleYear{Year: y}
	}
	return schedule[y-1]
}

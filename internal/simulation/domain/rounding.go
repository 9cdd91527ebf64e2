package domain

import "github.com/smallbiznis/immolens/pkg/money"

// Rounded returns a copy with every amount at its presentation precision: rates to
// two decimals, annual and total amounts to whole euros, monthly amounts to cents.
func (r Report) Rounded() Report {
	r.Financing = r.Financing.Rounded()
	r.Charges = r.Charges.Rounded()
	r.Profitability = r.Profitability.Rounded()
	r.Taxation = r.Taxation.Rounded()
	r.Affordability = r.Affordability.Rounded()
	r.Projection = r.Projection.Rounded()
	r.Synthesis = r.Synthesis.Rounded()
	return r
}

func (f FinancingResult) Rounded() FinancingResult {
	f.Notary = NotaryFees{
		Base:          money.Euros(f.Notary.Base),
		Emoluments:    money.Euros(f.Notary.Emoluments),
		EmolumentsVAT: money.Euros(f.Notary.EmolumentsVAT),
		TransferTax:   money.Euros(f.Notary.TransferTax),
		Disbursements: money.Euros(f.Notary.Disbursements),
		Total:         money.Euros(f.Notary.Total),
	}
	f.AcquisitionCost = money.Euros(f.AcquisitionCost)
	f.Principal = money.Euros(f.Principal)
	f.MonthlyPayment = money.Cents(f.MonthlyPayment)
	f.MonthlyInsurance = money.Cents(f.MonthlyInsurance)
	f.MonthlyTotal = money.Cents(f.MonthlyTotal)
	f.TotalInterest = money.Euros(f.TotalInterest)
	f.TotalInsurance = money.Euros(f.TotalInsurance)
	f.TotalCreditCost = money.Euros(f.TotalCreditCost)

	schedule := make([]ScheduleYear, len(f.Schedule))
	for i, y := range f.Schedule {
		schedule[i] = ScheduleYear{
			Year:           y.Year,
			Payment:        money.Euros(y.Payment),
			Interest:       money.Euros(y.Interest),
			Principal:      money.Euros(y.Principal),
			Insurance:      money.Euros(y.Insurance),
			ClosingBalance: money.Euros(y.ClosingBalance),
		}
	}
	f.Schedule = schedule
	return f
}

func (c ChargesResult) Rounded() ChargesResult {
	c.NominalRent = money.Euros(c.NominalRent)
	c.EffectiveRent = money.Euros(c.EffectiveRent)
	c.CondoNet = money.Euros(c.CondoNet)
	c.PropertyTax = money.Euros(c.PropertyTax)
	c.Insurance = money.Euros(c.Insurance)
	c.OtherCharges = money.Euros(c.OtherCharges)
	c.BusinessTax = money.Euros(c.BusinessTax)
	c.Fixed = money.Euros(c.Fixed)
	c.Management = money.Euros(c.Management)
	c.Maintenance = money.Euros(c.Maintenance)
	c.Vacancy = money.Euros(c.Vacancy)
	c.Proportional = money.Euros(c.Proportional)
	c.Total = money.Euros(c.Total)
	c.Deductible = money.Euros(c.Deductible)
	return c
}

func (p ProfitabilityResult) Rounded() ProfitabilityResult {
	p.GrossYield = money.Rate(p.GrossYield)
	p.NetYield = money.Rate(p.NetYield)
	p.NetNetYield = money.Rate(p.NetNetYield)
	p.AnnualDebtService = money.Euros(p.AnnualDebtService)
	p.AnnualCashflow = money.Euros(p.AnnualCashflow)
	p.MonthlyCashflow = money.Cents(p.MonthlyCashflow)
	p.AfterTaxCashflow = money.Euros(p.AfterTaxCashflow)
	p.BorrowingCost = money.Rate(p.BorrowingCost)
	p.PriceToRent = money.Rate(p.PriceToRent)
	if p.Leverage != nil {
		v := money.Rate(*p.Leverage)
		p.Leverage = &v
	}
	return p
}

func (l DepreciationLine) Rounded() DepreciationLine {
	return DepreciationLine{
		Year:           l.Year,
		Building:       money.Euros(l.Building),
		Furniture:      money.Euros(l.Furniture),
		Renovation:     money.Euros(l.Renovation),
		Total:          money.Euros(l.Total),
		Cap:            money.Euros(l.Cap),
		Deducted:       money.Euros(l.Deducted),
		CarriedForward: money.Euros(l.CarriedForward),
	}
}

func (o TaxOutcome) Rounded() TaxOutcome {
	o.TaxableBase = money.Euros(o.TaxableBase)
	o.IncomeTax = money.Euros(o.IncomeTax)
	o.SocialLevies = money.Euros(o.SocialLevies)
	o.CorporateTax = money.Euros(o.CorporateTax)
	o.DividendTax = money.Euros(o.DividendTax)
	o.TaxDue = money.Euros(o.TaxDue)
	o.DeficitUsed = money.Euros(o.DeficitUsed)
	o.DeficitCreated = money.Euros(o.DeficitCreated)
	o.GlobalIncomeOffset = money.Euros(o.GlobalIncomeOffset)
	if o.Depreciation != nil {
		line := o.Depreciation.Rounded()
		o.Depreciation = &line
	}
	return o
}

func (t TaxationResult) Rounded() TaxationResult {
	t.Selected = t.Selected.Rounded()
	t.Savings = money.Euros(t.Savings)
	entries := make([]RegimeComparison, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = RegimeComparison{
			Outcome:          e.Outcome.Rounded(),
			PreTaxCashflow:   money.Euros(e.PreTaxCashflow),
			AfterTaxCashflow: money.Euros(e.AfterTaxCashflow),
			Optimal:          e.Optimal,
		}
	}
	t.Entries = entries
	return t
}

func (a AffordabilityResult) Rounded() AffordabilityResult {
	a.Ratio = money.Rate(a.Ratio)
	a.Weighting = money.Rate(a.Weighting)
	a.ResidualIncome = money.Cents(a.ResidualIncome)
	borrowers := make([]DebtRatio, len(a.Borrowers))
	for i, b := range a.Borrowers {
		b.MonthlyIncome = money.Cents(b.MonthlyIncome)
		b.WeightedRent = money.Cents(b.WeightedRent)
		b.ExistingMonthlyDebt = money.Cents(b.ExistingMonthlyDebt)
		b.ExistingMonthlyCharges = money.Cents(b.ExistingMonthlyCharges)
		b.NewPayment = money.Cents(b.NewPayment)
		b.Ratio = money.Rate(b.Ratio)
		b.ResidualIncome = money.Cents(b.ResidualIncome)
		borrowers[i] = b
	}
	a.Borrowers = borrowers
	return a
}

func (p ProjectionResult) Rounded() ProjectionResult {
	years := make([]ProjectionYear, len(p.Years))
	for i, y := range p.Years {
		y.Rent = money.Euros(y.Rent)
		y.Charges = money.Euros(y.Charges)
		y.LoanPrincipal = money.Euros(y.LoanPrincipal)
		y.LoanInterest = money.Euros(y.LoanInterest)
		y.LoanInsurance = money.Euros(y.LoanInsurance)
		y.TaxDue = money.Euros(y.TaxDue)
		y.NetCashflow = money.Euros(y.NetCashflow)
		y.CumulativeCashflow = money.Euros(y.CumulativeCashflow)
		y.CapitalRepaid = money.Euros(y.CapitalRepaid)
		y.PropertyValue = money.Euros(y.PropertyValue)
		y.OutstandingBalance = money.Euros(y.OutstandingBalance)
		y.NetWorth = money.Euros(y.NetWorth)
		if y.Depreciation != nil {
			line := y.Depreciation.Rounded()
			y.Depreciation = &line
		}
		years[i] = y
	}
	p.Years = years

	cg := p.CapitalGain
	cg.SalePrice = money.Euros(cg.SalePrice)
	cg.PurchaseBase = money.Euros(cg.PurchaseBase)
	cg.GrossGain = money.Euros(cg.GrossGain)
	cg.ReintegratedDepreciation = money.Euros(cg.ReintegratedDepreciation)
	cg.TaxableGain = money.Euros(cg.TaxableGain)
	cg.IncomeTaxRebate = money.Rate(cg.IncomeTaxRebate)
	cg.SocialLevyRebate = money.Rate(cg.SocialLevyRebate)
	cg.IncomeTax = money.Euros(cg.IncomeTax)
	cg.SocialLevies = money.Euros(cg.SocialLevies)
	cg.Surtax = money.Euros(cg.Surtax)
	cg.CorporateTax = money.Euros(cg.CorporateTax)
	cg.TotalTax = money.Euros(cg.TotalTax)
	cg.ResaleCosts = money.Euros(cg.ResaleCosts)
	cg.NetProceeds = money.Euros(cg.NetProceeds)
	p.CapitalGain = cg

	p.CumulativeCashflow = money.Euros(p.CumulativeCashflow)
	p.FinalNetWorth = money.Euros(p.FinalNetWorth)
	p.TotalEnrichment = money.Euros(p.TotalEnrichment)
	p.IRR = money.Rate(p.IRR)
	return p
}

func (s SynthesisResult) Rounded() SynthesisResult {
	s.Adjustments = roundAdjustments(s.Adjustments)
	scores := make(map[InvestorProfile]ProfileScore, len(s.ProfileScores))
	for k, v := range s.ProfileScores {
		v.Adjustments = roundAdjustments(v.Adjustments)
		scores[k] = v
	}
	s.ProfileScores = scores
	return s
}

func roundAdjustments(in []Adjustment) []Adjustment {
	out := make([]Adjustment, len(in))
	for i, a := range in {
		a.Points = money.Rate(a.Points)
		out[i] = a
	}
	return out
}

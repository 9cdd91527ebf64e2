package domain

import "time"

// Result is either a Success or a Failure.
type Result interface {
	isResult()
}

type Success struct {
	ID        string    `json:"id"`
	Data      Report    `json:"data"`
	Alerts    []Alert   `json:"alerts"`
	Timestamp time.Time `json:"timestamp"`
}

type Failure struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (Success) isResult() {}
func (Failure) isResult() {}

// Report aggregates every calculator output of one simulation.
type Report struct {
	FiscalYear          int                 `json:"fiscal_year"`
	ConfigurationSource string              `json:"configuration_source"`
	Input               Input               `json:"input"`
	Financing           FinancingResult     `json:"financing"`
	Charges             ChargesResult       `json:"charges"`
	Profitability       ProfitabilityResult `json:"profitability"`
	Taxation            TaxationResult      `json:"taxation"`
	Affordability       AffordabilityResult `json:"affordability"`
	Projection          ProjectionResult    `json:"projection"`
	Synthesis           SynthesisResult     `json:"synthesis"`
}

type NotaryFees struct {
	Base          float64 `json:"base"`
	Emoluments    float64 `json:"emoluments"`
	EmolumentsVAT float64 `json:"emoluments_vat"`
	TransferTax   float64 `json:"transfer_tax"`
	Disbursements float64 `json:"disbursements"`
	Total         float64 `json:"total"`
}

// ScheduleYear aggregates twelve monthly instalments of the amortization table.
type ScheduleYear struct {
	Year           int     `json:"year"`
	Payment        float64 `json:"payment"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	Insurance      float64 `json:"insurance"`
	ClosingBalance float64 `json:"closing_balance"`
}

type FinancingResult struct {
	Notary           NotaryFees     `json:"notary"`
	AcquisitionCost  float64        `json:"acquisition_cost"`
	Principal        float64        `json:"principal"`
	MonthlyPayment   float64        `json:"monthly_payment"`
	MonthlyInsurance float64        `json:"monthly_insurance"`
	MonthlyTotal     float64        `json:"monthly_total"`
	TotalInterest    float64        `json:"total_interest"`
	TotalInsurance   float64        `json:"total_insurance"`
	TotalCreditCost  float64        `json:"total_credit_cost"`
	Schedule         []ScheduleYear `json:"schedule"`
}

type ChargesResult struct {
	NominalRent       float64 `json:"nominal_rent"`
	EffectiveRent     float64 `json:"effective_rent"`
	CondoNet          float64 `json:"condo_net"`
	PropertyTax       float64 `json:"property_tax"`
	Insurance         float64 `json:"insurance"`
	OtherCharges      float64 `json:"other_charges"`
	BusinessTax       float64 `json:"business_tax"`
	BusinessTaxExempt bool    `json:"business_tax_exempt"`
	Fixed             float64 `json:"fixed"`
	Management        float64 `json:"management"`
	Maintenance       float64 `json:"maintenance"`
	Vacancy           float64 `json:"vacancy"`
	Proportional      float64 `json:"proportional"`
	Total             float64 `json:"total"`
	Deductible        float64 `json:"deductible"`
}

type ProfitabilityResult struct {
	GrossYield        float64  `json:"gross_yield"`
	NetYield          float64  `json:"net_yield"`
	NetNetYield       float64  `json:"net_net_yield"`
	AnnualDebtService float64  `json:"annual_debt_service"`
	AnnualCashflow    float64  `json:"annual_cashflow"`
	MonthlyCashflow   float64  `json:"monthly_cashflow"`
	AfterTaxCashflow  float64  `json:"after_tax_cashflow"`
	BorrowingCost     float64  `json:"borrowing_cost"`
	Leverage          *float64 `json:"leverage"`
	PriceToRent       float64  `json:"price_to_rent"`
}

type DeficitBucket struct {
	YearIncurred int     `json:"year_incurred"`
	Remaining    float64 `json:"remaining"`
}

type DepreciationLine struct {
	Year           int     `json:"year"`
	Building       float64 `json:"building"`
	Furniture      float64 `json:"furniture"`
	Renovation     float64 `json:"renovation"`
	Total          float64 `json:"total"`
	Cap            float64 `json:"cap"`
	Deducted       float64 `json:"deducted"`
	CarriedForward float64 `json:"carried_forward"`
}

type TaxOutcome struct {
	Code               RegimeCode        `json:"code"`
	Label              string            `json:"label"`
	Eligible           bool              `json:"eligible"`
	TaxableBase        float64           `json:"taxable_base"`
	IncomeTax          float64           `json:"income_tax"`
	SocialLevies       float64           `json:"social_levies"`
	CorporateTax       float64           `json:"corporate_tax"`
	DividendTax        float64           `json:"dividend_tax"`
	TaxDue             float64           `json:"tax_due"`
	DeficitUsed        float64           `json:"deficit_used"`
	DeficitCreated     float64           `json:"deficit_created"`
	GlobalIncomeOffset float64           `json:"global_income_offset"`
	Depreciation       *DepreciationLine `json:"depreciation,omitempty"`
	Alerts             []Alert           `json:"alerts,omitempty"`
}

type RegimeComparison struct {
	Outcome          TaxOutcome `json:"outcome"`
	PreTaxCashflow   float64    `json:"pre_tax_cashflow"`
	AfterTaxCashflow float64    `json:"after_tax_cashflow"`
	Optimal          bool       `json:"optimal"`
}

type TaxationResult struct {
	Requested RegimeCode         `json:"requested"`
	Selected  TaxOutcome         `json:"selected"`
	Optimal   RegimeCode         `json:"optimal"`
	Savings   float64            `json:"savings"`
	Entries   []RegimeComparison `json:"comparison"`
}

type DebtRatio struct {
	Name                   string  `json:"name,omitempty"`
	OwnershipPct           float64 `json:"ownership_pct"`
	MonthlyIncome          float64 `json:"monthly_income"`
	WeightedRent           float64 `json:"weighted_rent"`
	ExistingMonthlyDebt    float64 `json:"existing_monthly_debt"`
	ExistingMonthlyCharges float64 `json:"existing_monthly_charges"`
	NewPayment             float64 `json:"new_payment"`
	Ratio                  float64 `json:"ratio"`
	ResidualIncome         float64 `json:"residual_income"`
	Compliant              bool    `json:"compliant"`
}

type AffordabilityResult struct {
	Ratio          float64     `json:"ratio"`
	MaxRatio       float64     `json:"max_ratio"`
	Weighting      float64     `json:"weighting"`
	TermYears      int         `json:"term_years"`
	MaxTermYears   int         `json:"max_term_years"`
	RatioCompliant bool        `json:"ratio_compliant"`
	TermCompliant  bool        `json:"term_compliant"`
	Compliant      bool        `json:"compliant"`
	NearLimit      bool        `json:"near_limit"`
	ResidualIncome float64     `json:"residual_income"`
	Borrowers      []DebtRatio `json:"borrowers"`
}

type ProjectionYear struct {
	Year               int               `json:"year"`
	CalendarYear       int               `json:"calendar_year"`
	Rent               float64           `json:"rent"`
	Charges            float64           `json:"charges"`
	LoanPrincipal      float64           `json:"loan_principal"`
	LoanInterest       float64           `json:"loan_interest"`
	LoanInsurance      float64           `json:"loan_insurance"`
	TaxDue             float64           `json:"tax_due"`
	NetCashflow        float64           `json:"net_cashflow"`
	CumulativeCashflow float64           `json:"cumulative_cashflow"`
	CapitalRepaid      float64           `json:"capital_repaid"`
	PropertyValue      float64           `json:"property_value"`
	OutstandingBalance float64           `json:"outstanding_balance"`
	NetWorth           float64           `json:"net_worth"`
	RentFrozen         bool              `json:"rent_frozen"`
	Depreciation       *DepreciationLine `json:"depreciation,omitempty"`
}

type CapitalGainResult struct {
	HoldingYears             int     `json:"holding_years"`
	SalePrice                float64 `json:"sale_price"`
	PurchaseBase             float64 `json:"purchase_base"`
	GrossGain                float64 `json:"gross_gain"`
	ReintegratedDepreciation float64 `json:"reintegrated_depreciation"`
	TaxableGain              float64 `json:"taxable_gain"`
	IncomeTaxRebate          float64 `json:"income_tax_rebate"`
	SocialLevyRebate         float64 `json:"social_levy_rebate"`
	IncomeTax                float64 `json:"income_tax"`
	SocialLevies             float64 `json:"social_levies"`
	Surtax                   float64 `json:"surtax"`
	CorporateTax             float64 `json:"corporate_tax"`
	TotalTax                 float64 `json:"total_tax"`
	ResaleCosts              float64 `json:"resale_costs"`
	NetProceeds              float64 `json:"net_proceeds"`
}

type ProjectionResult struct {
	HorizonYears       int               `json:"horizon_years"`
	Years              []ProjectionYear  `json:"years"`
	CapitalGain        CapitalGainResult `json:"capital_gain"`
	CumulativeCashflow float64           `json:"cumulative_cashflow"`
	FinalNetWorth      float64           `json:"final_net_worth"`
	TotalEnrichment    float64           `json:"total_enrichment"`
	IRR                float64           `json:"irr"`
}

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierWeak      Tier = "weak"
)

type Adjustment struct {
	Criterion string  `json:"criterion"`
	Points    float64 `json:"points"`
	Reason    string  `json:"reason"`
}

type AttentionPoint struct {
	Key      string   `json:"key"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Source   string   `json:"source"`
}

type RecommendationCategory string

const (
	CategoryFinancing RecommendationCategory = "financing"
	CategoryTax       RecommendationCategory = "tax"
	CategoryEnergy    RecommendationCategory = "energy"
	CategoryRent      RecommendationCategory = "rent"
	CategoryStructure RecommendationCategory = "structure"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recommendation struct {
	Category RecommendationCategory `json:"category"`
	Priority Priority               `json:"priority"`
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
}

type ProfileScore struct {
	Profile     InvestorProfile `json:"profile"`
	Score       int             `json:"score"`
	Tier        Tier            `json:"tier"`
	Adjustments []Adjustment    `json:"adjustments"`
}

type SynthesisResult struct {
	Score           int                              `json:"score"`
	Tier            Tier                             `json:"tier"`
	Profile         InvestorProfile                  `json:"profile"`
	Adjustments     []Adjustment                     `json:"adjustments"`
	AttentionPoints []AttentionPoint                 `json:"attention_points"`
	Recommendations []Recommendation                 `json:"recommendations"`
	ProfileScores   map[InvestorProfile]ProfileScore `json:"profile_scores"`
}

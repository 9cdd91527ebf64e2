// Package domain holds the input and result types shared by every calculator.
package domain

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyBuilding  PropertyType = "building"
)

type Condition string

const (
	ConditionExisting Condition = "existing"
	ConditionNew      Condition = "new"
)

type InsuranceMode string

const (
	InsuranceFlat      InsuranceMode = "flat"
	InsuranceDeclining InsuranceMode = "declining"
)

type RentalType string

const (
	RentalBare                RentalType = "bare"
	RentalFurnished           RentalType = "furnished"
	RentalTourismClassified   RentalType = "tourism_classified"
	RentalTourismUnclassified RentalType = "tourism_unclassified"
)

// Furnished reports whether rent is taxed as furnished (business) income.
func (r RentalType) Furnished() bool {
	return r == RentalFurnished || r == RentalTourismClassified || r == RentalTourismUnclassified
}

type LegalForm string

const (
	LegalFormIndividual LegalForm = "individual"
	LegalFormCorporate  LegalForm = "corporate"
)

type RegimeCode string

const (
	RegimeMicroFoncier RegimeCode = "micro_foncier"
	RegimeReelFoncier  RegimeCode = "reel_foncier"
	RegimeMicroBIC     RegimeCode = "micro_bic"
	RegimeLMNPReel     RegimeCode = "lmnp_reel"
	RegimeCorporate    RegimeCode = "is"
	RegimeAuto         RegimeCode = "auto"
)

type InvestorProfile string

const (
	ProfileIncome InvestorProfile = "income"
	ProfileWealth InvestorProfile = "wealth"
)

type DepreciationMode string

const (
	DepreciationComponents   DepreciationMode = "components"
	DepreciationStraightLine DepreciationMode = "straight_line"
)

// Input is the validated and defaulted record every calculator consumes.
// Percent fields keep the caller's unit: 3.5 means 3.5 %.
type Input struct {
	Property  Property  `json:"property"`
	Financing Financing `json:"financing"`
	Operating Operating `json:"operating"`
	Structure Structure `json:"structure"`
	Options   Options   `json:"options"`
}

type Property struct {
	Price          float64      `json:"price"`
	RenovationCost float64      `json:"renovation_cost"`
	FurnitureValue float64      `json:"furniture_value"`
	Surface        float64      `json:"surface"`
	Type           PropertyType `json:"property_type"`
	Condition      Condition    `json:"condition"`
	EnergyRating   string       `json:"energy_rating,omitempty"`
	LandShare      float64      `json:"land_share"`
}

type Financing struct {
	DownPayment   float64       `json:"down_payment"`
	AnnualRate    float64       `json:"annual_rate"`
	TermYears     int           `json:"term_years"`
	InsuranceRate float64       `json:"insurance_rate"`
	InsuranceMode InsuranceMode `json:"insurance_mode"`
	LenderFees    float64       `json:"lender_fees"`
}

type Operating struct {
	MonthlyRent        float64    `json:"monthly_rent"`
	CondoFees          float64    `json:"condo_fees"`
	RecoverableCharges float64    `json:"recoverable_charges"`
	PropertyTax        float64    `json:"property_tax"`
	Insurance          float64    `json:"insurance"`
	BusinessTax        float64    `json:"business_tax"`
	OtherCharges       float64    `json:"other_charges"`
	ManagementRate     float64    `json:"management_rate"`
	VacancyRate        float64    `json:"vacancy_rate"`
	MaintenanceRate    float64    `json:"maintenance_rate"`
	RentalType         RentalType `json:"rental_type"`
	// OccupancyRate supersedes VacancyRate when set.
	OccupancyRate *float64 `json:"occupancy_rate,omitempty"`
}

type Shareholder struct {
	Name                   string  `json:"name"`
	OwnershipPct           float64 `json:"ownership_pct"`
	MonthlyIncome          float64 `json:"monthly_income"`
	ExistingMonthlyDebt    float64 `json:"existing_monthly_debt"`
	ExistingMonthlyCharges float64 `json:"existing_monthly_charges"`
}

type Structure struct {
	LegalForm              LegalForm     `json:"legal_form"`
	TaxRegime              RegimeCode    `json:"tax_regime"`
	MarginalRate           float64       `json:"marginal_rate"`
	MonthlyIncome          float64       `json:"monthly_income"`
	ExistingMonthlyDebt    float64       `json:"existing_monthly_debt"`
	ExistingMonthlyCharges float64       `json:"existing_monthly_charges"`
	Shareholders           []Shareholder `json:"shareholders,omitempty"`
	DistributeDividends    bool          `json:"distribute_dividends"`
}

// Corporate reports whether the property is held by a company paying corporate tax.
func (s Structure) Corporate() bool {
	return s.LegalForm == LegalFormCorporate
}

type Options struct {
	HorizonYears          int              `json:"horizon_years"`
	Profile               InvestorProfile  `json:"investor_profile"`
	DepreciationMode      DepreciationMode `json:"depreciation_mode"`
	FiscalYear            int              `json:"fiscal_year"`
	RentGrowth            float64          `json:"rent_growth"`
	ChargeInflation       float64          `json:"charge_inflation"`
	Appreciation          float64          `json:"appreciation"`
	RentalIncomeWeighting float64          `json:"rental_income_weighting"`
}

// RawInput is the caller's record before validation. Every field is optional at
// decode time so that missing values can be reported by name.
type RawInput struct {
	Property  *RawProperty  `json:"property" validate:"required"`
	Financing *RawFinancing `json:"financing" validate:"required"`
	Operating *RawOperating `json:"operating" validate:"required"`
	Structure *RawStructure `json:"structure"`
	Options   *RawOptions   `json:"options"`
}

type RawProperty struct {
	Price          *float64 `json:"price" validate:"required,gt=0"`
	RenovationCost *float64 `json:"renovation_cost" validate:"omitempty,gte=0"`
	FurnitureValue *float64 `json:"furniture_value" validate:"omitempty,gte=0"`
	Surface        *float64 `json:"surface" validate:"omitempty,gt=0"`
	PropertyType   *string  `json:"property_type" validate:"omitempty,oneof=apartment house building"`
	Condition      *string  `json:"condition" validate:"omitempty,oneof=existing new"`
	EnergyRating   *string  `json:"energy_rating" validate:"omitempty,energy_rating"`
	LandShare      *float64 `json:"land_share" validate:"omitempty,gte=0,lte=0.9"`
}

type RawFinancing struct {
	DownPayment   *float64 `json:"down_payment" validate:"omitempty,gte=0"`
	AnnualRate    *float64 `json:"annual_rate" validate:"required,gte=0,lte=20"`
	TermYears     *int     `json:"term_years" validate:"required,gte=1,lte=40"`
	InsuranceRate *float64 `json:"insurance_rate" validate:"omitempty,gte=0,lte=5"`
	InsuranceMode *string  `json:"insurance_mode" validate:"omitempty,oneof=flat declining"`
	LenderFees    *float64 `json:"lender_fees" validate:"omitempty,gte=0"`
}

type RawOperating struct {
	MonthlyRent        *float64 `json:"monthly_rent" validate:"required,gt=0"`
	CondoFees          *float64 `json:"condo_fees" validate:"omitempty,gte=0"`
	RecoverableCharges *float64 `json:"recoverable_charges" validate:"omitempty,gte=0"`
	PropertyTax        *float64 `json:"property_tax" validate:"omitempty,gte=0"`
	Insurance          *float64 `json:"insurance" validate:"omitempty,gte=0"`
	BusinessTax        *float64 `json:"business_tax" validate:"omitempty,gte=0"`
	OtherCharges       *float64 `json:"other_charges" validate:"omitempty,gte=0"`
	ManagementRate     *float64 `json:"management_rate" validate:"omitempty,gte=0,lte=100"`
	VacancyRate        *float64 `json:"vacancy_rate" validate:"omitempty,gte=0,lte=100"`
	MaintenanceRate    *float64 `json:"maintenance_rate" validate:"omitempty,gte=0,lte=100"`
	RentalType         *string  `json:"rental_type" validate:"omitempty,oneof=bare furnished tourism_classified tourism_unclassified"`
	OccupancyRate      *float64 `json:"occupancy_rate" validate:"omitempty,gte=1,lte=100"`
}

type RawShareholder struct {
	Name                   *string  `json:"name" validate:"required,min=1"`
	OwnershipPct           *float64 `json:"ownership_pct" validate:"required,gt=0,lte=100"`
	MonthlyIncome          *float64 `json:"monthly_income" validate:"omitempty,gte=0"`
	ExistingMonthlyDebt    *float64 `json:"existing_monthly_debt" validate:"omitempty,gte=0"`
	ExistingMonthlyCharges *float64 `json:"existing_monthly_charges" validate:"omitempty,gte=0"`
}

type RawStructure struct {
	LegalForm              *string          `json:"legal_form" validate:"omitempty,oneof=individual corporate"`
	TaxRegime              *string          `json:"tax_regime" validate:"omitempty,oneof=micro_foncier reel_foncier micro_bic lmnp_reel auto"`
	MarginalRate           *float64         `json:"marginal_rate" validate:"omitempty,marginal_bracket"`
	MonthlyIncome          *float64         `json:"monthly_income" validate:"omitempty,gte=0"`
	ExistingMonthlyDebt    *float64         `json:"existing_monthly_debt" validate:"omitempty,gte=0"`
	ExistingMonthlyCharges *float64         `json:"existing_monthly_charges" validate:"omitempty,gte=0"`
	Shareholders           []RawShareholder `json:"shareholders" validate:"omitempty,dive"`
	DistributeDividends    *bool            `json:"distribute_dividends"`
}

type RawOptions struct {
	HorizonYears          *int     `json:"horizon_years" validate:"omitempty,gte=1,lte=40"`
	InvestorProfile       *string  `json:"investor_profile" validate:"omitempty,oneof=income wealth"`
	DepreciationMode      *string  `json:"depreciation_mode" validate:"omitempty,oneof=components straight_line"`
	FiscalYear            *int     `json:"fiscal_year" validate:"omitempty,gte=2000,lte=2100"`
	RentGrowth            *float64 `json:"rent_growth" validate:"omitempty,gte=-10,lte=20"`
	ChargeInflation       *float64 `json:"charge_inflation" validate:"omitempty,gte=-10,lte=20"`
	Appreciation          *float64 `json:"appreciation" validate:"omitempty,gte=-20,lte=20"`
	RentalIncomeWeighting *float64 `json:"rental_income_weighting" validate:"omitempty,gte=0,lte=100"`
}

// RequestedFiscalYear returns the fiscal year named by the caller, or 0.
func (r RawInput) RequestedFiscalYear() int {
	if r.Options == nil || r.Options.FiscalYear == nil {
		return 0
	}
	return *r.Options.FiscalYear
}

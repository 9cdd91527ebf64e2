// Package domain defines the resolved fiscal configuration consumed by the calculation engine.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Source records where a resolved configuration came from.
type Source string

const (
	SourceDefaults Source = "defaults"
	SourceFile     Source = "file"
	SourceStore    Source = "store"
)

// ResolvedConfiguration is an immutable snapshot of every numeric constant used by the
// engine for one fiscal year. Rates are fractions (0.172 means 17.2 %).
type ResolvedConfiguration struct {
	FiscalYear int       `json:"fiscal_year" mapstructure:"fiscal_year"`
	Source     Source    `json:"source" mapstructure:"-"`
	ResolvedAt time.Time `json:"resolved_at" mapstructure:"-"`

	Tax           TaxRates             `json:"tax" mapstructure:"tax"`
	MicroFoncier  MicroRegime          `json:"micro_foncier" mapstructure:"micro_foncier"`
	MicroBIC      MicroBICRates        `json:"micro_bic" mapstructure:"micro_bic"`
	Deficit       DeficitRules         `json:"deficit" mapstructure:"deficit"`
	Corporate     CorporateRates       `json:"corporate" mapstructure:"corporate"`
	Depreciation  DepreciationRules    `json:"depreciation" mapstructure:"depreciation"`
	Affordability AffordabilityRules   `json:"affordability" mapstructure:"affordability"`
	Energy        EnergyRules          `json:"energy" mapstructure:"energy"`
	Charges       ChargeDefaults       `json:"charges" mapstructure:"charges"`
	Resale        ResaleCosts          `json:"resale" mapstructure:"resale"`
	CapitalGains  CapitalGainsRules    `json:"capital_gains" mapstructure:"capital_gains"`
	Inflation     InflationAssumptions `json:"inflation" mapstructure:"inflation"`
	Notary        NotarySchedule       `json:"notary" mapstructure:"notary"`
	Projection    ProjectionDefaults   `json:"projection" mapstructure:"projection"`
	Scoring       ScoringRules         `json:"scoring" mapstructure:"scoring"`
}

type TaxRates struct {
	SocialLevyProperty  float64 `json:"social_levy_property" mapstructure:"social_levy_property"`
	SocialLevyFurnished float64 `json:"social_levy_furnished" mapstructure:"social_levy_furnished"`
}

// MicroRegime is a flat-abatement regime limited by an annual rent ceiling.
type MicroRegime struct {
	Abatement float64 `json:"abatement" mapstructure:"abatement"`
	Ceiling   float64 `json:"ceiling" mapstructure:"ceiling"`
}

type MicroBICRates struct {
	LongTerm            MicroRegime `json:"long_term" mapstructure:"long_term"`
	TourismClassified   MicroRegime `json:"tourism_classified" mapstructure:"tourism_classified"`
	TourismUnclassified MicroRegime `json:"tourism_unclassified" mapstructure:"tourism_unclassified"`
}

type DeficitRules struct {
	GlobalIncomeCap float64 `json:"global_income_cap" mapstructure:"global_income_cap"`
	LifetimeYears   int     `json:"lifetime_years" mapstructure:"lifetime_years"`
}

type CorporateRates struct {
	ReducedRate      float64 `json:"reduced_rate" mapstructure:"reduced_rate"`
	ReducedThreshold float64 `json:"reduced_threshold" mapstructure:"reduced_threshold"`
	StandardRate     float64 `json:"standard_rate" mapstructure:"standard_rate"`
	DividendFlatTax  float64 `json:"dividend_flat_tax" mapstructure:"dividend_flat_tax"`
}

// Component is one weighted part of a building depreciated over its own duration.
type Component struct {
	Name   string  `json:"name" mapstructure:"name"`
	Weight float64 `json:"weight" mapstructure:"weight"`
	Years  int     `json:"years" mapstructure:"years"`
}

type DepreciationRules struct {
	StraightLineYears int         `json:"straight_line_years" mapstructure:"straight_line_years"`
	LandShare         float64     `json:"land_share" mapstructure:"land_share"`
	Components        []Component `json:"components" mapstructure:"components"`
	FurnitureYears    int         `json:"furniture_years" mapstructure:"furniture_years"`
	RenovationYears   int         `json:"renovation_years" mapstructure:"renovation_years"`
}

type AffordabilityRules struct {
	MaxRatio           float64 `json:"max_ratio" mapstructure:"max_ratio"`
	MaxTermYears       int     `json:"max_term_years" mapstructure:"max_term_years"`
	MaxTermYearsNew    int     `json:"max_term_years_new" mapstructure:"max_term_years_new"`
	RentalWeighting    float64 `json:"rental_weighting" mapstructure:"rental_weighting"`
	MaxRentalWeighting float64 `json:"max_rental_weighting" mapstructure:"max_rental_weighting"`
	ProximityPoints    float64 `json:"proximity_points" mapstructure:"proximity_points"`
}

type EnergyRules struct {
	// Markdown maps an energy rating (A..G) to the resale value haircut.
	Markdown        map[string]float64 `json:"markdown" mapstructure:"markdown"`
	FreezeEFromYear int                `json:"freeze_e_from_year" mapstructure:"freeze_e_from_year"`
}

type ChargeDefaults struct {
	BusinessTaxExemptionThreshold float64 `json:"business_tax_exemption_threshold" mapstructure:"business_tax_exemption_threshold"`
}

type ResaleCosts struct {
	AgencyFeeRate  float64 `json:"agency_fee_rate" mapstructure:"agency_fee_rate"`
	DiagnosticsFee float64 `json:"diagnostics_fee" mapstructure:"diagnostics_fee"`
}

// Bracket applies Rate to the slice of a base above From (or the whole base for surtax).
type Bracket struct {
	From float64 `json:"from" mapstructure:"from"`
	Rate float64 `json:"rate" mapstructure:"rate"`
}

type CapitalGainsRules struct {
	AcquisitionForfait float64   `json:"acquisition_forfait" mapstructure:"acquisition_forfait"`
	IncomeTaxRate      float64   `json:"income_tax_rate" mapstructure:"income_tax_rate"`
	SocialLevyRate     float64   `json:"social_levy_rate" mapstructure:"social_levy_rate"`
	SurtaxFloor        float64   `json:"surtax_floor" mapstructure:"surtax_floor"`
	SurtaxBrackets     []Bracket `json:"surtax_brackets" mapstructure:"surtax_brackets"`
}

type InflationAssumptions struct {
	RentGrowth      float64 `json:"rent_growth" mapstructure:"rent_growth"`
	ChargeInflation float64 `json:"charge_inflation" mapstructure:"charge_inflation"`
	Appreciation    float64 `json:"appreciation" mapstructure:"appreciation"`
}

type NotarySchedule struct {
	// Brackets are marginal emolument rates starting at From.
	Brackets         []Bracket `json:"brackets" mapstructure:"brackets"`
	VAT              float64   `json:"vat" mapstructure:"vat"`
	TransferRate     float64   `json:"transfer_rate" mapstructure:"transfer_rate"`
	TransferRateNew  float64   `json:"transfer_rate_new" mapstructure:"transfer_rate_new"`
	DisbursementsFee float64   `json:"disbursements_fee" mapstructure:"disbursements_fee"`
}

type ProjectionDefaults struct {
	HorizonYears int `json:"horizon_years" mapstructure:"horizon_years"`
}

// Range bounds one scoring adjustment.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

type ProfileWeights struct {
	Cashflow       Range `json:"cashflow" mapstructure:"cashflow"`
	NetYield       Range `json:"net_yield" mapstructure:"net_yield"`
	Affordability  Range `json:"affordability" mapstructure:"affordability"`
	Energy         Range `json:"energy" mapstructure:"energy"`
	PriceToRent    Range `json:"price_to_rent" mapstructure:"price_to_rent"`
	ResidualIncome Range `json:"residual_income" mapstructure:"residual_income"`
}

type ScoringRules struct {
	Base   float64        `json:"base" mapstructure:"base"`
	Income ProfileWeights `json:"income" mapstructure:"income"`
	Wealth ProfileWeights `json:"wealth" mapstructure:"wealth"`
}

// FiscalParameter is one persisted override of a default constant.
type FiscalParameter struct {
	ID          int64             `gorm:"primaryKey"`
	FiscalYear  int               `gorm:"column:fiscal_year;not null;index:idx_fiscal_parameters_year_key,unique"`
	Key         string            `gorm:"column:param_key;type:varchar(128);not null;index:idx_fiscal_parameters_year_key,unique"`
	Value       float64           `gorm:"column:value;type:numeric;not null"`
	Description *string           `gorm:"type:text"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (FiscalParameter) TableName() string { return "fiscal_parameters" }

package domain

// DefaultFiscalYear is the year the hard-coded constants were calibrated for.
const DefaultFiscalYear = 2025

// DefaultConfiguration returns the deterministic fallback used whenever the backing
// store or the defaults file is unavailable.
func DefaultConfiguration() ResolvedConfiguration {
	return ResolvedConfiguration{
		FiscalYear: DefaultFiscalYear,
		Source:     SourceDefaults,
		Tax: TaxRates{
			SocialLevyProperty:  0.172,
			SocialLevyFurnished: 0.186,
		},
		MicroFoncier: MicroRegime{Abatement: 0.30, Ceiling: 15_000},
		MicroBIC: MicroBICRates{
			LongTerm:            MicroRegime{Abatement: 0.50, Ceiling: 77_700},
			TourismClassified:   MicroRegime{Abatement: 0.71, Ceiling: 188_700},
			TourismUnclassified: MicroRegime{Abatement: 0.30, Ceiling: 15_000},
		},
		Deficit: DeficitRules{GlobalIncomeCap: 10_700, LifetimeYears: 10},
		Corporate: CorporateRates{
			ReducedRate:      0.15,
			ReducedThreshold: 42_500,
			StandardRate:     0.25,
			DividendFlatTax:  0.30,
		},
		Depreciation: DepreciationRules{
			StraightLineYears: 33,
			LandShare:         0.15,
			Components: []Component{
				{Name: "structure", Weight: 0.40, Years: 50},
				{Name: "facade", Weight: 0.20, Years: 25},
				{Name: "fixtures", Weight: 0.20, Years: 15},
				{Name: "fittings", Weight: 0.20, Years: 10},
			},
			FurnitureYears:  7,
			RenovationYears: 15,
		},
		Affordability: AffordabilityRules{
			MaxRatio:           35,
			MaxTermYears:       25,
			MaxTermYearsNew:    27,
			RentalWeighting:    0.70,
			MaxRentalWeighting: 0.90,
			ProximityPoints:    2,
		},
		Energy: EnergyRules{
			Markdown: map[string]float64{
				"A": 0, "B": 0, "C": 0, "D": 0,
				"E": 0.05, "F": 0.10, "G": 0.15,
			},
			FreezeEFromYear: 2034,
		},
		Charges: ChargeDefaults{BusinessTaxExemptionThreshold: 5_000},
		Resale:  ResaleCosts{AgencyFeeRate: 0.05, DiagnosticsFee: 500},
		CapitalGains: CapitalGainsRules{
			AcquisitionForfait: 0.075,
			IncomeTaxRate:      0.19,
			SocialLevyRate:     0.172,
			SurtaxFloor:        50_000,
			SurtaxBrackets: []Bracket{
				{From: 50_000, Rate: 0.02},
				{From: 100_000, Rate: 0.03},
				{From: 150_000, Rate: 0.04},
				{From: 200_000, Rate: 0.05},
				{From: 250_000, Rate: 0.06},
			},
		},
		Inflation: InflationAssumptions{
			RentGrowth:      0.015,
			ChargeInflation: 0.02,
			Appreciation:    0.01,
		},
		Notary: NotarySchedule{
			Brackets: []Bracket{
				{From: 0, Rate: 0.03870},
				{From: 6_500, Rate: 0.01596},
				{From: 17_000, Rate: 0.01064},
				{From: 60_000, Rate: 0.00799},
			},
			VAT:              0.20,
			TransferRate:     0.0580665,
			TransferRateNew:  0.00715,
			DisbursementsFee: 1_200,
		},
		Projection: ProjectionDefaults{HorizonYears: 20},
		Scoring: ScoringRules{
			Base: 50,
			Income: ProfileWeights{
				Cashflow:       Range{Min: -20, Max: 20},
				NetYield:       Range{Min: -10, Max: 10},
				Affordability:  Range{Min: -15, Max: 10},
				Energy:         Range{Min: -10, Max: 5},
				PriceToRent:    Range{Min: -5, Max: 5},
				ResidualIncome: Range{Min: -10, Max: 5},
			},
			Wealth: ProfileWeights{
				Cashflow:       Range{Min: -10, Max: 10},
				NetYield:       Range{Min: -15, Max: 15},
				Affordability:  Range{Min: -10, Max: 5},
				Energy:         Range{Min: -10, Max: 5},
				PriceToRent:    Range{Min: -10, Max: 10},
				ResidualIncome: Range{Min: -5, Max: 5},
			},
		},
	}
}

package domain

import (
	"fmt"
	"sort"
	"strings"
)

type field struct {
	get func() float64
	set func(float64)
}

func floatField(p *float64) field {
	return field{
		get: func() float64 { return *p },
		set: func(v float64) { *p = v },
	}
}

func intField(p *int) field {
	return field{
		get: func() float64 { return float64(*p) },
		set: func(v float64) { *p = int(v) },
	}
}

func mapField(m map[string]float64, key string) field {
	return field{
		get: func() float64 { return m[key] },
		set: func(v float64) { m[key] = v },
	}
}

// fields exposes every numeric constant under its stable dotted key.
// The returned accessors point into c.
func (c *ResolvedConfiguration) fields() map[string]field {
	f := map[string]field{
		"tax.social_levy_property":                 floatField(&c.Tax.SocialLevyProperty),
		"tax.social_levy_furnished":                floatField(&c.Tax.SocialLevyFurnished),
		"micro_foncier.abatement":                  floatField(&c.MicroFoncier.Abatement),
		"micro_foncier.ceiling":                    floatField(&c.MicroFoncier.Ceiling),
		"micro_bic.long_term.abatement":            floatField(&c.MicroBIC.LongTerm.Abatement),
		"micro_bic.long_term.ceiling":              floatField(&c.MicroBIC.LongTerm.Ceiling),
		"micro_bic.tourism_classified.abatement":   floatField(&c.MicroBIC.TourismClassified.Abatement),
		"micro_bic.tourism_classified.ceiling":     floatField(&c.MicroBIC.TourismClassified.Ceiling),
		"micro_bic.tourism_unclassified.abatement": floatField(&c.MicroBIC.TourismUnclassified.Abatement),
		"micro_bic.tourism_unclassified.ceiling":   floatField(&c.MicroBIC.TourismUnclassified.Ceiling),
		"deficit.global_income_cap":                floatField(&c.Deficit.GlobalIncomeCap),
		"deficit.lifetime_years":                   intField(&c.Deficit.LifetimeYears),
		"corporate.reduced_rate":                   floatField(&c.Corporate.ReducedRate),
		"corporate.reduced_threshold":              floatField(&c.Corporate.ReducedThreshold),
		"corporate.standard_rate":                  floatField(&c.Corporate.StandardRate),
		"corporate.dividend_flat_tax":              floatField(&c.Corporate.DividendFlatTax),
		"depreciation.straight_line_years":         intField(&c.Depreciation.StraightLineYears),
		"depreciation.land_share":                  floatField(&c.Depreciation.LandShare),
		"depreciation.furniture_years":             intField(&c.Depreciation.FurnitureYears),
		"depreciation.renovation_years":            intField(&c.Depreciation.RenovationYears),
		"affordability.max_ratio":                  floatField(&c.Affordability.MaxRatio),
		"affordability.max_term_years":             intField(&c.Affordability.MaxTermYears),
		"affordability.max_term_years_new":         intField(&c.Affordability.MaxTermYearsNew),
		"affordability.rental_weighting":           floatField(&c.Affordability.RentalWeighting),
		"affordability.max_rental_weighting":       floatField(&c.Affordability.MaxRentalWeighting),
		"affordability.proximity_points":           floatField(&c.Affordability.ProximityPoints),
		"energy.freeze_e_from_year":                intField(&c.Energy.FreezeEFromYear),
		"charges.business_tax_exemption_threshold": floatField(&c.Charges.BusinessTaxExemptionThreshold),
		"resale.agency_fee_rate":                   floatField(&c.Resale.AgencyFeeRate),
		"resale.diagnostics_fee":                   floatField(&c.Resale.DiagnosticsFee),
		"capital_gains.acquisition_forfait":        floatField(&c.CapitalGains.AcquisitionForfait),
		"capital_gains.income_tax_rate":            floatField(&c.CapitalGains.IncomeTaxRate),
		"capital_gains.social_levy_rate":           floatField(&c.CapitalGains.SocialLevyRate),
		"capital_gains.surtax_floor":               floatField(&c.CapitalGains.SurtaxFloor),
		"inflation.rent_growth":                    floatField(&c.Inflation.RentGrowth),
		"inflation.charge_inflation":               floatField(&c.Inflation.ChargeInflation),
		"inflation.appreciation":                   floatField(&c.Inflation.Appreciation),
		"notary.vat":                               floatField(&c.Notary.VAT),
		"notary.transfer_rate":                     floatField(&c.Notary.TransferRate),
		"notary.transfer_rate_new":                 floatField(&c.Notary.TransferRateNew),
		"notary.disbursements_fee":                 floatField(&c.Notary.DisbursementsFee),
		"projection.horizon_years":                 intField(&c.Projection.HorizonYears),
		"scoring.base":                             floatField(&c.Scoring.Base),
	}

	for i := range c.Depreciation.Components {
		comp := &c.Depreciation.Components[i]
		prefix := "depreciation.components." + comp.Name
		f[prefix+".weight"] = floatField(&comp.Weight)
		f[prefix+".years"] = intField(&comp.Years)
	}
	for i := range c.Notary.Brackets {
		f[fmt.Sprintf("notary.brackets.%d.rate", i)] = floatField(&c.Notary.Brackets[i].Rate)
		f[fmt.Sprintf("notary.brackets.%d.from", i)] = floatField(&c.Notary.Brackets[i].From)
	}
	for i := range c.CapitalGains.SurtaxBrackets {
		f[fmt.Sprintf("capital_gains.surtax_brackets.%d.rate", i)] = floatField(&c.CapitalGains.SurtaxBrackets[i].Rate)
		f[fmt.Sprintf("capital_gains.surtax_brackets.%d.from", i)] = floatField(&c.CapitalGains.SurtaxBrackets[i].From)
	}
	for rating := range c.Energy.Markdown {
		f["energy.markdown."+strings.ToLower(rating)] = mapField(c.Energy.Markdown, rating)
	}
	for name, weights := range map[string]*ProfileWeights{"income": &c.Scoring.Income, "wealth": &c.Scoring.Wealth} {
		for criterion, r := range map[string]*Range{
			"cashflow":        &weights.Cashflow,
			"net_yield":       &weights.NetYield,
			"affordability":   &weights.Affordability,
			"energy":          &weights.Energy,
			"price_to_rent":   &weights.PriceToRent,
			"residual_income": &weights.ResidualIncome,
		} {
			prefix := "scoring." + name + "." + criterion
			f[prefix+".min"] = floatField(&r.Min)
			f[prefix+".max"] = floatField(&r.Max)
		}
	}
	return f
}

// Clone returns a deep copy so callers can never mutate a shared snapshot.
func (c ResolvedConfiguration) Clone() ResolvedConfiguration {
	out := c
	out.Depreciation.Components = append([]Component(nil), c.Depreciation.Components...)
	out.Notary.Brackets = append([]Bracket(nil), c.Notary.Brackets...)
	out.CapitalGains.SurtaxBrackets = append([]Bracket(nil), c.CapitalGains.SurtaxBrackets...)
	out.Energy.Markdown = make(map[string]float64, len(c.Energy.Markdown))
	for k, v := range c.Energy.Markdown {
		out.Energy.Markdown[k] = v
	}
	return out
}

// Keys lists every overridable key in lexical order.
func (c ResolvedConfiguration) Keys() []string {
	clone := c.Clone()
	fields := clone.fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value stored under key.
func (c ResolvedConfiguration) Lookup(key string) (float64, bool) {
	clone := c.Clone()
	f, ok := clone.fields()[normalizeKey(key)]
	if !ok {
		return 0, false
	}
	return f.get(), true
}

// WithOverrides returns a copy of c with overrides applied. Keys that do not name a
// constant are returned so the caller can report them.
func (c ResolvedConfiguration) WithOverrides(overrides map[string]float64) (ResolvedConfiguration, []string) {
	out := c.Clone()
	fields := out.fields()
	var unknown []string
	for key, value := range overrides {
		f, ok := fields[normalizeKey(key)]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		f.set(value)
	}
	sort.Strings(unknown)
	return out, unknown
}

// Validate rejects snapshots that would make the engine produce meaningless numbers.
func (c ResolvedConfiguration) Validate() error {
	rates := map[string]float64{
		"tax.social_levy_property":    c.Tax.SocialLevyProperty,
		"tax.social_levy_furnished":   c.Tax.SocialLevyFurnished,
		"micro_foncier.abatement":     c.MicroFoncier.Abatement,
		"corporate.reduced_rate":      c.Corporate.ReducedRate,
		"corporate.standard_rate":     c.Corporate.StandardRate,
		"depreciation.land_share":     c.Depreciation.LandShare,
		"notary.transfer_rate":        c.Notary.TransferRate,
		"capital_gains.income_tax":    c.CapitalGains.IncomeTaxRate,
		"resale.agency_fee_rate":      c.Resale.AgencyFeeRate,
		"affordability.weighting":     c.Affordability.RentalWeighting,
		"affordability.weighting_max": c.Affordability.MaxRentalWeighting,
	}
	for key, v := range rates {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidConfiguration, key, v)
		}
	}
	if len(c.Depreciation.Components) == 0 {
		return fmt.Errorf("%w: depreciation.components cannot be empty", ErrInvalidConfiguration)
	}
	var weights float64
	for _, comp := range c.Depreciation.Components {
		if comp.Years <= 0 {
			return fmt.Errorf("%w: component %s has no duration", ErrInvalidConfiguration, comp.Name)
		}
		weights += comp.Weight
	}
	if weights < 0.999 || weights > 1.001 {
		return fmt.Errorf("%w: component weights sum to %.4f", ErrInvalidConfiguration, weights)
	}
	if c.Depreciation.StraightLineYears <= 0 || c.Depreciation.FurnitureYears <= 0 || c.Depreciation.RenovationYears <= 0 {
		return fmt.Errorf("%w: depreciation durations must be positive", ErrInvalidConfiguration)
	}
	if len(c.Notary.Brackets) == 0 {
		return fmt.Errorf("%w: notary.brackets cannot be empty", ErrInvalidConfiguration)
	}
	for i := 1; i < len(c.Notary.Brackets); i++ {
		if c.Notary.Brackets[i].From <= c.Notary.Brackets[i-1].From {
			return fmt.Errorf("%w: notary.brackets must be ascending", ErrInvalidConfiguration)
		}
	}
	for i := 1; i < len(c.CapitalGains.SurtaxBrackets); i++ {
		if c.CapitalGains.SurtaxBrackets[i].From <= c.CapitalGains.SurtaxBrackets[i-1].From {
			return fmt.Errorf("%w: capital_gains.surtax_brackets must be ascending", ErrInvalidConfiguration)
		}
	}
	if c.Affordability.MaxRatio <= 0 || c.Affordability.MaxTermYears <= 0 {
		return fmt.Errorf("%w: affordability ceilings must be positive", ErrInvalidConfiguration)
	}
	if c.Projection.HorizonYears <= 0 {
		return fmt.Errorf("%w: projection.horizon_years must be positive", ErrInvalidConfiguration)
	}
	return nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

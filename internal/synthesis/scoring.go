// Package synthesis turns every calculator output into a score, attention points and
// recommendations.
package synthesis

import (
	"fmt"
	"math"
	"strings"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/pkg/money"
)

const source = "synthesis"

type Params struct {
	Input         domain.Input
	Config        paramdomain.ResolvedConfiguration
	Profitability domain.ProfitabilityResult
	Taxation      domain.TaxationResult
	Affordability domain.AffordabilityResult
	Projection    domain.ProjectionResult
	// Alerts raised upstream, already merged.
	Alerts []domain.Alert
}

// Synthesize scores the investment for both investor profiles and reports the one
// requested in the input.
func Synthesize(p Params) (domain.SynthesisResult, []domain.Alert) {
	own := ownAlerts(p)
	merged := MergeAlerts(p.Alerts, own)

	scores := map[domain.InvestorProfile]domain.ProfileScore{
		domain.ProfileIncome: score(domain.ProfileIncome, p.Config.Scoring.Income, p),
		domain.ProfileWealth: score(domain.ProfileWealth, p.Config.Scoring.Wealth, p),
	}
	profile := p.Input.Options.Profile
	if _, ok := scores[profile]; !ok {
		profile = domain.ProfileIncome
	}
	chosen := scores[profile]

	return domain.SynthesisResult{
		Score:           chosen.Score,
		Tier:            chosen.Tier,
		Profile:         profile,
		Adjustments:     chosen.Adjustments,
		AttentionPoints: attentionPoints(merged),
		Recommendations: recommend(p),
		ProfileScores:   scores,
	}, own
}

func score(profile domain.InvestorProfile, w paramdomain.ProfileWeights, p Params) domain.ProfileScore {
	adjustments := []domain.Adjustment{
		cashflowAdjustment(w.Cashflow, p.Profitability.AfterTaxCashflow/12),
		yieldAdjustment(w.NetYield, p.Profitability.NetYield),
		affordabilityAdjustment(w.Affordability, p.Affordability),
		energyAdjustment(w.Energy, p.Input.Property.EnergyRating),
		priceToRentAdjustment(w.PriceToRent, p.Profitability.PriceToRent),
		residualIncomeAdjustment(w.ResidualIncome, p.Affordability.ResidualIncome, p.Input.Structure.Corporate()),
	}

	total := p.Config.Scoring.Base
	for _, a := range adjustments {
		total += a.Points
	}
	value := int(math.Round(money.ClampFloat(total, 0, 100)))
	return domain.ProfileScore{Profile: profile, Score: value, Tier: TierFor(value), Adjustments: adjustments}
}

// TierFor maps a 0-100 score to its evaluation tier.
func TierFor(score int) domain.Tier {
	switch {
	case score >= 75:
		return domain.TierExcellent
	case score >= 60:
		return domain.TierGood
	case score >= 45:
		return domain.TierAverage
	default:
		return domain.TierWeak
	}
}

func cashflowAdjustment(r paramdomain.Range, monthly float64) domain.Adjustment {
	a := domain.Adjustment{Criterion: "cashflow"}
	switch {
	case monthly >= 200:
		a.Points, a.Reason = r.Max, "strongly positive monthly cashflow"
	case monthly >= 0:
		a.Points, a.Reason = r.Max/2, "self-financing investment"
	case monthly >= -200:
		a.Points, a.Reason = r.Min/2, "moderate monthly effort"
	default:
		a.Points, a.Reason = r.Min, "heavy monthly effort"
	}
	return a
}

func yieldAdjustment(r paramdomain.Range, netYield float64) domain.Adjustment {
	a := domain.Adjustment{Criterion: "net_yield"}
	switch {
	case netYield >= 6:
		a.Points, a.Reason = r.Max, "net yield of 6 % or more"
	case netYield >= 4:
		a.Points, a.Reason = r.Max/2, "net yield between 4 and 6 %"
	case netYield >= 3:
		a.Points, a.Reason = r.Min/2, "net yield between 3 and 4 %"
	default:
		a.Points, a.Reason = r.Min, "net yield below 3 %"
	}
	return a
}

func affordabilityAdjustment(r paramdomain.Range, res domain.AffordabilityResult) domain.Adjustment {
	a := domain.Adjustment{Criterion: "affordability"}
	switch {
	case !res.Compliant:
		a.Points, a.Reason = r.Min, "lending criteria not met"
	case res.NearLimit:
		a.Points, a.Reason = 0, "debt ratio close to the ceiling"
	default:
		a.Points, a.Reason = r.Max, "comfortable debt ratio"
	}
	return a
}

func energyAdjustment(r paramdomain.Range, rating string) domain.Adjustment {
	a := domain.Adjustment{Criterion: "energy"}
	switch strings.ToUpper(rating) {
	case "A", "B":
		a.Points, a.Reason = r.Max, "efficient energy rating"
	case "C", "D":
		a.Points, a.Reason = 0, "average energy rating"
	case "E":
		a.Points, a.Reason = r.Min/2, "rent freeze ahead for rating E"
	case "F", "G":
		a.Points, a.Reason = r.Min, "rent frozen and value marked down"
	default:
		a.Points, a.Reason = 0, "energy rating not provided"
	}
	return a
}

func priceToRentAdjustment(r paramdomain.Range, years float64) domain.Adjustment {
	a := domain.Adjustment{Criterion: "price_to_rent"}
	switch {
	case years <= 0:
		a.Points, a.Reason = 0, "no rent"
	case years <= 15:
		a.Points, a.Reason = r.Max, "price below 15 years of rent"
	case years <= 20:
		a.Points, a.Reason = r.Max/2, "price between 15 and 20 years of rent"
	case years <= 25:
		a.Points, a.Reason = r.Min/2, "price between 20 and 25 years of rent"
	default:
		a.Points, a.Reason = r.Min, "price above 25 years of rent"
	}
	return a
}

func residualIncomeAdjustment(r paramdomain.Range, residual float64, corporate bool) domain.Adjustment {
	a := domain.Adjustment{Criterion: "residual_income"}
	switch {
	case corporate:
		a.Points, a.Reason = 0, "not applicable to companies"
	case residual >= 1_500:
		a.Points, a.Reason = r.Max, fmt.Sprintf("residual income of %.0f per month", residual)
	case residual >= 800:
		a.Points, a.Reason = 0, fmt.Sprintf("residual income of %.0f per month", residual)
	default:
		a.Points, a.Reason = r.Min, fmt.Sprintf("low residual income of %.0f per month", residual)
	}
	return a
}

// ownAlerts are findings only visible once every calculator has run.
func ownAlerts(p Params) []domain.Alert {
	var alerts []domain.Alert
	if p.Profitability.AfterTaxCashflow < 0 {
		alerts = append(alerts, domain.NewAlert(domain.SeverityWarning, source, "negative_cashflow",
			fmt.Sprintf("The investment requires %.0f per month after tax", -p.Profitability.AfterTaxCashflow/12)))
	}
	switch strings.ToUpper(p.Input.Property.EnergyRating) {
	case "F", "G":
		alerts = append(alerts, domain.NewAlert(domain.SeverityWarning, source, "rent_frozen",
			"Rent cannot be indexed for this energy rating"))
	case "E":
		alerts = append(alerts, domain.NewAlert(domain.SeverityInfo, source, "rent_freeze_scheduled",
			fmt.Sprintf("Rent indexation stops from %d for rating E", p.Config.Energy.FreezeEFromYear)))
	}
	if p.Projection.IRR < 0 {
		alerts = append(alerts, domain.NewAlert(domain.SeverityWarning, source, "negative_irr",
			"The projected internal rate of return is negative"))
	}
	return alerts
}

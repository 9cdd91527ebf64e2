package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

var priorityOrder = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

func recommend(p Params) []domain.Recommendation {
	in := p.Input
	var recs []domain.Recommendation
	add := func(category domain.RecommendationCategory, priority domain.Priority, code, message string) {
		recs = append(recs, domain.Recommendation{Category: category, Priority: priority, Code: code, Message: message})
	}

	if !p.Affordability.RatioCompliant {
		add(domain.CategoryFinancing, domain.PriorityHigh, "increase_down_payment",
			"Increase the down payment or the loan term to bring the debt ratio under the ceiling")
	}
	if !p.Affordability.TermCompliant {
		add(domain.CategoryFinancing, domain.PriorityHigh, "shorten_loan_term",
			fmt.Sprintf("Lenders cap the loan term at %d years", p.Affordability.MaxTermYears))
	}
	if p.Profitability.AfterTaxCashflow < 0 {
		if in.Financing.TermYears < p.Affordability.MaxTermYears {
			add(domain.CategoryFinancing, domain.PriorityMedium, "extend_loan_term",
				"A longer loan term lowers the monthly effort")
		}
		add(domain.CategoryRent, domain.PriorityMedium, "review_rent",
			"Check the rent against local market levels")
	}
	if p.Taxation.Savings > 0 && p.Taxation.Selected.Code != p.Taxation.Optimal {
		add(domain.CategoryTax, domain.PriorityHigh, "switch_regime",
			fmt.Sprintf("Switching to %s saves %.0f per year", p.Taxation.Optimal, p.Taxation.Savings))
	}
	switch strings.ToUpper(in.Property.EnergyRating) {
	case "F", "G":
		add(domain.CategoryEnergy, domain.PriorityHigh, "energy_renovation",
			"Plan an energy renovation to lift the rent freeze and protect resale value")
	case "E":
		add(domain.CategoryEnergy, domain.PriorityMedium, "energy_renovation",
			"Plan an energy renovation before the rent freeze applies")
	}
	if p.Profitability.NetYield < 3 {
		add(domain.CategoryRent, domain.PriorityMedium, "negotiate_price",
			"Net yield is low, negotiate the purchase price")
	}
	if !in.Structure.Corporate() && in.Structure.MarginalRate >= 41 && in.Operating.RentalType == domain.RentalBare {
		add(domain.CategoryStructure, domain.PriorityLow, "consider_furnished",
			"At this marginal rate, furnished letting or a company structure usually lowers the tax bill")
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return priorityOrder[recs[i].Priority] < priorityOrder[recs[j].Priority]
	})
	return recs
}

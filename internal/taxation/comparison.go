package taxation

import (
	"fmt"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// Compare runs every eligible regime on first-year figures with an empty state and
// flags the one leaving the highest after-tax cashflow. The requested regime is
// retained when set and eligible; otherwise the optimal one is selected.
func Compare(in Input, preTaxCashflow float64, s domain.Structure, rental domain.RentalType, cfg paramdomain.ResolvedConfiguration) (domain.TaxationResult, Regime, []domain.Alert, error) {
	requested, err := ForCode(s.TaxRegime, s, rental)
	if err != nil {
		return domain.TaxationResult{}, nil, nil, err
	}

	regimes := Eligible(s, rental)
	entries := make([]domain.RegimeComparison, len(regimes))
	optimal := -1
	for i, r := range regimes {
		outcome, _ := Compute(r, in, State{}, cfg)
		entries[i] = domain.RegimeComparison{
			Outcome:          outcome,
			PreTaxCashflow:   preTaxCashflow,
			AfterTaxCashflow: preTaxCashflow - outcome.TaxDue,
		}
		if !outcome.Eligible {
			continue
		}
		if optimal < 0 || entries[i].AfterTaxCashflow > entries[optimal].AfterTaxCashflow {
			optimal = i
		}
	}
	if optimal < 0 {
		return domain.TaxationResult{}, nil, nil, fmt.Errorf("no eligible regime for %s/%s", s.LegalForm, rental)
	}
	entries[optimal].Optimal = true

	selected := optimal
	var alerts []domain.Alert
	if requested != nil {
		for i, r := range regimes {
			if r.Code() == requested.Code() {
				selected = i
			}
		}
		if !entries[selected].Outcome.Eligible {
			alerts = append(alerts, entries[selected].Outcome.Alerts...)
			alerts = append(alerts, domain.NewAlert(domain.SeverityWarning, source, "regime_switched",
				fmt.Sprintf("%s is not available for this rent level, %s is used instead",
					entries[selected].Outcome.Label, entries[optimal].Outcome.Label)))
			selected = optimal
		}
	}
	alerts = append(alerts, entries[selected].Outcome.Alerts...)

	code := domain.RegimeAuto
	if requested != nil {
		code = requested.Code()
	}
	return domain.TaxationResult{
		Requested: code,
		Selected:  entries[selected].Outcome,
		Optimal:   entries[optimal].Outcome.Code,
		Savings:   entries[optimal].AfterTaxCashflow - entries[selected].AfterTaxCashflow,
		Entries:   entries,
	}, regimes[selected], alerts, nil
}

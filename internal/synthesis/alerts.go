package synthesis

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
)

// MergeAlerts concatenates alert lists and drops duplicates sharing a code and
// field, keeping the most severe occurrence at the position of the first one.
func MergeAlerts(lists ...[]domain.Alert) []domain.Alert {
	index := make(map[string]int)
	merged := make([]domain.Alert, 0)
	for _, list := range lists {
		for _, a := range list {
			key := alertKey(a)
			if i, ok := index[key]; ok {
				if a.Severity.Rank() > merged[i].Severity.Rank() {
					merged[i] = a
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, a)
		}
	}
	return merged
}

func alertKey(a domain.Alert) string {
	return slug.Make(strings.ReplaceAll(a.Code+" "+a.Field, "_", " "))
}

// attentionPoints converts merged alerts, most severe first.
func attentionPoints(alerts []domain.Alert) []domain.AttentionPoint {
	points := make([]domain.AttentionPoint, 0, len(alerts))
	for _, rank := range []domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo} {
		for _, a := range alerts {
			if a.Severity != rank {
				continue
			}
			points = append(points, domain.AttentionPoint{
				Key:      alertKey(a),
				Severity: a.Severity,
				Code:     a.Code,
				Message:  a.Message,
				Source:   a.Source,
			})
		}
	}
	return points
}

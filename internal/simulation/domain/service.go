package domain

import (
	"context"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
)

// Service runs one complete simulation. cfg may be nil, in which case the configuration
// is resolved for the requested fiscal year.
type Service interface {
	Calculate(ctx context.Context, raw RawInput, cfg *paramdomain.ResolvedConfiguration) Result
	CalculateJSON(ctx context.Context, payload []byte, cfg *paramdomain.ResolvedConfiguration) Result
}

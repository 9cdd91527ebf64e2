package domain

import "context"

// Provider resolves the configuration snapshot for a fiscal year. Implementations never
// fail the caller for cache or store trouble: they fall back to the defaults instead.
type Provider interface {
	GetConfig(ctx context.Context, fiscalYear int) (ResolvedConfiguration, error)
	Invalidate(fiscalYear int)
	InvalidateAll()
}

// Repository reads persisted overrides.
type Repository interface {
	ListByYear(ctx context.Context, fiscalYear int) ([]FiscalParameter, error)
}

// RemoteCache is the shared second-level cache between instances.
type RemoteCache interface {
	Get(ctx context.Context, fiscalYear int) (ResolvedConfiguration, error)
	Set(ctx context.Context, cfg ResolvedConfiguration) error
	Delete(ctx context.Context, fiscalYear int) error
}

// DefaultsSource yields the base configuration before store overrides are applied.
type DefaultsSource interface {
	Defaults(fiscalYear int) (ResolvedConfiguration, Source)
}

// MinFiscalYear and MaxFiscalYear bound accepted fiscal years.
const (
	MinFiscalYear = 2000
	MaxFiscalYear = 2100
)

func ValidFiscalYear(year int) bool {
	return year >= MinFiscalYear && year <= MaxFiscalYear
}

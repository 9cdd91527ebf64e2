package config

import (
	"os"
	"path/filepath"
	"testing"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFiscalFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fiscal.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFiscalDefaultsLayersYearOverGlobal(t *testing.T) {
	path := writeFiscalFile(t, `
fiscal:
  overrides:
    inflation.rent_growth: 0.01
  years:
    "2026":
      deficit.global_income_cap: 21400
`)
	holder, err := NewFiscalDefaultsHolder(Config{FiscalConfigPath: path}, zaptest.NewLogger(t))
	require.NoError(t, err)

	cfg, source := holder.Defaults(2026)
	assert.Equal(t, paramdomain.SourceFile, source)
	assert.Equal(t, 2026, cfg.FiscalYear)
	assert.Equal(t, 21400.0, cfg.Deficit.GlobalIncomeCap)
	assert.Equal(t, 0.01, cfg.Inflation.RentGrowth)

	cfg, _ = holder.Defaults(2025)
	assert.Equal(t, 10700.0, cfg.Deficit.GlobalIncomeCap)
	assert.Equal(t, 0.01, cfg.Inflation.RentGrowth)
}

func TestFiscalDefaultsWithoutFileUsesConstants(t *testing.T) {
	holder, err := NewFiscalDefaultsHolder(Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	cfg, source := holder.Defaults(2025)
	assert.Equal(t, paramdomain.SourceDefaults, source)
	assert.Equal(t, paramdomain.DefaultConfiguration().Tax, cfg.Tax)
}

func TestFiscalDefaultsRejectsInvalidFile(t *testing.T) {
	path := writeFiscalFile(t, `
fiscal:
  overrides:
    depreciation.land_share: 2
`)
	_, err := NewFiscalDefaultsHolder(Config{FiscalConfigPath: path}, zaptest.NewLogger(t))
	require.ErrorIs(t, err, paramdomain.ErrInvalidConfiguration)
}

func TestStaticFiscalDefaultsNotifiesListeners(t *testing.T) {
	holder := NewStaticFiscalDefaults(FiscalFile{Overrides: map[string]float64{"scoring.base": 40}})
	called := 0
	holder.OnChange(func() { called++ })
	holder.notify()

	cfg, _ := holder.Defaults(2025)
	assert.Equal(t, 40.0, cfg.Scoring.Base)
	assert.Equal(t, 1, called)
}

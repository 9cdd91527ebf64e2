package config

import (
	"errors"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// FiscalFile is the content of fiscal.yml. Keys are the dotted parameter keys, e.g.
//
//	fiscal:
//	  overrides:
//	    inflation.rent_growth: 0.01
//	  years:
//	    "2026":
//	      deficit.global_income_cap: 21400
type FiscalFile struct {
	Overrides map[string]float64            `mapstructure:"overrides"`
	Years     map[string]map[string]float64 `mapstructure:"years"`
}

// FiscalDefaultsHolder serves the file-level defaults and swaps them atomically on change.
type FiscalDefaultsHolder struct {
	current atomic.Value // holds FiscalFile
	loaded  bool
	log     *zap.Logger

	mu        sync.Mutex
	listeners []func()
}

func NewFiscalDefaultsHolder(cfg Config, log *zap.Logger) (*FiscalDefaultsHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.fiscal")

	// Parameter keys contain dots, so viper must not treat them as nesting.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	if cfg.FiscalConfigPath != "" {
		v.SetConfigFile(cfg.FiscalConfigPath)
	} else {
		v.SetConfigName("fiscal")
		v.SetConfigType("yml")
		v.AddConfigPath("/var/lib/immolens/config")
		v.AddConfigPath("/etc/immolens")
		v.AddConfigPath(".")
	}

	holder := &FiscalDefaultsHolder{log: log}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Info("fiscal defaults file not found, using built-in constants")
		holder.current.Store(FiscalFile{})
		return holder, nil
	}

	file, err := decodeFiscalFile(v)
	if err != nil {
		return nil, err
	}
	if err := validateFiscalFile(file, log); err != nil {
		return nil, err
	}
	holder.current.Store(file)
	holder.loaded = true
	log.Info("fiscal defaults loaded", zap.String("path", filepath.Clean(v.ConfigFileUsed())))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeFiscalFile(v)
		if err != nil {
			log.Warn("fiscal defaults reload failed", zap.Error(err))
			return
		}
		if err := validateFiscalFile(updated, log); err != nil {
			log.Warn("invalid fiscal defaults ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("fiscal defaults reloaded", zap.String("path", e.Name))
		holder.notify()
	})

	return holder, nil
}

// NewStaticFiscalDefaults wraps an in-memory file, mostly for tests.
func NewStaticFiscalDefaults(file FiscalFile) *FiscalDefaultsHolder {
	holder := &FiscalDefaultsHolder{log: zap.NewNop(), loaded: true}
	holder.current.Store(file)
	return holder
}

func (h *FiscalDefaultsHolder) Get() FiscalFile {
	return h.current.Load().(FiscalFile)
}

// OnChange registers fn to run after every successful reload.
func (h *FiscalDefaultsHolder) OnChange(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Defaults returns the built-in constants for fiscalYear with file overrides applied.
func (h *FiscalDefaultsHolder) Defaults(fiscalYear int) (paramdomain.ResolvedConfiguration, paramdomain.Source) {
	base := paramdomain.DefaultConfiguration()
	base.FiscalYear = fiscalYear
	if h == nil || !h.loaded {
		return base, paramdomain.SourceDefaults
	}

	file := h.Get()
	overrides := mergeOverrides(file.Overrides, file.Years[strconv.Itoa(fiscalYear)])
	if len(overrides) == 0 {
		return base, paramdomain.SourceDefaults
	}
	resolved, _ := base.WithOverrides(overrides)
	resolved.Source = paramdomain.SourceFile
	return resolved, paramdomain.SourceFile
}

func (h *FiscalDefaultsHolder) notify() {
	h.mu.Lock()
	listeners := append([]func(){}, h.listeners...)
	h.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func decodeFiscalFile(v *viper.Viper) (FiscalFile, error) {
	var file FiscalFile
	if err := v.UnmarshalKey("fiscal", &file); err != nil {
		return FiscalFile{}, err
	}
	return file, nil
}

func mergeOverrides(layers ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, layer := range layers {
		for k, val := range layer {
			out[k] = val
		}
	}
	return out
}

func validateFiscalFile(file FiscalFile, log *zap.Logger) error {
	years := make([]string, 0, len(file.Years))
	for year := range file.Years {
		if _, err := strconv.Atoi(strings.TrimSpace(year)); err != nil {
			return errors.New("fiscal.years keys must be years")
		}
		years = append(years, year)
	}
	sort.Strings(years)

	check := func(label string, overrides map[string]float64) error {
		resolved, unknown := paramdomain.DefaultConfiguration().WithOverrides(overrides)
		if len(unknown) > 0 {
			log.Warn("unknown fiscal parameter keys ignored", zap.String("scope", label), zap.Strings("keys", unknown))
		}
		return resolved.Validate()
	}

	if err := check("overrides", file.Overrides); err != nil {
		return err
	}
	for _, year := range years {
		if err := check(year, mergeOverrides(file.Overrides, file.Years[year])); err != nil {
			return err
		}
	}
	return nil
}

package domain

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid_configuration")
	ErrInvalidFiscalYear    = errors.New("invalid_fiscal_year")
	ErrUnknownKey           = errors.New("unknown_parameter_key")
	ErrCacheMiss            = errors.New("cache_miss")
)

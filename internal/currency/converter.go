package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrInvalidRate         = errors.New("rate must be positive")
)

// defaultRates is the static fallback table, each rate expressed relative to
// the PKR pivot (pivot rate 1.0). Used when no persisted table exists.
var defaultRates = map[string]float64{
	"PKR": 1.0,
	"USD": 280.5,
	"EUR": 305.2,
	"GBP": 355.8,
	"SAR": 74.8,
	"AED": 76.4,
}

// Store persists the rate table between process runs.
type Store interface {
	LoadRates(ctx context.Context) (map[string]float64, error)
	SaveRates(ctx context.Context, rates map[string]float64) error
}

// Converter holds the rate table and converts amounts between currencies via
// the pivot. The table is read-mostly: conversions take a read lock and
// UpdateRates swaps in a fresh map under the write lock.
type Converter struct {
	mu     sync.RWMutex
	rates  map[string]float64
	pivot  string
	store  Store
	logger *zap.Logger
}

func NewConverter(pivot string, store Store, logger *zap.Logger) *Converter {
	rates := make(map[string]float64, len(defaultRates))
	for code, rate := range defaultRates {
		rates[code] = rate
	}
	rates[strings.ToUpper(pivot)] = 1.0

	return &Converter{
		rates:  rates,
		pivot:  strings.ToUpper(pivot),
		store:  store,
		logger: logger,
	}
}

// Load replaces the default table with the persisted one. An empty or
// unreadable store keeps the defaults; the table is non-authoritative.
func (c *Converter) Load(ctx context.Context) {
	if c.store == nil {
		return
	}

	stored, err := c.store.LoadRates(ctx)
	if err != nil {
		c.logger.Warn("Failed to load currency rates, using defaults", zap.Error(err))
		return
	}
	if len(stored) == 0 {
		c.logger.Info("No persisted currency rates, using defaults")
		return
	}

	stored[c.pivot] = 1.0

	c.mu.Lock()
	c.rates = stored
	c.mu.Unlock()

	c.logger.Info("Currency rates loaded", zap.Int("count", len(stored)))
}

// Convert converts amount from one currency to another, hopping through the
// pivot. Unknown codes fail with ErrUnsupportedCurrency.
func (c *Converter) Convert(amount float64, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	fromRate, ok := c.rates[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := c.rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	pivotAmount := amount * fromRate
	return pivotAmount / toRate, nil
}

// Supported reports whether a currency code is in the rate table.
func (c *Converter) Supported(code string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.rates[strings.ToUpper(code)]
	return ok
}

// Rates returns a defensive copy of the table.
func (c *Converter) Rates() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]float64, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

// UpdateRates merges new rates into the table, persists the merged result
// and only then swaps the live table. A storage failure leaves the live
// table untouched, keeping memory and store in agreement. The pivot rate
// cannot be changed.
func (c *Converter) UpdateRates(ctx context.Context, updates map[string]float64) error {
	for code, rate := range updates {
		if rate <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidRate, code)
		}
	}

	c.mu.RLock()
	merged := make(map[string]float64, len(c.rates)+len(updates))
	for code, rate := range c.rates {
		merged[code] = rate
	}
	c.mu.RUnlock()

	for code, rate := range updates {
		merged[strings.ToUpper(code)] = rate
	}
	merged[c.pivot] = 1.0

	if c.store != nil {
		if err := c.store.SaveRates(ctx, merged); err != nil {
			return fmt.Errorf("persist currency rates: %w", err)
		}
	}

	c.mu.Lock()
	c.rates = merged
	c.mu.Unlock()

	return nil
}

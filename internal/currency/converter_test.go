package currency

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

func newTestConverter() *Converter {
	return NewConverter("PKR", nil, zap.NewNop())
}

type stubStore struct {
	rates   map[string]float64
	saved   map[string]float64
	loadErr error
	saveErr error
}

func (s *stubStore) LoadRates(ctx context.Context) (map[string]float64, error) {
	return s.rates, s.loadErr
}

func (s *stubStore) SaveRates(ctx context.Context, rates map[string]float64) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = rates
	return nil
}

func TestConvertSameCurrency(t *testing.T) {
	c := newTestConverter()

	got, err := c.Convert(123.45, "USD", "USD")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 123.45 {
		t.Errorf("expected 123.45, got %v", got)
	}
}

func TestConvertToPivot(t *testing.T) {
	c := newTestConverter()

	got, err := c.Convert(10, "USD", "PKR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 2805 {
		t.Errorf("expected 2805, got %v", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := newTestConverter()

	there, err := c.Convert(100, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	back, err := c.Convert(there, "EUR", "USD")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if math.Abs(back-100) > 1e-9 {
		t.Errorf("round trip drifted: got %v", back)
	}
}

func TestConvertLowercaseCodes(t *testing.T) {
	c := newTestConverter()

	upper, err := c.Convert(50, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	lower, err := c.Convert(50, "usd", "eur")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if upper != lower {
		t.Errorf("case should not matter: %v vs %v", upper, lower)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	c := newTestConverter()

	if _, err := c.Convert(10, "XYZ", "PKR"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if _, err := c.Convert(10, "PKR", "XYZ"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	c := newTestConverter()

	if !c.Supported("usd") {
		t.Error("expected usd to be supported")
	}
	if c.Supported("XYZ") {
		t.Error("expected XYZ to be unsupported")
	}
}

func TestRatesReturnsCopy(t *testing.T) {
	c := newTestConverter()

	rates := c.Rates()
	rates["USD"] = 1

	got, err := c.Convert(1, "USD", "PKR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 280.5 {
		t.Errorf("mutating the returned map should not affect the table, got %v", got)
	}
}

func TestUpdateRates(t *testing.T) {
	c := newTestConverter()

	if err := c.UpdateRates(context.Background(), map[string]float64{"USD": 300, "inr": 3.35}); err != nil {
		t.Fatalf("UpdateRates failed: %v", err)
	}

	got, err := c.Convert(1, "USD", "PKR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 300 {
		t.Errorf("expected updated rate 300, got %v", got)
	}
	if !c.Supported("INR") {
		t.Error("expected INR to be supported after update")
	}
}

func TestUpdateRatesRejectsNonPositive(t *testing.T) {
	c := newTestConverter()

	if err := c.UpdateRates(context.Background(), map[string]float64{"USD": 0}); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
	if err := c.UpdateRates(context.Background(), map[string]float64{"USD": -5}); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("expected ErrInvalidRate, got %v", err)
	}
}

func TestUpdateRatesPersistFailureKeepsTable(t *testing.T) {
	store := &stubStore{saveErr: errors.New("connection refused")}
	c := NewConverter("PKR", store, zap.NewNop())

	if err := c.UpdateRates(context.Background(), map[string]float64{"USD": 300}); err == nil {
		t.Fatal("expected UpdateRates to surface the storage error")
	}

	if got := c.Rates()["USD"]; got != 280.5 {
		t.Errorf("failed persist must leave the live table untouched, got USD=%v", got)
	}
}

func TestUpdateRatesPersistsMergedTable(t *testing.T) {
	store := &stubStore{}
	c := NewConverter("PKR", store, zap.NewNop())

	if err := c.UpdateRates(context.Background(), map[string]float64{"USD": 300}); err != nil {
		t.Fatalf("UpdateRates failed: %v", err)
	}

	if store.saved == nil {
		t.Fatal("expected rates to be persisted")
	}
	if store.saved["USD"] != 300 {
		t.Errorf("expected persisted USD=300, got %v", store.saved["USD"])
	}
	if store.saved["EUR"] != 305.2 {
		t.Errorf("expected existing EUR rate persisted alongside, got %v", store.saved["EUR"])
	}
}

func TestLoadFallsBackOnError(t *testing.T) {
	store := &stubStore{loadErr: errors.New("relation does not exist")}
	c := NewConverter("PKR", store, zap.NewNop())

	c.Load(context.Background())

	if got := c.Rates()["USD"]; got != 280.5 {
		t.Errorf("unreadable store must keep defaults, got USD=%v", got)
	}
}

func TestUpdateRatesCannotChangePivot(t *testing.T) {
	c := newTestConverter()

	if err := c.UpdateRates(context.Background(), map[string]float64{"PKR": 2}); err != nil {
		t.Fatalf("UpdateRates failed: %v", err)
	}

	if got := c.Rates()["PKR"]; got != 1.0 {
		t.Errorf("pivot rate must stay 1.0, got %v", got)
	}
}

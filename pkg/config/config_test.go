package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port == "" {
		t.Error("expected a default server port")
	}
	if cfg.Database.Host == "" {
		t.Error("expected a default database host")
	}
	if cfg.Currency.Pivot == "" {
		t.Error("expected a default pivot currency")
	}
	if cfg.Currency.DefaultBase == "" {
		t.Error("expected a default base currency")
	}
	if cfg.JWT.Expiration <= 0 {
		t.Errorf("expected positive JWT expiration, got %v", cfg.JWT.Expiration)
	}
	if cfg.JWT.RefreshExp <= cfg.JWT.Expiration {
		t.Errorf("refresh expiration %v should outlive access expiration %v", cfg.JWT.RefreshExp, cfg.JWT.Expiration)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "finledger_test")
	t.Setenv("CURRENCY_PIVOT", "USD")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "finledger_test" {
		t.Errorf("expected db finledger_test, got %s", cfg.Database.DBName)
	}
	if cfg.Currency.Pivot != "USD" {
		t.Errorf("expected pivot USD, got %s", cfg.Currency.Pivot)
	}
	if cfg.JWT.Expiration != 2*time.Hour {
		t.Errorf("expected 2h expiration, got %v", cfg.JWT.Expiration)
	}
}

package config

import (
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://localhost/bazaar",
		"REDIS_URL":           "redis://localhost:6379",
		"JWT_SECRET":          "jwt-secret",
		"PREVIEW_HMAC_SECRET": "preview-secret",
	}
}

func TestLoadAppliesPricingDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.FreeDeliveryThreshold.String(); got != "499" {
		t.Fatalf("free delivery threshold: %s", got)
	}
	if got := cfg.CODSurcharge.String(); got != "50" {
		t.Fatalf("cod surcharge: %s", got)
	}
	if got := cfg.PlatformFee.String(); got != "5" {
		t.Fatalf("platform fee: %s", got)
	}
	if got := cfg.DefaultTaxRate.String(); got != "18" {
		t.Fatalf("default tax rate: %s", got)
	}
	if cfg.PreviewTTL != 15*time.Minute {
		t.Fatalf("preview ttl: %s", cfg.PreviewTTL)
	}
	if cfg.Currency != "INR" {
		t.Fatalf("currency: %s", cfg.Currency)
	}
}

func TestLoadRequiresPreviewSecret(t *testing.T) {
	env := baseEnv()
	env["PREVIEW_HMAC_SECRET"] = ""
	if _, err := LoadForTests(env); err == nil {
		t.Fatal("expected missing preview secret error")
	}
}

func TestLoadRejectsNegativeFees(t *testing.T) {
	env := baseEnv()
	env["PRICING_PLATFORM_FEE"] = "-1"
	if _, err := LoadForTests(env); err == nil {
		t.Fatal("expected negative fee error")
	}
}

func TestLoadOverridesPricing(t *testing.T) {
	env := baseEnv()
	env["PRICING_FREE_DELIVERY_THRESHOLD"] = "999"
	env["PRICING_COD_SURCHARGE"] = "75.50"
	cfg, err := LoadForTests(env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.FreeDeliveryThreshold.String(); got != "999" {
		t.Fatalf("free delivery threshold: %s", got)
	}
	if got := cfg.CODSurcharge.String(); got != "75.5" {
		t.Fatalf("cod surcharge: %s", got)
	}
}

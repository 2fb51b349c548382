package config

import "testing"

func TestNewConfigRequiresStripeKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected an error without STRIPE_SECRET_KEY")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StripeAPIURL != "https://api.stripe.com" {
		t.Errorf("StripeAPIURL=%q", cfg.StripeAPIURL)
	}
	if cfg.ReportWorkers != 4 {
		t.Errorf("ReportWorkers=%d, want 4", cfg.ReportWorkers)
	}
	if cfg.SMTPPort != "587" {
		t.Errorf("SMTPPort=%q, want 587", cfg.SMTPPort)
	}
}

func TestNewConfigWorkerFloor(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("REPORT_WORKERS", "-3")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReportWorkers != 1 {
		t.Errorf("ReportWorkers=%d, want floor of 1", cfg.ReportWorkers)
	}
}

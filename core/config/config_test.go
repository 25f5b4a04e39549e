package config

import "testing"

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:    "123:abc",
			AdminIDs: []int64{42},
		},
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Database.Port != "5432" {
		t.Errorf("db port = %q, want 5432", cfg.Database.Port)
	}
	if cfg.Sessions.TTLMinutes != 30 {
		t.Errorf("ttl_minutes = %d, want 30", cfg.Sessions.TTLMinutes)
	}
	if cfg.Sessions.SweepSeconds != 60 {
		t.Errorf("sweep_seconds = %d, want 60", cfg.Sessions.SweepSeconds)
	}
	if cfg.Health.Port != 3000 {
		t.Errorf("health port = %d, want 3000", cfg.Health.Port)
	}
	if got := cfg.Health.Addr(); got != "0.0.0.0:3000" {
		t.Errorf("health addr = %q", got)
	}
}

func TestNormalize_RequiresAdmins(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.AdminIDs = nil
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty admin_ids")
	}

	cfg = validConfig()
	cfg.Telegram.AdminIDs = []int64{0}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for zero admin id")
	}
}

func TestNormalize_RequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalize_WebhookValidation(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}

	cfg = validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Webhook.URL = "https://example.com/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalize_PollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := validConfig()
	if !cfg.IsAdmin(42) {
		t.Error("expected 42 to be admin")
	}
	if cfg.IsAdmin(7) {
		t.Error("expected 7 not to be admin")
	}
}

func TestNormalize_RejectsUnknownExclude(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"bogus"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown exclude_updates value")
	}
}

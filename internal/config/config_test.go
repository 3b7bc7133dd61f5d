package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envKeys = []string{
	"APP_PORT", "LOG_LEVEL", "LOW_STOCK_THRESHOLD",
	"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN",
	"WHATSAPP_BASE_URL", "WHATSAPP_API_VERSION", "WHATSAPP_MANAGER_ID",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
	"REPORT_CRON_SCHEDULE", "TIMEZONE", "MONGODB_URI", "MONGODB_DB_NAME",
}

// clearEnv blanks every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected server/log defaults %+v %+v", cfg.Server, cfg.Log)
	}
	if cfg.Inventory.LowStockThreshold != 5 {
		t.Fatalf("unexpected threshold %d", cfg.Inventory.LowStockThreshold)
	}
	if cfg.WhatsApp.Enabled() || cfg.Sheets.Enabled() || cfg.MongoDB.Enabled() {
		t.Fatalf("integrations should be disabled by default")
	}
	if cfg.Reporting.CronSchedule != "0 20 * * *" || cfg.Reporting.Timezone != "UTC" {
		t.Fatalf("unexpected reporting defaults %+v", cfg.Reporting)
	}
	if cfg.MongoDB.DBName != "stockroom" {
		t.Fatalf("unexpected db name %q", cfg.MongoDB.DBName)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, so unset
	// the blanked keys the file provides.
	for _, key := range []string{"APP_PORT", "LOW_STOCK_THRESHOLD", "WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "META_VERIFY_TOKEN"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"APP_PORT=9090",
		"LOW_STOCK_THRESHOLD=2",
		"WHATSAPP_TOKEN=token",
		"WHATSAPP_PHONE_NUMBER_ID=123",
		"META_VERIFY_TOKEN=verify",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Inventory.LowStockThreshold != 2 {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if !cfg.WhatsApp.Enabled() || cfg.WhatsApp.PhoneNumberID != "123" {
		t.Fatalf("whatsapp config not applied: %+v", cfg.WhatsApp)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOW_STOCK_THRESHOLD", "many")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected non-numeric threshold to fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
			WhatsApp:  WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"negative threshold", func(c *Config) { c.Inventory.LowStockThreshold = -1 }},
		{"token without phone", func(c *Config) {
			c.WhatsApp.AccessToken = "t"
			c.WhatsApp.VerifyToken = "v"
		}},
		{"token without verify", func(c *Config) {
			c.WhatsApp.AccessToken = "t"
			c.WhatsApp.PhoneNumberID = "1"
		}},
		{"half sheets config", func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }},
		{"bad cron", func(c *Config) { c.Reporting.CronSchedule = "every day" }},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }},
		{"mongo without db", func(c *Config) { c.MongoDB.URI = "mongodb://localhost:27017" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	var nilCfg *Config
	if err := nilCfg.Validate(); err == nil {
		t.Fatalf("expected nil config to fail")
	}
}

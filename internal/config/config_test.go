package config

import (
	"testing"
	"time"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

func requiredEnv() mapEnv {
	return mapEnv{
		"ORGANIZATION_NAME": "acme",
		"ACCOUNT_ID":        "acct-1",
		"BEARER_TOKEN":      "svc-token",
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv(requiredEnv())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("expected default gin mode release, got %q", cfg.GinMode)
	}
	if cfg.AccessBaseURL != "https://acme.cloudflareaccess.com" {
		t.Fatalf("unexpected access base url %q", cfg.AccessBaseURL)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.IdentityRetries != 1 {
		t.Fatalf("expected 1 identity retry, got %d", cfg.IdentityRetries)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Fatalf("unexpected upstream timeout %v", cfg.UpstreamTimeout)
	}
	if cfg.Debug {
		t.Fatalf("expected debug off by default")
	}
	if cfg.Theme.PrimaryColor != "#3498db" || cfg.Theme.SecondaryColor != "#2ecc71" {
		t.Fatalf("unexpected default theme %+v", cfg.Theme)
	}
}

func TestLoadConfigFromEnv_MissingRequired(t *testing.T) {
	for _, key := range []string{"ORGANIZATION_NAME", "ACCOUNT_ID", "BEARER_TOKEN"} {
		env := requiredEnv()
		delete(env, key)
		if _, err := LoadConfigFromEnv(env); err == nil {
			t.Fatalf("expected error without %s", key)
		}
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	env := requiredEnv()
	env["PORT"] = "1234"
	env["DEBUG"] = "TRUE"
	env["ACCESS_BASE_URL"] = "http://127.0.0.1:9000/"
	env["API_BASE_URL"] = "http://127.0.0.1:9001/client/v4/"
	env["UPSTREAM_TIMEOUT_SECONDS"] = "3"
	env["IDENTITY_RETRIES"] = "0"
	env["THEME_PRIMARY_COLOR"] = "#000000"

	cfg, err := LoadConfigFromEnv(env)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 1234 {
		t.Fatalf("expected port 1234, got %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug on")
	}
	if cfg.AccessBaseURL != "http://127.0.0.1:9000" {
		t.Fatalf("unexpected access base url %q", cfg.AccessBaseURL)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:9001/client/v4" {
		t.Fatalf("unexpected api base url %q", cfg.APIBaseURL)
	}
	if cfg.UpstreamTimeout != 3*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.UpstreamTimeout)
	}
	if cfg.IdentityRetries != 0 {
		t.Fatalf("expected 0 retries, got %d", cfg.IdentityRetries)
	}
	if cfg.Theme.PrimaryColor != "#000000" {
		t.Fatalf("unexpected primary color %q", cfg.Theme.PrimaryColor)
	}
}

func TestLoadConfigFromEnv_InvalidNumbers(t *testing.T) {
	cases := map[string]string{
		"PORT":                     "70000",
		"UPSTREAM_TIMEOUT_SECONDS": "0",
		"IDENTITY_RETRIES":         "-1",
		"RATE_LIMIT_PER_MINUTE":    "abc",
	}
	for key, value := range cases {
		env := requiredEnv()
		env[key] = value
		if _, err := LoadConfigFromEnv(env); err == nil {
			t.Fatalf("expected error for %s=%s", key, value)
		}
	}
}

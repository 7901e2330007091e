package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Storage != StorageFile {
		t.Fatalf("expected file storage, got %q", cfg.Storage)
	}
	if cfg.LogoutNotifyTimeout != 10*time.Second {
		t.Fatalf("unexpected notify timeout %s", cfg.LogoutNotifyTimeout)
	}
	if cfg.Redis.Prefix != "portal:" {
		t.Fatalf("unexpected redis prefix %q", cfg.Redis.Prefix)
	}
	if cfg.Sandbox.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.Sandbox.AccessTokenTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORTAL_BASE_URL":       "https://api.example.test/",
		"PORTAL_STORAGE":        "redis",
		"REDIS_ADDR":            "cache:6380",
		"REDIS_DB":              "3",
		"LOGOUT_NOTIFY_TIMEOUT": "2s",
		"ACCESS_TOKEN_TTL":      "1m",
		"SANDBOX_TOKEN_STORE":   "redis",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageRedis || cfg.Redis.Addr != "cache:6380" || cfg.Redis.DB != 3 {
		t.Fatalf("redis settings not applied: %+v", cfg.Redis)
	}
	if cfg.LogoutNotifyTimeout != 2*time.Second {
		t.Fatalf("unexpected notify timeout %s", cfg.LogoutNotifyTimeout)
	}
	if cfg.Sandbox.AccessTokenTTL != time.Minute || cfg.Sandbox.TokenStore != "redis" {
		t.Fatalf("sandbox settings not applied: %+v", cfg.Sandbox)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"storage":     {"PORTAL_STORAGE": "s3"},
		"base url":    {"PORTAL_BASE_URL": "not a url"},
		"token store": {"SANDBOX_TOKEN_STORE": "mongo"},
		"ttl":         {"ACCESS_TOKEN_TTL": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}

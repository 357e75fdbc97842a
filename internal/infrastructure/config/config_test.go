package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "jwt",
		"ENC_KEY":    "enc",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Auth.BcryptCost != 10 || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Notifications.Workers != 4 || cfg.Redis.RoleCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_MissingSecrets(t *testing.T) {
	cases := map[string]map[string]string{
		"no jwt secret": {"ENC_KEY": "enc"},
		"no enc key":    {"JWT_SECRET": "jwt"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "jwt",
		"ENC_KEY":      "enc",
		"ENV":          "production",
		"TOKEN_TTL":    "1h",
		"CORS_ORIGINS": "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDevelopment() || cfg.Auth.TokenTTL != time.Hour || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

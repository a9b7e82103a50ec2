package config

import "testing"

func TestFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SEED_PASSWORD", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.Port != "4000" || !cfg.CookieSecure || cfg.SeedPassword != "password123" || cfg.BcryptCost != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("BCRYPT_COST", "high")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for non-numeric BCRYPT_COST")
	}
}

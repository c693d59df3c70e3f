package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default base URL: %s", cfg.BaseURL)
	}
	if cfg.MemberID != "demo_member" {
		t.Errorf("unexpected default member id: %s", cfg.MemberID)
	}
	if cfg.UserGroup != "member" {
		t.Errorf("unexpected default user group: %s", cfg.UserGroup)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLASSDESK_API_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("CLASSDESK_USER_GROUP", "front_desk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("env override not applied: %s", cfg.BaseURL)
	}
	if cfg.UserGroup != "front_desk" {
		t.Errorf("env override not applied: %s", cfg.UserGroup)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CLASSDESK_API_BASE_URL", "not a url")
	if _, err := Load(); err == nil {
		t.Error("expected validation error for malformed base URL")
	}

	t.Setenv("CLASSDESK_API_BASE_URL", "http://127.0.0.1:8000")
	t.Setenv("CLASSDESK_USER_GROUP", "manager")
	if _, err := Load(); err == nil {
		t.Error("expected validation error for unknown user group")
	}
}

package config

import (
	"testing"
	"time"
)

// TestParseFloatEnv проверяет разбор числового множителя из ENV.
func TestParseFloatEnv(t *testing.T) {
	t.Setenv("EMERGENCY_FUND_MULTIPLIER", "4.5")

	got, err := parseFloatEnv("EMERGENCY_FUND_MULTIPLIER", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 4.5 {
		t.Fatalf("expected 4.5, got %f", got)
	}
}

// TestParseFloatEnvMissing проверяет значение по умолчанию при отсутствии ENV.
func TestParseFloatEnvMissing(t *testing.T) {
	got, err := parseFloatEnv("MISSING_MULTIPLIER", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 3 {
		t.Fatalf("expected fallback 3, got %f", got)
	}
}

// TestParseFloatEnvInvalid проверяет ошибки для нечисловых и неположительных значений.
func TestParseFloatEnvInvalid(t *testing.T) {
	t.Setenv("BAD_MULTIPLIER", "abc")
	if _, err := parseFloatEnv("BAD_MULTIPLIER", 3); err == nil {
		t.Fatal("expected error for non-numeric value")
	}

	t.Setenv("BAD_MULTIPLIER", "-1")
	if _, err := parseFloatEnv("BAD_MULTIPLIER", 3); err == nil {
		t.Fatal("expected error for negative value")
	}
}

// TestParseDurationEnv проверяет разбор таймаута из ENV.
func TestParseDurationEnv(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "45s")

	got, err := parseDurationEnv("AI_TIMEOUT", 30*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 45*time.Second {
		t.Fatalf("expected 45s, got %v", got)
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/heartlink/internal/config"
)

func defaultPasswordPolicy() config.PasswordPolicyConfig {
	return config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
}

func TestValidatePasswordAccumulatesViolations(t *testing.T) {
	err := validatePassword(defaultPasswordPolicy(), "abc")
	if err == nil {
		t.Fatal("expected policy error")
	}
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	perr, ok := err.(passwordPolicyError)
	if !ok {
		t.Fatalf("expected passwordPolicyError, got %T", err)
	}
	want := []string{
		"Password must be at least 8 characters long",
		"Password must contain at least one uppercase letter",
		"Password must contain at least one number",
		"Password must contain at least one special character",
	}
	got := perr.Violations()
	if len(got) != len(want) {
		t.Fatalf("expected %d violations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("violation %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidatePasswordEmptyFailsAllRules(t *testing.T) {
	err := validatePassword(defaultPasswordPolicy(), "")
	if err == nil {
		t.Fatal("expected policy error")
	}
	perr := err.(passwordPolicyError)
	if len(perr.Violations()) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(perr.Violations()), perr.Violations())
	}
}

func TestValidatePasswordAccepts(t *testing.T) {
	if err := validatePassword(defaultPasswordPolicy(), "Abcdef1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestValidatePasswordDisabledPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, ""); err != nil {
		t.Fatalf("expected nil with empty policy, got %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		if err := validateEmail(email); err != nil {
			t.Fatalf("expected %q to be valid: %v", email, err)
		}
	}
	invalid := []string{"", "plain", "no@tld", "two@@example.com", "spa ce@example.com"}
	for _, email := range invalid {
		if err := validateEmail(email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected %q to be invalid, got %v", email, err)
		}
	}
}

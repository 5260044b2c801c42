package auth

import (
	"context"
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Sign("a@x.com")
	if err != nil {
		t.Fatalf("Sign() unexpected error: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", claims.Email)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := signer.Sign("a@x.com")
	if err != nil {
		t.Fatalf("Sign() unexpected error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Errorf("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Sign("a@x.com")
	if err != nil {
		t.Fatalf("Sign() unexpected error: %v", err)
	}

	if _, err := m.Verify(token); err == nil {
		t.Errorf("expected expired token to be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	if _, err := m.Verify("not-a-token"); err == nil {
		t.Errorf("expected malformed token to be rejected")
	}
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &Claims{Email: "a@x.com"}
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatalf("expected claims in context")
	}
	if got.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", got.Email)
	}

	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Errorf("expected no claims in empty context")
	}
}

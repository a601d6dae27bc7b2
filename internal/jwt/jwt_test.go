package jwt

import (
	"testing"
	"time"
)

func TestSignAndVerify_Valid(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("super-secret")

	tok, issuedAt, expiresAt, err := svc.Sign("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if !expiresAt.After(issuedAt) {
		t.Fatalf("expiresAt %v not after issuedAt %v", expiresAt, issuedAt)
	}

	v := svc.Verify(tok)
	if v.Status != StatusValid {
		t.Fatalf("expected StatusValid, got %v (err: %v)", v.Status, v.Err)
	}
	if v.Claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", v.Claims.Subject, "user-123")
	}
	if v.Claims.Issuer != Issuer {
		t.Fatalf("issuer mismatch: got %q want %q", v.Claims.Issuer, Issuer)
	}
}

func TestSign_DistinctTokensWithinSameSecond(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("super-secret")

	// iat and exp only carry second precision, so back-to-back calls land on
	// identical timestamps; the tokens must still differ
	first, _, _, err := svc.Sign("u1", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	second, _, _, err := svc.Sign("u1", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	if first == second {
		t.Fatalf("two tokens for the same subject and ttl are identical: %s", first)
	}
	if v := svc.Verify(second); v.Status != StatusValid || v.Claims.ID == "" {
		t.Fatalf("expected a valid token carrying a token id, got status %v claims %+v", v.Status, v.Claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("secret")

	tok, _, _, err := svc.Sign("u1", -time.Second)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	v := svc.Verify(tok)
	if v.Status != StatusExpired {
		t.Fatalf("expected StatusExpired, got %v", v.Status)
	}
	if v.Claims != nil {
		t.Fatalf("expected nil claims on expired token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, _, err := NewJWTService("right-secret").Sign("u2", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	v := NewJWTService("wrong-secret").Verify(tok)
	if v.Status != StatusInvalid {
		t.Fatalf("expected StatusInvalid, got %v", v.Status)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	v := NewJWTService("k").Verify("not.a.jwt")
	if v.Status != StatusInvalid {
		t.Fatalf("expected StatusInvalid for malformed token, got %v", v.Status)
	}
}

func TestVerify_ForeignIssuerRejected(t *testing.T) {
	t.Parallel()

	// A token signed with the right secret but for another issuer/audience
	// must not validate here
	foreign := newForeignToken(t, "shared-secret")

	v := NewJWTService("shared-secret").Verify(foreign)
	if v.Status != StatusInvalid {
		t.Fatalf("expected StatusInvalid for foreign issuer, got %v", v.Status)
	}
}

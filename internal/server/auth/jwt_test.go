package auth

import (
	"errors"
	"testing"
	"time"

	"taskkeeper/internal/common"
	"taskkeeper/internal/server/models"
)

func testAccount() *models.Account {
	return &models.Account{Username: "alice", Role: models.RoleUser}
}

func newIssuer(lifetime time.Duration) *TokenIssuer {
	return NewTokenIssuer([]byte("super-secret"), "taskkeeper", "taskkeeper-clients", lifetime)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)

	tok, err := i.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := i.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "alice" || claims.Name != "alice" {
		t.Fatalf("subject mismatch: got %q/%q", claims.Subject, claims.Name)
	}
	if claims.Role != models.RoleUser {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	i := newIssuer(-1 * time.Second)

	tok, err := i.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := i.Verify(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	tok, err := newIssuer(time.Hour).Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewTokenIssuer([]byte("different-secret"), "taskkeeper", "taskkeeper-clients", time.Hour)
	if _, err := other.Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	t.Parallel()

	tok, err := newIssuer(time.Hour).Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	badIssuer := NewTokenIssuer([]byte("super-secret"), "someone-else", "taskkeeper-clients", time.Hour)
	if _, err := badIssuer.Verify(tok); err == nil {
		t.Fatalf("expected error for wrong issuer, got nil")
	}

	badAudience := NewTokenIssuer([]byte("super-secret"), "taskkeeper", "other-clients", time.Hour)
	if _, err := badAudience.Verify(tok); err == nil {
		t.Fatalf("expected error for wrong audience, got nil")
	}
}

func TestVerify_EmptyAndMalformed(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)

	if _, err := i.Verify(""); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := i.Verify("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestIssue_MissingConfiguration(t *testing.T) {
	t.Parallel()

	cases := []*TokenIssuer{
		NewTokenIssuer(nil, "taskkeeper", "taskkeeper-clients", time.Hour),
		NewTokenIssuer([]byte("k"), "", "taskkeeper-clients", time.Hour),
		NewTokenIssuer([]byte("k"), "taskkeeper", "", time.Hour),
	}
	for _, i := range cases {
		if _, err := i.Issue(testAccount()); !errors.Is(err, common.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
	}
}

func TestIssue_IncompleteAccount(t *testing.T) {
	t.Parallel()

	i := newIssuer(time.Hour)

	cases := []*models.Account{
		nil,
		{Username: "", Role: models.RoleUser},
		{Username: "alice", Role: ""},
	}
	for _, a := range cases {
		if _, err := i.Issue(a); !errors.Is(err, common.ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration for account %+v, got %v", a, err)
		}
	}
}

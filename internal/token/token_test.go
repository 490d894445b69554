package token

import (
	"strings"
	"testing"
	"time"

	"fintrack/internal/testutil"
)

func newTestService(t *testing.T, lifetime time.Duration) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Secret:    "test-secret",
		Algorithm: "HS256",
		Lifetime:  lifetime,
	})
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("valid_algorithms", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			_, err := NewService(Config{Secret: "s", Algorithm: alg, Lifetime: time.Hour})
			if err != nil {
				t.Errorf("expected %s to be accepted, got %v", alg, err)
			}
		}
	})

	t.Run("unknown_algorithm", func(t *testing.T) {
		if _, err := NewService(Config{Secret: "s", Algorithm: "HS1024", Lifetime: time.Hour}); err == nil {
			t.Error("expected error for unknown algorithm")
		}
	})

	t.Run("non_hmac_algorithm", func(t *testing.T) {
		if _, err := NewService(Config{Secret: "s", Algorithm: "RS256", Lifetime: time.Hour}); err == nil {
			t.Error("expected error for non-HMAC algorithm")
		}
	})

	t.Run("empty_secret", func(t *testing.T) {
		if _, err := NewService(Config{Secret: "", Algorithm: "HS256", Lifetime: time.Hour}); err == nil {
			t.Error("expected error for empty secret")
		}
	})

	t.Run("non_positive_lifetime", func(t *testing.T) {
		if _, err := NewService(Config{Secret: "s", Algorithm: "HS256", Lifetime: 0}); err == nil {
			t.Error("expected error for zero lifetime")
		}
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, userID := range []uint{1, 42, 99999} {
		tokenString, err := svc.Issue(userID)
		testutil.AssertNoError(t, err)
		if tokenString == "" {
			t.Fatal("expected non-empty token")
		}

		got, err := svc.Verify(tokenString)
		testutil.AssertNoError(t, err)
		if got != userID {
			t.Errorf("expected user ID %d, got %d", userID, got)
		}
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := newTestService(t, time.Millisecond)

	tokenString, err := svc.Issue(7)
	testutil.AssertNoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(tokenString)
	testutil.AssertAppError(t, err, "INVALID_TOKEN")
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	svc := newTestService(t, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.Verify("")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("tampered_signature", func(t *testing.T) {
		tokenString, err := svc.Issue(3)
		testutil.AssertNoError(t, err)

		parts := strings.Split(tokenString, ".")
		if len(parts) != 3 {
			t.Fatalf("expected 3 token segments, got %d", len(parts))
		}
		tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

		_, err = svc.Verify(tampered)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := NewService(Config{Secret: "other-secret", Algorithm: "HS256", Lifetime: time.Hour})
		testutil.AssertNoError(t, err)

		tokenString, err := other.Issue(3)
		testutil.AssertNoError(t, err)

		_, err = svc.Verify(tokenString)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})
}

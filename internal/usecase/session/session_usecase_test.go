package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ComputerScienceAddict/Hi-Hungry/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCreateAndValidateRoundTrip(t *testing.T) {
	uc := NewUseCase(testSecret, 30)

	resp, err := uc.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Token == "" || resp.SessionID == "" {
		t.Fatalf("incomplete session response: %+v", resp)
	}
	if until := time.Until(resp.ExpiresAt); until < 29*24*time.Hour {
		t.Errorf("expiry too soon: %v", until)
	}

	sid, err := uc.Validate(resp.Token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if sid != resp.SessionID {
		t.Errorf("Validate returned sid %q, want %q", sid, resp.SessionID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	uc := NewUseCase(testSecret, 30)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := uc.Validate(token); !errors.Is(err, domain.ErrInvalidSession) {
			t.Errorf("Validate(%q) error = %v, want ErrInvalidSession", token, err)
		}
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewUseCase(testSecret, 30)
	verifier := NewUseCase("another-secret-that-is-long-enough", 30)

	resp, err := issuer.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := verifier.Validate(resp.Token); !errors.Is(err, domain.ErrInvalidSession) {
		t.Errorf("token signed with a different secret must be rejected, got %v", err)
	}
}

func TestNewUseCaseDefaultsExpiry(t *testing.T) {
	uc := NewUseCase(testSecret, 0)
	if uc.expiryDay != 30 {
		t.Errorf("expiryDay = %d, want default 30", uc.expiryDay)
	}
}

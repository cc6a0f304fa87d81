package application

import (
	"errors"
	"testing"
	"time"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager(time.Minute)

	s := m.Create("001")
	if s.Token == "" {
		t.Fatal("empty session token")
	}

	number, err := m.Resolve(s.Token)
	if err != nil || number != "001" {
		t.Fatalf("Resolve=%q,%v want 001", number, err)
	}

	m.Delete(s.Token)
	if _, err := m.Resolve(s.Token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired after delete, got %v", err)
	}

	// 重复注销静默成功
	m.Delete(s.Token)
}

func TestSessionExpiry(t *testing.T) {
	m := NewSessionManager(time.Nanosecond)

	s := m.Create("001")
	time.Sleep(time.Millisecond)

	if _, err := m.Resolve(s.Token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewSessionManager(time.Minute)

	s1 := m.Create("001")
	s2 := m.Create("002")
	if s1.Token == s2.Token {
		t.Fatal("session tokens must be unique")
	}

	m.Delete(s1.Token)
	if number, err := m.Resolve(s2.Token); err != nil || number != "002" {
		t.Fatalf("second session broken: %q,%v", number, err)
	}
}

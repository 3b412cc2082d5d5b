package service

import "testing"

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager()

	token := m.Issue("client-1")
	if token == "" {
		t.Fatal("empty token")
	}

	clientID, ok := m.Resolve(token)
	if !ok || clientID != "client-1" {
		t.Fatalf("Resolve = %q, %v, want client-1, true", clientID, ok)
	}

	m.Revoke(token)
	if _, ok := m.Resolve(token); ok {
		t.Error("token still resolves after revoke")
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	m := NewSessionManager()

	t1 := m.Issue("client-1")
	t2 := m.Issue("client-1")
	if t1 == t2 {
		t.Error("two sessions share one token")
	}
	if _, ok := m.Resolve("not-a-token"); ok {
		t.Error("unknown token resolves")
	}
}

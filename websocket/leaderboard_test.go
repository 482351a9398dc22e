package websocket

import "testing"

func TestMatchScope(t *testing.T) {
	if got := MatchScope("match123"); got != "match:match123" {
		t.Errorf("MatchScope(match123) = %q, want %q", got, "match:match123")
	}
}

func TestRegisterUnregisterLeaderboardClient(t *testing.T) {
	before := GetLeaderboardClientsCount()

	client := &LeaderboardClient{Scope: ScopeGlobal}
	RegisterLeaderboardClient(client)
	if got := GetLeaderboardClientsCount(); got != before+1 {
		t.Errorf("after register count = %d, want %d", got, before+1)
	}

	UnregisterLeaderboardClient(client)
	if got := GetLeaderboardClientsCount(); got != before {
		t.Errorf("after unregister count = %d, want %d", got, before)
	}

	// Unregistering twice must be a no-op.
	UnregisterLeaderboardClient(client)
	if got := GetLeaderboardClientsCount(); got != before {
		t.Errorf("after double unregister count = %d, want %d", got, before)
	}
}

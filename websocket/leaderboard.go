package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Leaderboard subscription scopes. Match subscriptions use "match:<matchId>".
const (
	ScopeGlobal = "global"
	ScopeWeekly = "weekly"
)

// MatchScope builds the subscription scope for one match's leaderboard.
func MatchScope(matchID string) string {
	return "match:" + matchID
}

// LeaderboardClient is one subscriber to a leaderboard scope.
type LeaderboardClient struct {
	Conn    *websocket.Conn
	Scope   string
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection
func (lc *LeaderboardClient) SafeWriteJSON(v interface{}) error {
	lc.writeMu.Lock()
	defer lc.writeMu.Unlock()
	return lc.Conn.WriteJSON(v)
}

var (
	leaderboardClients = make(map[*LeaderboardClient]bool)
	leaderboardMutex   sync.RWMutex
)

// RegisterLeaderboardClient adds a subscriber for a scope
func RegisterLeaderboardClient(client *LeaderboardClient) {
	leaderboardMutex.Lock()
	defer leaderboardMutex.Unlock()
	leaderboardClients[client] = true
	log.Printf("Leaderboard client registered for %s. Total clients: %d", client.Scope, len(leaderboardClients))
}

// UnregisterLeaderboardClient removes a subscriber and closes its connection
func UnregisterLeaderboardClient(client *LeaderboardClient) {
	leaderboardMutex.Lock()
	defer leaderboardMutex.Unlock()
	if _, ok := leaderboardClients[client]; !ok {
		return
	}
	delete(leaderboardClients, client)
	if client.Conn != nil {
		client.Conn.Close()
	}
	log.Printf("Leaderboard client unregistered from %s. Total clients: %d", client.Scope, len(leaderboardClients))
}

// BroadcastLeaderboard sends a full materialized snapshot to every subscriber
// of the scope. Each message is a complete view, not a delta, so subscribers
// never need to reorder or merge.
func BroadcastLeaderboard(scope string, entries interface{}) {
	leaderboardMutex.RLock()
	defer leaderboardMutex.RUnlock()

	message := map[string]interface{}{
		"type":      "leaderboard_snapshot",
		"scope":     scope,
		"entries":   entries,
		"timestamp": time.Now(),
	}

	sent := 0
	for client := range leaderboardClients {
		if client.Scope != scope {
			continue
		}
		if err := client.SafeWriteJSON(message); err != nil {
			log.Printf("Error broadcasting leaderboard snapshot: %v", err)
			go UnregisterLeaderboardClient(client)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("Broadcasted %s leaderboard snapshot to %d clients", scope, sent)
	}
}

// GetLeaderboardClientsCount returns the number of connected subscribers
func GetLeaderboardClientsCount() int {
	leaderboardMutex.RLock()
	defer leaderboardMutex.RUnlock()
	return len(leaderboardClients)
}

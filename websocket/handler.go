package websocket

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"crickpick/services"
	"crickpick/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LeaderboardHandler upgrades the connection and streams leaderboard
// snapshots for the requested scope until the client disconnects. Scopes:
// ?scope=global, ?scope=weekly, or ?scope=match&matchId=<id>.
func LeaderboardHandler(c *gin.Context) {
	var tokenString string
	authz := c.GetHeader("Authorization")
	if authz != "" {
		tokenParts := strings.Split(authz, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			tokenString = tokenParts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
		return
	}

	if _, err := utils.ParseJWTToken(tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	scope := c.Query("scope")
	switch scope {
	case ScopeGlobal, ScopeWeekly:
	case "match":
		matchID := c.Query("matchId")
		if matchID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "matchId is required for match scope"})
			return
		}
		scope = MatchScope(matchID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &LeaderboardClient{
		Conn:  conn,
		Scope: scope,
	}
	RegisterLeaderboardClient(client)
	defer UnregisterLeaderboardClient(client)

	// First message is the current snapshot so the client does not have to
	// wait for the next evaluation to render something.
	if snapshot, err := fetchSnapshot(scope); err != nil {
		log.Printf("Failed to fetch initial %s snapshot: %v", scope, err)
	} else {
		client.SafeWriteJSON(map[string]interface{}{
			"type":      "leaderboard_snapshot",
			"scope":     scope,
			"entries":   snapshot,
			"timestamp": time.Now(),
		})
	}

	// Read loop exists only to notice the close and answer pings.
	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Leaderboard WebSocket error: %v", err)
			}
			break
		}

		if messageType == websocket.PingMessage {
			if err := conn.WriteMessage(websocket.PongMessage, nil); err != nil {
				log.Printf("Error writing pong: %v", err)
				break
			}
		}
	}
}

func fetchSnapshot(scope string) (interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch {
	case scope == ScopeGlobal:
		return services.FetchGlobalLeaderboard(ctx, 100)
	case scope == ScopeWeekly:
		return services.FetchWeeklyLeaderboard(ctx, 100)
	default:
		return services.FetchMatchLeaderboard(ctx, strings.TrimPrefix(scope, "match:"))
	}
}

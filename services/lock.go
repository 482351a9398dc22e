package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// ErrEvaluationInProgress is returned when another evaluation or reset holds
// the lease for the same match.
var ErrEvaluationInProgress = errors.New("an evaluation or reset is already running for this match")

// leaseTTL bounds how long a crashed pass can block a match before the lease
// expires on its own.
const leaseTTL = 2 * time.Minute

// releaseScript deletes the lease only if the caller still owns it, so a
// slow pass cannot drop a lease that has already expired and been re-acquired.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// InitMatchLock initializes the Redis client backing per-match leases
func InitMatchLock(addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	redisClient = client
	return nil
}

func leaseKey(matchID string) string {
	return "evaluation-lease:" + matchID
}

// acquireMatchLease takes the per-match lease, returning a token the caller
// must present to release it.
func acquireMatchLease(ctx context.Context, matchID string) (string, error) {
	if redisClient == nil {
		return "", errors.New("match lock not initialized")
	}

	token := uuid.NewString()
	ok, err := redisClient.SetNX(ctx, leaseKey(matchID), token, leaseTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire evaluation lease: %w", err)
	}
	if !ok {
		return "", ErrEvaluationInProgress
	}
	return token, nil
}

// releaseMatchLease frees the lease if the token still owns it.
func releaseMatchLease(ctx context.Context, matchID, token string) error {
	if redisClient == nil {
		return nil
	}
	return releaseScript.Run(ctx, redisClient, []string{leaseKey(matchID)}, token).Err()
}

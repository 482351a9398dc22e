package services

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	if err := InitMatchLock(mr.Addr(), "", 0); err != nil {
		t.Fatalf("InitMatchLock: %v", err)
	}
}

func TestMatchLeaseExcludesConcurrentPasses(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	token, err := acquireMatchLease(ctx, "match1")
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	// A second pass on the same match must be rejected while the lease holds.
	if _, err := acquireMatchLease(ctx, "match1"); !errors.Is(err, ErrEvaluationInProgress) {
		t.Errorf("second acquire: got %v, want ErrEvaluationInProgress", err)
	}

	// A different match is unaffected.
	otherToken, err := acquireMatchLease(ctx, "match2")
	if err != nil {
		t.Errorf("acquire on other match failed: %v", err)
	}
	_ = releaseMatchLease(ctx, "match2", otherToken)

	if err := releaseMatchLease(ctx, "match1", token); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if _, err := acquireMatchLease(ctx, "match1"); err != nil {
		t.Errorf("acquire after release failed: %v", err)
	}
}

func TestMatchLeaseReleaseRequiresToken(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	token, err := acquireMatchLease(ctx, "match1")
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	// A stale or foreign token must not drop the live lease.
	if err := releaseMatchLease(ctx, "match1", "not-the-token"); err != nil {
		t.Fatalf("release with wrong token errored: %v", err)
	}
	if _, err := acquireMatchLease(ctx, "match1"); !errors.Is(err, ErrEvaluationInProgress) {
		t.Errorf("lease should still be held after mismatched release, got %v", err)
	}

	if err := releaseMatchLease(ctx, "match1", token); err != nil {
		t.Fatalf("release with owning token errored: %v", err)
	}
}

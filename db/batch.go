package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// MaxBatchOps is the maximum number of writes committed per bulk call.
// Larger passes are chunked into sequential commits, so a very large
// evaluation is only atomic within each chunk. Re-running evaluation is the
// recovery path after a crash between chunks.
const MaxBatchOps = 500

// CommitChunked applies models to a collection in ordered chunks of at most
// MaxBatchOps writes each. It stops at the first failing chunk.
func CommitChunked(ctx context.Context, collection *mongo.Collection, writes []mongo.WriteModel) error {
	for start := 0; start < len(writes); start += MaxBatchOps {
		end := start + MaxBatchOps
		if end > len(writes) {
			end = len(writes)
		}
		if _, err := collection.BulkWrite(ctx, writes[start:end]); err != nil {
			return fmt.Errorf("bulk write failed at chunk starting %d: %w", start, err)
		}
	}
	return nil
}

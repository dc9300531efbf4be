package store_test

import (
	"context"
	"testing"

	"github.com/duskhq/queuectl/store"
)

func TestInitDBIdempotent(t *testing.T) {
	s := newTestStore(t)
	// newTestStore already called InitDB once; calling again must be a
	// no-op, not an error.
	if err := store.InitDB(context.Background(), s.DB()); err != nil {
		t.Fatalf("second InitDB call failed: %v", err)
	}
}

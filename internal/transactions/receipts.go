package transactions

import (
	"context"
	"fmt"
	"time"
)

const (
	receiptPrefix = "RCP"
	// receiptKeyTTL keeps yesterday's counter around long enough for clock
	// skew between app instances, then lets Redis reclaim it.
	receiptKeyTTL = 48 * time.Hour
)

type receiptStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	SequenceKey(parts ...string) string
}

// ReceiptGenerator issues globally unique, human-readable receipt numbers of
// the form RCP-YYYYMMDD-NNNNNN. The per-day sequence lives in Redis so
// concurrent creations across instances never collide.
type ReceiptGenerator struct {
	store receiptStore
}

// NewReceiptGenerator builds a generator backed by the given sequence store.
func NewReceiptGenerator(store receiptStore) (*ReceiptGenerator, error) {
	if store == nil {
		return nil, fmt.Errorf("receipt sequence store required")
	}
	return &ReceiptGenerator{store: store}, nil
}

// Next reserves the next receipt number for the given sale time.
func (g *ReceiptGenerator) Next(ctx context.Context, at time.Time) (string, error) {
	day := at.UTC().Format("20060102")
	key := g.store.SequenceKey("receipts", day)
	seq, err := g.store.IncrWithTTL(ctx, key, receiptKeyTTL)
	if err != nil {
		return "", fmt.Errorf("next receipt sequence: %w", err)
	}
	return fmt.Sprintf("%s-%s-%06d", receiptPrefix, day, seq), nil
}

package transactions

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/omc-erp/omc-backend/pkg/config"
	"github.com/omc-erp/omc-backend/pkg/redis"
)

func newTestReceiptGenerator(t *testing.T) *ReceiptGenerator {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := redis.New(context.Background(), config.RedisConfig{Address: server.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	gen, err := NewReceiptGenerator(client)
	require.NoError(t, err)
	return gen
}

func TestReceiptNumbersSequencePerDay(t *testing.T) {
	gen := newTestReceiptGenerator(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first, err := gen.Next(ctx, at)
	require.NoError(t, err)
	require.Equal(t, "RCP-20240315-000001", first)

	second, err := gen.Next(ctx, at)
	require.NoError(t, err)
	require.Equal(t, "RCP-20240315-000002", second)

	nextDay, err := gen.Next(ctx, at.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, "RCP-20240316-000001", nextDay)
}

func TestReceiptNumbersUniqueUnderConcurrency(t *testing.T) {
	gen := newTestReceiptGenerator(t)
	ctx := context.Background()
	at := time.Now().UTC()

	const workers = 20
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := gen.Next(ctx, at)
			if err != nil {
				results <- fmt.Sprintf("error: %v", err)
				return
			}
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for number := range results {
		require.False(t, seen[number], "duplicate receipt %q", number)
		seen[number] = true
	}
	require.Len(t, seen, workers)
}

func TestNewReceiptGeneratorRequiresStore(t *testing.T) {
	_, err := NewReceiptGenerator(nil)
	require.Error(t, err)
}

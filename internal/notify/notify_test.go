package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePushPop(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Push(ctx, "sid", Error("gagal"), Success("ok")))
	got, err := s.Pop(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []Notification{Error("gagal"), Success("ok")}, got)

	got, err = s.Pop(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreIgnoresEmptySID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Push(ctx, "", Error("x")))
	got, _ := s.Pop(ctx, "")
	assert.Empty(t, got)
}

func TestMemoryStoreKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i := 0; i < maxPerSession+5; i++ {
		require.NoError(t, s.Push(ctx, "sid", Success(fmt.Sprint(i))))
	}
	got, _ := s.Pop(ctx, "sid")
	require.Len(t, got, maxPerSession)
	assert.Equal(t, "5", got[0].Message)
	assert.Equal(t, fmt.Sprint(maxPerSession+4), got[len(got)-1].Message)
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Push(ctx, "gone", Error("lama")))
	require.NoError(t, s.Push(ctx, "late", Error("terlambat")))

	now = now.Add(defaultTTL + time.Second)
	require.NoError(t, s.Push(ctx, "fresh", Success("baru")))

	s.mu.Lock()
	_, goneKept := s.pending["gone"]
	size := len(s.pending)
	s.mu.Unlock()
	assert.False(t, goneKept)
	assert.Equal(t, 1, size)

	got, err := s.Pop(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, []Notification{Success("baru")}, got)
}

func TestMemoryStorePopIgnoresExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.TTL = time.Minute
	s.now = func() time.Time { return now }

	require.NoError(t, s.Push(ctx, "sid", Error("x")))
	now = now.Add(2 * time.Minute)
	got, err := s.Pop(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, got)
}

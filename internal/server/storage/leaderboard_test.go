package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboard(t *testing.T) *LeaderboardManager {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboardManager(client)
}

func TestRecordGameResult(t *testing.T) {
	lm := newTestLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Ivan", true))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Ivan", false))
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Ivan", true))

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.InDelta(t, 2.0/3.0, stats.WinRate(), 1e-9)
	assert.NotZero(t, stats.CreatedAt)
}

func TestGetPlayerStatsUnknown(t *testing.T) {
	lm := newTestLeaderboard(t)

	stats, err := lm.GetPlayerStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, stats)

	rank, err := lm.GetRank(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, rank)
}

func TestLeaderboardOrdering(t *testing.T) {
	lm := newTestLeaderboard(t)
	ctx := context.Background()

	// p2 wins twice, p1 once, p3 never
	require.NoError(t, lm.RecordGameResult(ctx, "p1", "Ivan", true))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Maria", true))
	require.NoError(t, lm.RecordGameResult(ctx, "p2", "Maria", true))
	require.NoError(t, lm.RecordGameResult(ctx, "p3", "Georgi", false))

	entries, err := lm.GetLeaderboard(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[0].Wins)
	assert.Equal(t, "p1", entries[1].PlayerID)
	assert.Equal(t, "p3", entries[2].PlayerID)

	rank, err := lm.GetRank(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	// Pagination
	page, err := lm.GetLeaderboard(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "p1", page[0].PlayerID)
	assert.Equal(t, 2, page[0].Rank)
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	playerStatsKey = "player:stats:"
	leaderboardKey = "leaderboard:wins"
)

// PlayerStats is a player's cumulative record across finished games. The
// authoritative game state never touches Redis; only results land here.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalGames int `json:"total_games"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// WinRate returns the player's win fraction.
func (s *PlayerStats) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames)
}

// LeaderboardEntry is one leaderboard row.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
	Games      int    `json:"games"`
}

// LeaderboardManager keeps per-player stats in Redis, ranked by wins.
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager wraps a Redis client.
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// GetPlayerStats loads a player's record, or nil when none exists.
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	data, err := lm.redis.Get(ctx, playerStatsKey+playerID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats stores a player's record and refreshes the ranking.
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if err := lm.redis.Set(ctx, playerStatsKey+stats.PlayerID, data, 0).Err(); err != nil {
		return err
	}
	return lm.redis.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(stats.Wins),
		Member: stats.PlayerID,
	}).Err()
}

// RecordGameResult appends one finished game to a player's record.
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, playerID, playerName string, won bool) error {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:  playerID,
			CreatedAt: time.Now().Unix(),
		}
	}

	stats.PlayerName = playerName // may have changed
	stats.TotalGames++
	stats.LastPlayedAt = time.Now().Unix()
	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}

	return lm.SavePlayerStats(ctx, stats)
}

// GetRank returns a player's 1-based leaderboard position, 0 when unranked.
func (lm *LeaderboardManager) GetRank(ctx context.Context, playerID string) (int, error) {
	rank, err := lm.redis.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return int(rank) + 1, nil
}

// GetLeaderboard returns a slice of the ranking, best first.
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, offset, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	ids, err := lm.redis.ZRevRange(ctx, leaderboardKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(ids))
	for i, id := range ids {
		stats, err := lm.GetPlayerStats(ctx, id)
		if err != nil || stats == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   stats.PlayerID,
			PlayerName: stats.PlayerName,
			Wins:       stats.Wins,
			Games:      stats.TotalGames,
		})
	}
	return entries, nil
}

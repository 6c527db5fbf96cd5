package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("snake")
	require.True(t, ok)
	assert.Equal(t, "snake", p.GameID)
	assert.Equal(t, int64(10), p.BaseReward)
	assert.Equal(t, 0.1, p.ScoreMultiplier)

	_, ok = Lookup("chess")
	assert.False(t, ok)
}

func TestGames(t *testing.T) {
	games := Games()
	assert.Len(t, games, 6)

	ids := make(map[string]bool, len(games))
	for _, g := range games {
		ids[g.GameID] = true
	}
	for _, want := range []string{"snake", "space-invaders", "tetris", "pong", "breakout", "pacman"} {
		assert.True(t, ids[want], "missing game %s", want)
	}
}

func TestValidateScore(t *testing.T) {
	tests := []struct {
		name   string
		gameID string
		score  int64
		want   bool
	}{
		{"zero score", "snake", 0, true},
		{"normal score", "snake", 200, true},
		{"at max", "snake", 10000, true},
		{"above max", "snake", 10001, false},
		{"negative", "snake", -1, false},
		{"pong tiny max", "pong", 5, true},
		{"pong above max", "pong", 6, false},
		{"unknown game", "chess", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateScore(tt.gameID, tt.score))
		})
	}
}

func TestComputeReward(t *testing.T) {
	snake, _ := Lookup("snake")
	tetris, _ := Lookup("tetris")
	pong, _ := Lookup("pong")

	tests := []struct {
		name   string
		policy RewardPolicy
		score  int64
		want   int64
	}{
		{"snake zero score gives base", snake, 0, 10},
		{"snake mid score", snake, 200, 30},
		{"fractional result floors", snake, 5, 10}, // 10 + 0.5
		{"snake at max score clamps", snake, 10000, 500},
		{"tetris large score clamps", tetris, 100000, 500},
		{"pong max score", pong, 5, 7}, // 5 + 2.5 floored
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeReward(tt.policy, tt.score))
		})
	}
}

func TestComputeRewardDeterministic(t *testing.T) {
	p, _ := Lookup("breakout")
	first := ComputeReward(p, 1234)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeReward(p, 1234))
	}
}

package policy

import "math"

// RewardPolicy is the fixed per-game reward configuration. Loaded at process
// start, read-only afterwards.
type RewardPolicy struct {
	GameID           string  `json:"game_id"`
	BaseReward       int64   `json:"base_reward"`
	ScoreMultiplier  float64 `json:"score_multiplier"`
	MaxReward        int64   `json:"max_reward"`
	MaxAcceptedScore int64   `json:"max_accepted_score"`
}

var gameRewards = map[string]RewardPolicy{
	"snake":          {GameID: "snake", BaseReward: 10, ScoreMultiplier: 0.1, MaxReward: 500, MaxAcceptedScore: 10000},
	"space-invaders": {GameID: "space-invaders", BaseReward: 15, ScoreMultiplier: 0.15, MaxReward: 500, MaxAcceptedScore: 50000},
	"tetris":         {GameID: "tetris", BaseReward: 20, ScoreMultiplier: 0.2, MaxReward: 500, MaxAcceptedScore: 100000},
	"pong":           {GameID: "pong", BaseReward: 5, ScoreMultiplier: 0.5, MaxReward: 500, MaxAcceptedScore: 5},
	"breakout":       {GameID: "breakout", BaseReward: 15, ScoreMultiplier: 0.15, MaxReward: 500, MaxAcceptedScore: 20000},
	"pacman":         {GameID: "pacman", BaseReward: 20, ScoreMultiplier: 0.2, MaxReward: 500, MaxAcceptedScore: 50000},
}

// Lookup returns the reward policy for a game.
func Lookup(gameID string) (RewardPolicy, bool) {
	p, ok := gameRewards[gameID]
	return p, ok
}

// Games returns all reward policies, for the public game listing.
func Games() []RewardPolicy {
	out := make([]RewardPolicy, 0, len(gameRewards))
	for _, p := range gameRewards {
		out = append(out, p)
	}
	return out
}

// ValidateScore reports whether a score submission is acceptable for a game:
// non-negative and within the game's maximum accepted score. Unknown games are
// rejected. Pure; exposed standalone for client-side pre-checks.
func ValidateScore(gameID string, score int64) bool {
	p, ok := gameRewards[gameID]
	if !ok {
		return false
	}
	return score >= 0 && score <= p.MaxAcceptedScore
}

// ComputeReward calculates the coin reward for a validated score:
// floor(base + score*multiplier), clamped to [0, MaxReward].
// Deterministic and pure given the policy and score.
func ComputeReward(p RewardPolicy, score int64) int64 {
	reward := int64(math.Floor(float64(p.BaseReward) + float64(score)*p.ScoreMultiplier))
	if reward > p.MaxReward {
		reward = p.MaxReward
	}
	if reward < 0 {
		reward = 0
	}
	return reward
}

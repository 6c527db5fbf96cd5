package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StartingCoins is credited to every account when it is first created.
const StartingCoins int64 = 1000

// Account represents an accounts row: one registered player and their coin balance.
type Account struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Coins            int64     `json:"coins"`
	TotalCoinsEarned int64     `json:"total_coins_earned"`
	GamesPlayed      int64     `json:"games_played"`
	CreatedAt        time.Time `json:"created_at"`
	LastLoginAt      time.Time `json:"last_login_at"`
}

// AuthUser holds credentials from auth_users.
type AuthUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UsernameFromEmail derives the display name shown on leaderboards: the local
// part of the email address.
func UsernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

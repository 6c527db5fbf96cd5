package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixelarcade/platform/internal/domain"
)

type favoriteRepo struct{}

// NewFavoriteRepository returns a pgx-backed FavoriteRepository.
func NewFavoriteRepository() FavoriteRepository {
	return &favoriteRepo{}
}

func (r *favoriteRepo) ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID) ([]domain.Favorite, error) {
	rows, err := db.Query(ctx, `
		SELECT account_id, game_id, title, category, added_at
		FROM favorites
		WHERE account_id = $1
		ORDER BY added_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favs []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.AccountID, &f.GameID, &f.Title, &f.Category, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

func (r *favoriteRepo) Upsert(ctx context.Context, db DBTX, fav *domain.Favorite) error {
	_, err := db.Exec(ctx, `
		INSERT INTO favorites (account_id, game_id, title, category, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, game_id) DO UPDATE SET
		  title = EXCLUDED.title,
		  category = EXCLUDED.category`,
		fav.AccountID, fav.GameID, fav.Title, fav.Category, fav.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepo) Delete(ctx context.Context, db DBTX, accountID uuid.UUID, gameID string) (bool, error) {
	tag, err := db.Exec(ctx, `
		DELETE FROM favorites WHERE account_id = $1 AND game_id = $2`, accountID, gameID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

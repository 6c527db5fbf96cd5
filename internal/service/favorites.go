package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/repository"
)

// FavoritesService manages an account's favorite games list.
type FavoritesService struct {
	pool      *pgxpool.Pool
	favorites repository.FavoriteRepository
}

// NewFavoritesService creates a new FavoritesService.
func NewFavoritesService(pool *pgxpool.Pool, favorites repository.FavoriteRepository) *FavoritesService {
	return &FavoritesService{pool: pool, favorites: favorites}
}

// List returns the account's favorites, most recent first.
func (s *FavoritesService) List(ctx context.Context, accountID uuid.UUID) ([]domain.Favorite, error) {
	favs, err := s.favorites.ListByAccount(ctx, s.pool, accountID)
	if err != nil {
		return nil, domain.ErrInternal("list favorites", err)
	}
	return favs, nil
}

// Add pins a game to the account's favorites. Re-adding refreshes the title
// and category.
func (s *FavoritesService) Add(ctx context.Context, accountID uuid.UUID, gameID, title, category string) (*domain.Favorite, error) {
	if gameID == "" {
		return nil, domain.ErrValidation("game_id is required")
	}

	fav := &domain.Favorite{
		AccountID: accountID,
		GameID:    gameID,
		Title:     title,
		Category:  category,
		AddedAt:   time.Now(),
	}
	if err := s.favorites.Upsert(ctx, s.pool, fav); err != nil {
		return nil, domain.ErrInternal("add favorite", err)
	}
	return fav, nil
}

// Remove unpins a game from the account's favorites.
func (s *FavoritesService) Remove(ctx context.Context, accountID uuid.UUID, gameID string) error {
	removed, err := s.favorites.Delete(ctx, s.pool, accountID, gameID)
	if err != nil {
		return domain.ErrInternal("remove favorite", err)
	}
	if !removed {
		return domain.ErrNotFound("favorite", gameID)
	}
	return nil
}

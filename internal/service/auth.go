package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixelarcade/platform/internal/auth"
	"github.com/pixelarcade/platform/internal/domain"
	"github.com/pixelarcade/platform/internal/ledger"
	"github.com/pixelarcade/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles player registration and login.
type AuthService struct {
	pool     *pgxpool.Pool
	users    repository.AuthUserRepository
	accounts repository.AccountRepository
	outbox   repository.OutboxRepository
	engine   *ledger.Engine
	jwtMgr   *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.AuthUserRepository,
	accounts repository.AccountRepository,
	outbox repository.OutboxRepository,
	engine *ledger.Engine,
	jwtMgr *auth.JWTManager,
) *AuthService {
	return &AuthService{
		pool:     pool,
		users:    users,
		accounts: accounts,
		outbox:   outbox,
		engine:   engine,
		jwtMgr:   jwtMgr,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Coins     int64     `json:"coins"`
}

// Register creates the auth user and the coin account (with the starting
// balance) within a single transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	accountID := uuid.New()

	authUser := &domain.AuthUser{
		ID:           accountID,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, tx, authUser); err != nil {
		return nil, domain.ErrInternal("create auth user", err)
	}

	acct := &domain.Account{
		ID:       accountID,
		Email:    input.Email,
		Username: domain.UsernameFromEmail(input.Email),
		Coins:    domain.StartingCoins,
	}
	if err := s.accounts.Create(ctx, tx, acct); err != nil {
		return nil, domain.ErrInternal("create account", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewAccountCreatedEvent(acct)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(accountID, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:     token,
		AccountID: accountID,
		Email:     input.Email,
		Username:  acct.Username,
		Coins:     acct.Coins,
	}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a player, initializes the coin account if it is missing,
// and returns a JWT plus the current balance.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	coins, err := s.engine.Initialize(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:     token,
		AccountID: user.ID,
		Email:     user.Email,
		Username:  domain.UsernameFromEmail(user.Email),
		Coins:     coins,
	}, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/dberrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// AccountRepository handles login-account database operations
type AccountRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db, sb: statementBuilder()}
}

const accountColumns = "id, username, email, password, role_type, created_at"

func scanAccount(row pgx.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.Password, &account.Role, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateAccount inserts a new account
func (r *AccountRepository) CreateAccount(ctx context.Context, account *models.Account) (int64, error) {
	sql, args, err := r.sb.Insert("accounts").
		Columns("username", "email", "password", "role_type").
		Values(account.Username, account.Email, account.Password, account.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create account query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return 0, apperrors.ErrUsernameTaken
		}
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create account query")
		return 0, fmt.Errorf("error creating account: %w", err)
	}
	return id, nil
}

// GetAccountByEmail retrieves an account by email
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns).
		From("accounts").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	account, err := scanAccount(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning account row")
		return nil, fmt.Errorf("error getting account by email: %w", err)
	}
	return account, nil
}

// UsernameExists reports whether an account with the username exists
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"username": username})
}

// EmailExists reports whether an account with the email exists
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"email": email})
}

func (r *AccountRepository) exists(ctx context.Context, pred squirrel.Eq) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("accounts").
		Where(pred).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build account existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking account existence: %w", err)
	}
	return exists, nil
}

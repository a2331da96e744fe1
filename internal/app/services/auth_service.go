package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/auth"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

type accountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) (int64, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type studentByEmailGetter interface {
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
}

type instructorByEmailGetter interface {
	GetInstructorByEmail(ctx context.Context, email string) (*models.Instructor, error)
}

// AuthService handles registration and login
type AuthService struct {
	accounts    accountStore
	students    studentByEmailGetter
	instructors instructorByEmailGetter
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(accounts accountStore, students studentByEmailGetter, instructors instructorByEmailGetter, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		accounts:    accounts,
		students:    students,
		instructors: instructors,
		jwtService:  jwtService,
	}
}

// resolveRole maps a registration email to a role. Accounts can only be
// created for emails already provisioned as a student university email or an
// instructor email.
func (s *AuthService) resolveRole(ctx context.Context, email string) (models.RoleType, error) {
	if _, err := s.students.GetStudentByEmail(ctx, email); err == nil {
		return models.RoleStudent, nil
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return "", err
	}

	if _, err := s.instructors.GetInstructorByEmail(ctx, email); err == nil {
		return models.RoleInstructor, nil
	} else if !errors.Is(err, apperrors.ErrInstructorNotFound) {
		return "", err
	}

	return "", apperrors.ErrEmailNotProvisioned
}

// Register creates an account for a provisioned student or instructor email
// and returns a token pair so the caller lands on their dashboard directly.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	role, err := s.resolveRole(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if taken, err := s.accounts.UsernameExists(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.ErrUsernameTaken
	}
	if exists, err := s.accounts.EmailExists(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}
	account.ID, err = s.accounts.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("email", account.Email).Str("role", string(role)).Msg("Account registered")
	return s.issueTokens(account)
}

// Login verifies credentials and returns a token pair with the role claim
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *models.Account) (*dto.TokenResponse, error) {
	access, refresh, expiresIn, err := s.jwtService.GenerateTokenPair(account)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		RoleType:     string(account.Role),
	}, nil
}

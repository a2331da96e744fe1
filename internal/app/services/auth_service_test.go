package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/auth"
)

type fakeAccountStore struct {
	accounts map[string]*models.Account
	nextID   int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]*models.Account{}}
}

func (f *fakeAccountStore) CreateAccount(ctx context.Context, account *models.Account) (int64, error) {
	f.nextID++
	copied := *account
	copied.ID = f.nextID
	f.accounts[account.Email] = &copied
	return f.nextID, nil
}

func (f *fakeAccountStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	if a, ok := f.accounts[email]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAccountNotFound
}

func (f *fakeAccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.accounts[email]
	return ok, nil
}

func newAuthFixture() (*AuthService, *fakeAccountStore) {
	accounts := newFakeAccountStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub-test",
	})
	svc := NewAuthService(
		accounts,
		&fakeStudentLookup{byEmail: map[string]*models.Student{
			"COM1a2b@stu.uni.edu": {ID: 7, UniversityEmail: "COM1a2b@stu.uni.edu"},
		}},
		&fakeInstructorLookup{byEmail: map[string]*models.Instructor{
			"agrant@uni.edu": {ID: 3, Email: "agrant@uni.edu"},
		}},
		jwtService,
	)
	return svc, accounts
}

func TestRegisterResolvesRoleFromProvisionedEmail(t *testing.T) {
	svc, accounts := newAuthFixture()
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "COM1a2b@stu.uni.edu",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleStudent), tokens.RoleType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, models.RoleStudent, accounts.accounts["COM1a2b@stu.uni.edu"].Role)

	tokens, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "agrant",
		Email:    "agrant@uni.edu",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleInstructor), tokens.RoleType)
}

func TestRegisterRejectsUnprovisionedEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "nobody",
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotProvisioned)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "COM1a2b@stu.uni.edu",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "agrant@uni.edu",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "jdoe",
		Email:    "COM1a2b@stu.uni.edu",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "COM1a2b@stu.uni.edu", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleStudent), tokens.RoleType)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "COM1a2b@stu.uni.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@uni.edu", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

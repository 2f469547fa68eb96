package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/repository"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

type mockAuthRepo struct {
	users            map[string]*models.User
	refreshTokens    map[string]*models.RefreshToken
	revokedAll       []string
	lastLoginUpdated bool
	afterFind        func(token *models.RefreshToken)
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*models.User{}, refreshTokens: map[string]*models.RefreshToken{}}
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if _, err := m.FindByEmail(ctx, user.Email); err == nil {
		return repository.ErrDuplicateKey
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedAll = append(m.revokedAll, userID)
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	snapshot := *rt
	if m.afterFind != nil {
		m.afterFind(rt)
	}
	return &snapshot, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) (bool, error) {
	for _, rt := range m.refreshTokens {
		if rt.ID == id && !rt.Revoked {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
			return true, nil
		}
	}
	return false, nil
}

func newAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, NewValidator(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "ssis-api",
	})
}

func TestAuthSignupAlwaysCreatesUserRole(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo)

	info, err := svc.Signup(context.Background(), models.SignupRequest{Email: " Admin@Example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, info.Role)
	assert.Equal(t, "admin@example.com", info.Email)

	stored := repo.users[info.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))

	_, err = svc.Signup(context.Background(), models.SignupRequest{Email: "admin@example.com", Password: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrEmailTaken)
}

func TestAuthSignupValidation(t *testing.T) {
	svc := newAuthService(newMockAuthRepo())

	_, err := svc.Signup(context.Background(), models.SignupRequest{Email: "not-an-email", Password: "password123"})
	assert.Equal(t, "invalid_email", appErrors.FromError(err).Code)

	_, err = svc.Signup(context.Background(), models.SignupRequest{Email: "a@example.com", Password: "short"})
	assert.Equal(t, "invalid_password", appErrors.FromError(err).Code)
}

func TestAuthLoginAndValidate(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo)
	ctx := context.Background()
	_, err := svc.Signup(ctx, models.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := newAuthService(newMockAuthRepo())
	ctx := context.Background()
	_, err := svc.Signup(ctx, models.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthRefreshRotatesToken(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo)
	ctx := context.Background()
	_, err := svc.Signup(ctx, models.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.True(t, repo.refreshTokens[pair.RefreshToken].Revoked)

	_, err = svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthRefreshLosesToConcurrentRefresh(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo)
	ctx := context.Background()
	_, err := svc.Signup(ctx, models.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	issued := len(repo.refreshTokens)

	// Another request consumes the token after this one has read it as live.
	repo.afterFind = func(token *models.RefreshToken) {
		now := time.Now()
		token.Revoked = true
		token.RevokedAt = &now
	}

	next, err := svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.Nil(t, next)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Len(t, repo.refreshTokens, issued)
}

func TestAuthLogout(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newAuthService(repo)
	ctx := context.Background()
	info, err := svc.Signup(ctx, models.SignupRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, models.LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, info.ID, pair.RefreshToken))
	assert.True(t, repo.refreshTokens[pair.RefreshToken].Revoked)

	require.NoError(t, svc.Logout(ctx, info.ID, ""))
	assert.Equal(t, []string{info.ID}, repo.revokedAll)

	err = svc.Logout(ctx, "someone-else", pair.RefreshToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newAuthService(newMockAuthRepo())

	claims := &models.JWTClaims{UserID: "1", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "ssis-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

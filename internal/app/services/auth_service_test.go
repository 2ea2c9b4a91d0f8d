package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnrgconnect/backend/internal/app/models"
	"github.com/nnrgconnect/backend/internal/app/models/dto"
	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
	"github.com/nnrgconnect/backend/internal/pkg/auth"
	"github.com/nnrgconnect/backend/internal/session"
)

// fakeUserRepo is an in-memory IUserRepository with the same uniqueness
// guarantees the real storage layer enforces through indexes.
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return 0, apperrors.ErrDuplicateAccount
		}
		if existing.RoleType == models.RoleStudent && user.RoleType == models.RoleStudent &&
			existing.RollNumber != "" && existing.RollNumber == user.RollNumber {
			return 0, apperrors.ErrRollNumberExists
		}
	}
	clone := *user
	clone.ID = r.nextID
	clone.CreatedAt = time.Now()
	r.users[clone.ID] = &clone
	r.nextID++
	return clone.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *fakeUserRepo) ListByRoleAndStatus(ctx context.Context, role models.RoleType, status models.ApprovalStatus) ([]*models.User, error) {
	var out []*models.User
	for id := int64(1); id < r.nextID; id++ {
		user, ok := r.users[id]
		if ok && user.RoleType == role && user.ApprovalStatus == status {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateApprovalStatus(ctx context.Context, id int64, status models.ApprovalStatus) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	user.ApprovalStatus = status
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

// fakeTokenRepo is an in-memory ITokenRepository.
type fakeTokenRepo struct {
	tokens map[string]fakeToken
}

type fakeToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]fakeToken{}}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	r.tokens[token] = fakeToken{userID: userID, expiresAt: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	entry, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if entry.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if entry.expiresAt.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return entry.userID, entry.expiresAt, nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	entry, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	entry.revoked = true
	r.tokens[token] = entry
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for token, entry := range r.tokens {
		if entry.userID == userID {
			entry.revoked = true
			r.tokens[token] = entry
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo, *session.MemoryStore) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	sessions := session.NewMemoryStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	svc := NewAuthService(userRepo, tokenRepo, sessions, jwtService, zerolog.Nop())
	return svc, userRepo, tokenRepo, sessions
}

func registerStudent(t *testing.T, svc *AuthService, email, rollNumber string) *dto.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:      email,
		Password:   "secret123",
		Name:       "Test Student",
		RollNumber: rollNumber,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesPendingAccountWithoutSession(t *testing.T) {
	svc, userRepo, _, sessions := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")

	assert.Equal(t, "PENDING", resp.ApprovalStatus)

	user, err := userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.RoleType)
	assert.Equal(t, models.ApprovalPending, user.ApprovalStatus)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))

	// Registration must not leave a session anywhere.
	assert.Empty(t, sessions.Len())
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:      "STUDENT@nnrg.edu.in",
		Password:   "secret123",
		Name:       "Other Student",
		RollNumber: "197Z1A0502",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
}

func TestRegisterRejectsDuplicateRollNumber(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	registerStudent(t, svc, "first@nnrg.edu.in", "197Z1A0501")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:      "second@nnrg.edu.in",
		Password:   "secret123",
		Name:       "Other Student",
		RollNumber: "197Z1A0501",
	})
	assert.ErrorIs(t, err, apperrors.ErrRollNumberExists)
}

func TestRegisterRejectsMalformedRollNumbers(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	for _, rollNumber := range []string{"not-a-roll-number!!", "197Z1A05", "197Z1A050100", "x97Z1A0501", ""} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:      "student@nnrg.edu.in",
			Password:   "secret123",
			Name:       "Test Student",
			RollNumber: rollNumber,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRollNumber, "roll number %q", rollNumber)
	}

	// Nothing may be stored for a rejected registration.
	_, err := userRepo.GetByEmail(context.Background(), "student@nnrg.edu.in")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	for _, password := range []string{"short1", "lettersonly", "12345678"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:      "student@nnrg.edu.in",
			Password:   password,
			Name:       "Test Student",
			RollNumber: "197Z1A0501",
		})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "password %q", password)
	}
}

func TestLoginRejectsUnknownAccount(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "wrong-password1",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLoginGatesPendingAccountAndCarriesStatus(t *testing.T) {
	svc, _, _, sessions := newTestAuthService(t)

	registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotApproved)

	var notApproved *apperrors.NotApprovedError
	require.ErrorAs(t, err, &notApproved)
	assert.Equal(t, "PENDING", notApproved.Status)

	// The gate fires before any session is established.
	assert.Zero(t, sessions.Len())
}

func TestLoginGatesRejectedAccountAndCarriesStatus(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalRejected)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})

	var notApproved *apperrors.NotApprovedError
	require.ErrorAs(t, err, &notApproved)
	assert.Equal(t, "REJECTED", notApproved.Status)
}

func TestApproveThenLoginEstablishesSession(t *testing.T) {
	svc, userRepo, _, sessions := newTestAuthService(t)

	registered := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), registered.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "APPROVED", resp.Session.ApprovalStatus)
	assert.Equal(t, "197Z1A0501", resp.Session.RollNumber)

	sess, err := sessions.Get(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, sess.UserID)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Student@NNRG.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	assert.NoError(t, err)
}

func TestAdminBypassesApprovalGate(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	hash, err := auth.HashPassword("admin-pass1")
	require.NoError(t, err)
	_, err = userRepo.Create(context.Background(), &models.User{
		Email:          "admin@nnrg.edu.in",
		Password:       hash,
		Name:           "Admin",
		RoleType:       models.RoleAdmin,
		ApprovalStatus: models.ApprovalApproved,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@nnrg.edu.in",
		Password: "admin-pass1",
		DeviceID: "admin-device",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Session.RoleType)
}

func TestSecondLoginOverwritesDeviceSlot(t *testing.T) {
	svc, userRepo, _, sessions := newTestAuthService(t)

	first := registerStudent(t, svc, "first@nnrg.edu.in", "197Z1A0501")
	second := registerStudent(t, svc, "second@nnrg.edu.in", "197Z1A0502")
	for _, id := range []int64{first.UserID, second.UserID} {
		_, err := userRepo.UpdateApprovalStatus(context.Background(), id, models.ApprovalApproved)
		require.NoError(t, err)
	}

	for _, email := range []string{"first@nnrg.edu.in", "second@nnrg.edu.in"} {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    email,
			Password: "secret123",
			DeviceID: "shared-device",
		})
		require.NoError(t, err)
	}

	sess, err := sessions.Get(context.Background(), "shared-device")
	require.NoError(t, err)
	assert.Equal(t, second.UserID, sess.UserID)
	assert.Equal(t, 1, sessions.Len())
}

func TestLogoutClearsSlotAndIsIdempotent(t *testing.T) {
	svc, userRepo, _, sessions := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), &dto.LogoutRequest{
		DeviceID:     "device-1",
		RefreshToken: login.Token.RefreshToken,
	}))

	_, err = sessions.Get(context.Background(), "device-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Logging out an already-empty slot is fine.
	assert.NoError(t, svc.Logout(context.Background(), &dto.LogoutRequest{DeviceID: "device-1"}))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, userRepo, tokenRepo, _ := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), &dto.LogoutRequest{
		DeviceID:     "device-1",
		RefreshToken: login.Token.RefreshToken,
	}))

	_, _, err = tokenRepo.GetTokenByValue(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, userRepo, tokenRepo, _ := newTestAuthService(t)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err := userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Token.RefreshToken, refreshed.RefreshToken)

	// The old token is single-use.
	_, _, err = tokenRepo.GetTokenByValue(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svc.RefreshToken(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestCurrentSessionReflectsDeviceSlot(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	_, err := svc.CurrentSession(context.Background(), "device-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	resp := registerStudent(t, svc, "student@nnrg.edu.in", "197Z1A0501")
	_, err = userRepo.UpdateApprovalStatus(context.Background(), resp.UserID, models.ApprovalApproved)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@nnrg.edu.in",
		Password: "secret123",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	current, err := svc.CurrentSession(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, "student@nnrg.edu.in", current.Email)
}

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrack/api/pkg/auth"
	"github.com/shiptrack/api/pkg/logging"
	"github.com/shiptrack/api/pkg/repository/memory"
	"github.com/shiptrack/api/pkg/security/jwt"
	"github.com/shiptrack/api/pkg/security/password"
)

type fixture struct {
	svc    auth.AuthUseCase
	users  *memory.UserRepository
	tokens *jwt.Issuer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	hasher, err := password.NewBcryptHasher(password.MinCost)
	require.NoError(t, err)
	users := memory.NewStore().Users()
	tokens := jwt.NewIssuer("test-secret", "shiptrack", 7*24*time.Hour)
	return fixture{
		svc:    auth.NewAuthService(users, hasher, tokens, logging.Nop()),
		users:  users,
		tokens: tokens,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, "akshat", "password123")
	require.NoError(t, err)
	assert.Equal(t, "akshat", reg.User.Username)
	assert.NotEqual(t, uuid.Nil, reg.User.ID)
	assert.NotEqual(t, "password123", reg.User.PasswordHash)

	subject, err := f.tokens.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, subject)

	login, err := f.svc.Login(ctx, "akshat", "password123")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	subject, err = f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, subject)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "rahul", "password123")
	require.NoError(t, err)

	stored, err := f.users.GetByUsername(ctx, "rahul")
	require.NoError(t, err)
	assert.NotContains(t, stored.PasswordHash, "password123")
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "sanya", "password123")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "sanya", "another-password")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
	assert.Equal(t, 1, f.users.Count())

	_, err = f.svc.Register(ctx, "  sanya ", "another-password")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists, "usernames are trimmed")
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name, username, password string
	}{
		{"missing username", "", "password123"},
		{"blank username", "   ", "password123"},
		{"missing password", "akshat", ""},
		{"long username", strings.Repeat("u", 65), "password123"},
		{"long password", "akshat", strings.Repeat("p", 73)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tc.username, tc.password)
			assert.ErrorIs(t, err, auth.ErrValidation)
		})
	}
	assert.Equal(t, 0, f.users.Count())
}

func TestLogin_NonDisclosure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "akshat", "password123")
	require.NoError(t, err)

	_, wrongPassword := f.svc.Login(ctx, "akshat", "wrong-password")
	_, unknownUser := f.svc.Login(ctx, "nobody", "password123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, "akshat", "password123")
	require.NoError(t, err)

	u, err := f.svc.Profile(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "akshat", u.Username)

	_, err = f.svc.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

type brokenRepo struct{ err error }

func (b brokenRepo) Create(context.Context, auth.User) error { return b.err }
func (b brokenRepo) GetByUsername(context.Context, string) (auth.User, error) {
	return auth.User{}, b.err
}
func (b brokenRepo) GetByID(context.Context, uuid.UUID) (auth.User, error) {
	return auth.User{}, b.err
}

type stubHasher struct{}

func (stubHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (stubHasher) Verify(p, h string) bool       { return h == "hashed:"+p }

func TestStorageFailuresAreNotCredentialErrors(t *testing.T) {
	dbDown := errors.New("connection refused")
	svc := auth.NewAuthService(brokenRepo{err: dbDown}, stubHasher{},
		jwt.NewIssuer("k", "shiptrack", time.Hour), logging.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "akshat", "password123")
	assert.ErrorIs(t, err, dbDown)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Register(ctx, "akshat", "password123")
	assert.ErrorIs(t, err, dbDown)
}

// raceRepo simulates a concurrent registration winning between the
// pre-check and the insert.
type raceRepo struct{ brokenRepo }

func (raceRepo) GetByUsername(context.Context, string) (auth.User, error) {
	return auth.User{}, auth.ErrNotFound
}
func (raceRepo) Create(context.Context, auth.User) error { return auth.ErrUserAlreadyExists }

func TestRegister_StoreConstraintIsAuthoritative(t *testing.T) {
	svc := auth.NewAuthService(raceRepo{}, stubHasher{},
		jwt.NewIssuer("k", "shiptrack", time.Hour), logging.Nop())

	_, err := svc.Register(context.Background(), "akshat", "password123")
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

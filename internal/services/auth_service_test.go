package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/testutil"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewAuthService(
		repository.NewUserRepository(db),
		validation.NewTagEmailValidator(),
		BcryptHasher{Cost: bcrypt.MinCost},
	)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "Marta@Ascensores.ES",
		Name:     "  Marta  ",
		Password: testutil.TestPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Marta@ascensores.es", user.Email)
	assert.Equal(t, "Marta", user.Name)
	assert.NotEqual(t, testutil.TestPassword, user.PasswordHash)

	logged, err := svc.Login(ctx, LoginInput{Email: "Marta@ascensores.es", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestAuthService_RegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Name: "Ana", Password: testutil.TestPassword})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@EXAMPLE.com", Name: "Ana", Password: testutil.TestPassword})
	var vErr *validation.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, constants.MsgEmailTaken, vErr.Fields["email"])
}

func TestAuthService_RegisterAccumulatesErrors(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "bad", Name: "", Password: "abcdefgh1"})
	var vErr *validation.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 3)
	assert.Equal(t, constants.MsgInvalidEmail, vErr.Fields["email"])
	assert.Equal(t, constants.MsgRequired, vErr.Fields["username"])
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Name: "Ana", Password: testutil.TestPassword})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "a@example.com", Password: "Wrong1pass!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: testutil.TestPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "", Password: ""})
	var vErr *validation.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestAuthService_GetUserNotFound(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ValidateField(t *testing.T) {
	svc := newTestAuthService(t)

	res, err := svc.ValidateField(context.Background(), "password", "abcdefgh1")
	require.NoError(t, err)
	assert.Equal(t, []validation.PasswordFlag{validation.PasswordNoMixCase, validation.PasswordNoSpecial}, res.Flags)

	res, err = svc.ValidateField(context.Background(), "role", "admin")
	require.NoError(t, err)
	assert.Equal(t, constants.MsgInvalidField, res.Message)
}

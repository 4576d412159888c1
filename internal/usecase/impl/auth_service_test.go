package impl

import (
	"context"
	"testing"

	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/service"
	"clearpass/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(userRepo *fakeUserRepo, oauth *stubOAuthService) usecase.AuthUsecase {
	if oauth == nil {
		oauth = &stubOAuthService{}
	}

	return NewAuthService(AuthServiceParams{
		UserRepo:          userRepo,
		TokenService:      &stubTokenService{},
		GoogleAuthService: oauth,
		Logger:            newDiscardLogger(),
	})
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, usecase.RegisterUserInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.User.ID)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, "alice", out.User.Name, "display name comes from the email local part")
	assert.False(t, out.User.IsPremium)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, usecase.RegisterUserInput{Email: "dup@example.com", Password: "pw"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "bob@example.com", Password: "correct"})
	require.NoError(t, err)

	out, err := svc.Login(ctx, usecase.LoginInput{Email: "bob@example.com", Password: "correct"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "bob@example.com", out.User.Email)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "bob@example.com", Password: "correct"})
	require.NoError(t, err)

	// Wrong password and unknown email look identical to the caller
	_, err = svc.Login(ctx, usecase.LoginInput{Email: "bob@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "correct"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_GoogleCallbackNewUser(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := &stubOAuthService{user: &service.OAuthUser{
		ID:            "google-1",
		Email:         "fed@example.com",
		Name:          "Federated User",
		AvatarURL:     "http://img/avatar.jpg",
		EmailVerified: true,
	}}
	svc := newAuthService(repo, oauth)

	out, err := svc.GoogleCallback(context.Background(), usecase.GoogleCallbackInput{IDToken: "token"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "fed@example.com", out.User.Email)
	assert.Equal(t, "google-1", out.User.GoogleID)
	assert.Empty(t, out.User.Password, "federated accounts have no password")
}

func TestAuthService_GoogleCallbackExistingGoogleUser(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := &stubOAuthService{user: &service.OAuthUser{
		ID: "google-2", Email: "known@example.com", Name: "Known",
	}}
	svc := newAuthService(repo, oauth)
	ctx := context.Background()

	first, err := svc.GoogleCallback(ctx, usecase.GoogleCallbackInput{IDToken: "token"})
	require.NoError(t, err)

	second, err := svc.GoogleCallback(ctx, usecase.GoogleCallbackInput{IDToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID, "repeat sign-in resolves the same account")
}

func TestAuthService_GoogleCallbackLinksAccountByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := &stubOAuthService{user: &service.OAuthUser{
		ID: "google-3", Email: "linked@example.com", Name: "From Google", AvatarURL: "http://img/g.jpg",
	}}
	svc := newAuthService(repo, oauth)
	ctx := context.Background()

	registered, err := svc.Register(ctx, usecase.RegisterUserInput{
		Email: "linked@example.com", Password: "pw123",
	})
	require.NoError(t, err)

	out, err := svc.GoogleCallback(ctx, usecase.GoogleCallbackInput{IDToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, out.User.ID, "the password account is linked, not duplicated")
	assert.Equal(t, "google-3", out.User.GoogleID)
	assert.Equal(t, "linked", out.User.Name, "existing name is not overwritten")
	assert.Equal(t, "http://img/g.jpg", out.User.ProfilePictureURL, "missing picture is backfilled")

	// The linked account can still log in with its password
	_, err = svc.Login(ctx, usecase.LoginInput{Email: "linked@example.com", Password: "pw123"})
	assert.NoError(t, err)
}

func TestAuthService_GoogleCallbackInvalidToken(t *testing.T) {
	repo := newFakeUserRepo()
	oauth := &stubOAuthService{err: errors.New("bad signature")}
	svc := newAuthService(repo, oauth)

	_, err := svc.GoogleCallback(context.Background(), usecase.GoogleCallbackInput{IDToken: "junk"})
	assert.ErrorIs(t, err, domainerrors.ErrOAuthTokenInvalid)
}

func TestAuthService_GetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "p@example.com", Password: "pw"})
	require.NoError(t, err)

	user, err := svc.GetProfile(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "p@example.com", user.Email)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)

	name := "Updated Name"
	dni := "12345678"
	updated, err := svc.UpdateProfile(ctx, out.User.ID, usecase.UpdateProfileInput{
		Name: &name,
		DNI:  &dni,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "12345678", updated.DNI)

	_, err = svc.UpdateProfile(ctx, "missing", usecase.UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_UpdateProfileEmailConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "taken@example.com", Password: "pw"})
	require.NoError(t, err)
	second, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "free@example.com", Password: "pw"})
	require.NoError(t, err)

	taken := "taken@example.com"
	_, err = svc.UpdateProfile(ctx, second.User.ID, usecase.UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, nil)
	ctx := context.Background()

	out, err := svc.Register(ctx, usecase.RegisterUserInput{Email: "bye@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, out.User.ID))

	err = svc.DeleteAccount(ctx, out.User.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"clearpass/internal/domain/entity"
	domainerrors "clearpass/internal/domain/errors"
	"clearpass/internal/domain/repository"
	"clearpass/internal/domain/service"
	"clearpass/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo          repository.UserRepository
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Logger            *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:          params.UserRepo,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		logger:            params.Logger,
	}
}

// Register creates a new password-based account. The initial display name is
// derived from the local part of the email.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting registration", slog.String("email", input.Email))

	newUser := &entity.User{
		Email:    input.Email,
		Password: input.Password,
		Name:     nameFromEmail(input.Email),
	}

	created, err := srv.userRepo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			srv.logger.Warn("Registration rejected, email in use", slog.String("email", input.Email))

			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		srv.logger.Error("Failed to create user", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	srv.logger.Info("User registered", slog.String("userID", created.ID))

	return &usecase.RegisterOutput{User: created}, nil
}

// Login authenticates with email and password and issues a token pair. A
// missing account and a wrong password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmailAndPassword(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("invalid email or password")
		}

		return nil, errors.Wrap(err, "failed to authenticate user")
	}

	return srv.issueTokens(user)
}

// GoogleCallback signs a user in with a verified Google ID token. An
// existing account with the same email is linked to the Google identity;
// otherwise a new federated account is created.
func (srv *authService) GoogleCallback(ctx context.Context, input usecase.GoogleCallbackInput) (*usecase.LoginOutput, error) {
	srv.logger.Info("Handling Google callback")

	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("failed to verify Google ID token")
	}

	user, err := srv.findOrCreateGoogleUser(ctx, oauthUser)
	if err != nil {
		return nil, err
	}

	return srv.issueTokens(user)
}

func (srv *authService) findOrCreateGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*entity.User, error) {
	user, err := srv.userRepo.FindByGoogleID(ctx, oauthUser.ID)
	if err == nil {
		srv.logger.Info("Found existing Google user", slog.String("userID", user.ID))

		return srv.backfillGoogleProfile(ctx, user, oauthUser, nil)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by Google id")
	}

	// Link an existing password account that shares the email
	byEmail, err := srv.userRepo.FindByEmail(ctx, oauthUser.Email)
	if err == nil {
		srv.logger.Info("Linking Google identity to existing account",
			slog.String("userID", byEmail.ID))

		return srv.backfillGoogleProfile(ctx, byEmail, oauthUser, &oauthUser.ID)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	srv.logger.Info("Creating new user from Google identity")

	created, err := srv.userRepo.Create(ctx, &entity.User{
		Email:             oauthUser.Email,
		Name:              oauthUser.Name,
		ProfilePictureURL: oauthUser.AvatarURL,
		GoogleID:          oauthUser.ID,
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	return created, nil
}

// backfillGoogleProfile fills in the name and picture Google provides when
// the account has none, and optionally attaches the Google id. Nothing is
// written when there is nothing to change.
func (srv *authService) backfillGoogleProfile(ctx context.Context, user *entity.User, oauthUser *service.OAuthUser, googleID *string) (*entity.User, error) {
	patch := entity.UserPatch{GoogleID: googleID}
	changed := googleID != nil

	if user.Name == "" && oauthUser.Name != "" {
		patch.Name = &oauthUser.Name
		changed = true
	}
	if user.ProfilePictureURL == "" && oauthUser.AvatarURL != "" {
		patch.ProfilePictureURL = &oauthUser.AvatarURL
		changed = true
	}

	if !changed {
		return user, nil
	}

	updated, err := srv.userRepo.Update(ctx, user.ID, patch)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}

	return updated, nil
}

// GetProfile returns the account behind the given user id.
func (srv *authService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile applies the given changes to the user's account.
func (srv *authService) UpdateProfile(ctx context.Context, userID string, input usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating profile", slog.String("userID", userID))

	patch := entity.UserPatch{
		Email:             input.Email,
		Password:          input.Password,
		Name:              input.Name,
		PhoneNumber:       input.PhoneNumber,
		DNI:               input.DNI,
		ProfilePictureURL: input.ProfilePictureURL,
	}

	updated, err := srv.userRepo.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound.WrapMessage("user not found")
		case errors.Is(err, repository.ErrUserAlreadyExists):
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		default:
			return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
		}
	}

	return updated, nil
}

// DeleteAccount removes the user's account and its stored data.
func (srv *authService) DeleteAccount(ctx context.Context, userID string) error {
	srv.logger.Info("Deleting account", slog.String("userID", userID))

	removed, err := srv.userRepo.Delete(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}
	if !removed {
		return domainerrors.ErrUserNotFound.WrapMessage("user not found")
	}

	return nil
}

func (srv *authService) issueTokens(user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.IsPremium)
	if err != nil {
		srv.logger.Error("Failed to generate tokens", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.logger.Debug("User logged in", slog.String("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

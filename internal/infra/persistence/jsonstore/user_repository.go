package jsonstore

import (
	"context"
	"log/slog"
	"time"

	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"
	"clearpass/internal/domain/service"

	"github.com/pkg/errors"
)

const usersCollection = "users"

// UserRepositoryImpl stores users in the JSON store. Emails are encrypted at
// rest, so lookups by email decrypt and compare record by record.
type UserRepositoryImpl struct {
	store  *Store
	cipher service.FieldCipher
	hasher service.PasswordHasher
	logger *slog.Logger
}

// NewUserRepository creates a new user repository.
func NewUserRepository(
	store *Store,
	cipher service.FieldCipher,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) repository.UserRepository {
	return &UserRepositoryImpl{
		store:  store,
		cipher: cipher,
		hasher: hasher,
		logger: logger,
	}
}

// FindByID implements repository.UserRepository interface
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.User, error) {
	rec := r.store.GetByID(usersCollection, id)
	if rec == nil {
		return nil, repository.ErrUserNotFound
	}

	return r.toUser(rec), nil
}

// FindByEmail implements repository.UserRepository interface
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, rec := range r.store.GetAll(usersCollection) {
		stored, _ := rec["email"].(string)
		if stored == "" {
			continue
		}

		plain, ok := r.cipher.Decrypt(stored)
		if !ok {
			r.logger.Warn("Skipping user with undecryptable email",
				slog.Any("id", rec["id"]))
			continue
		}

		if plain == email {
			return r.toUser(rec), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// FindByEmailAndPassword implements repository.UserRepository interface
func (r *UserRepositoryImpl) FindByEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() || !r.hasher.Check(password, user.Password) {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

// FindByGoogleID implements repository.UserRepository interface
func (r *UserRepositoryImpl) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	matches := r.store.FindByAttribute(usersCollection, "google_id", googleID)
	if len(matches) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return r.toUser(matches[0]), nil
}

// Create implements repository.UserRepository interface. The password arrives
// in plaintext and is hashed here; the email is encrypted at persistence and
// the returned user carries the plaintext form.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		r.logger.Warn("Registration attempted with existing email")

		return nil, repository.ErrUserAlreadyExists
	}

	stored := *user
	if stored.Password != "" {
		hash, err := r.hasher.Hash(stored.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		stored.Password = hash
	}

	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	rec, err := r.toRecord(&stored)
	if err != nil {
		return nil, err
	}

	saved, err := r.store.SaveEntity(usersCollection, rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save user")
	}

	result := r.toUser(saved)
	r.logger.Info("User created", slog.String("id", result.ID))

	return result, nil
}

// Update implements repository.UserRepository interface. Email changes are
// checked for uniqueness against every other user; new passwords are hashed.
func (r *UserRepositoryImpl) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != current.Email {
		other, err := r.FindByEmail(ctx, *patch.Email)
		if err == nil && other.ID != id {
			return nil, repository.ErrUserAlreadyExists
		}
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		patch.Password = &hash
	}

	updated := current.Apply(patch, time.Now().UTC())

	rec, err := r.toRecord(&updated)
	if err != nil {
		return nil, err
	}

	saved, err := r.store.SaveEntity(usersCollection, rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save user")
	}

	result := r.toUser(saved)
	r.logger.Info("User updated", slog.String("id", result.ID))

	return result, nil
}

// Delete implements repository.UserRepository interface
func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.DeleteEntity(usersCollection, id)
}

// toRecord converts a user to its stored form, encrypting the email.
func (r *UserRepositoryImpl) toRecord(user *entity.User) (Record, error) {
	email, err := r.cipher.Encrypt(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt email")
	}

	return Record{
		"id":                  user.ID,
		"email":               email,
		"password":            user.Password,
		"name":                user.Name,
		"profile_picture_url": user.ProfilePictureURL,
		"google_id":           user.GoogleID,
		"phone_number":        user.PhoneNumber,
		"dni":                 user.DNI,
		"is_premium":          user.IsPremium,
		"created_at":          user.CreatedAt.Format(time.RFC3339),
		"updated_at":          user.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// toUser converts a stored record back to a user. An email that no longer
// decrypts degrades to empty on that record instead of failing the call.
func (r *UserRepositoryImpl) toUser(rec Record) *entity.User {
	email, _ := rec["email"].(string)
	if email != "" {
		plain, ok := r.cipher.Decrypt(email)
		if !ok {
			r.logger.Warn("Failed to decrypt stored email", slog.Any("id", rec["id"]))
			email = ""
		} else {
			email = plain
		}
	}

	return &entity.User{
		ID:                stringField(rec, "id"),
		Email:             email,
		Password:          stringField(rec, "password"),
		Name:              stringField(rec, "name"),
		ProfilePictureURL: stringField(rec, "profile_picture_url"),
		GoogleID:          stringField(rec, "google_id"),
		PhoneNumber:       stringField(rec, "phone_number"),
		DNI:               stringField(rec, "dni"),
		IsPremium:         boolField(rec, "is_premium"),
		CreatedAt:         timeField(rec, "created_at"),
		UpdatedAt:         timeField(rec, "updated_at"),
	}
}

func stringField(rec Record, key string) string {
	v, _ := rec[key].(string)

	return v
}

func boolField(rec Record, key string) bool {
	v, _ := rec[key].(bool)

	return v
}

func timeField(rec Record, key string) time.Time {
	raw, _ := rec[key].(string)
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t
}

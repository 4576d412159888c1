package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"
	"clearpass/internal/domain/service"

	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory repository.UserRepository. Passwords are
// "hashed" by prefixing so tests can tell plaintext from stored form.
type fakeUserRepo struct {
	users   map[string]*entity.User
	nextID  int
	failAll bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func fakeHash(password string) string { return "hashed:" + password }

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if f.failAll {
		return nil, errors.New("storage failure")
	}
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.failAll {
		return nil, errors.New("storage failure")
	}
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmailAndPassword(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := f.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Password == "" || user.Password != fakeHash(password) {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*entity.User, error) {
	for _, user := range f.users {
		if user.GoogleID == googleID {
			copied := *user
			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if f.failAll {
		return nil, errors.New("storage failure")
	}
	if _, err := f.FindByEmail(ctx, user.Email); err == nil {
		return nil, repository.ErrUserAlreadyExists
	}

	f.nextID++
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", f.nextID)
	if stored.Password != "" {
		stored.Password = fakeHash(stored.Password)
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[stored.ID] = &stored

	copied := stored

	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	current, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	if patch.Email != nil && *patch.Email != current.Email {
		if other, err := f.FindByEmail(ctx, *patch.Email); err == nil && other.ID != id {
			return nil, repository.ErrUserAlreadyExists
		}
	}
	if patch.Password != nil && *patch.Password != "" {
		hashed := fakeHash(*patch.Password)
		patch.Password = &hashed
	}

	updated := current.Apply(patch, time.Now())
	f.users[id] = &updated
	copied := updated

	return &copied, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)

	return true, nil
}

// stubTokenService issues predictable tokens.
type stubTokenService struct {
	fail bool
}

func (s *stubTokenService) GenerateTokens(userID string, isPremium bool) (string, string, error) {
	if s.fail {
		return "", "", errors.New("signing failure")
	}

	return fmt.Sprintf("access:%s:%t", userID, isPremium), "refresh:" + userID, nil
}

func (s *stubTokenService) ValidateAccessToken(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) GetRefreshTokenDuration() time.Duration {
	return 24 * time.Hour
}

// stubOAuthService returns a canned Google user or an error.
type stubOAuthService struct {
	user *service.OAuthUser
	err  error
}

func (s *stubOAuthService) VerifyIDToken(context.Context, string) (*service.OAuthUser, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.user, nil
}

// fakeImporterRepo is an in-memory repository.ImporterRepository.
type fakeImporterRepo struct {
	importers []entity.Importer
	nextID    int
	failAll   bool
}

func (f *fakeImporterRepo) GetAll(context.Context) ([]entity.Importer, error) {
	if f.failAll {
		return nil, errors.New("storage failure")
	}

	return append([]entity.Importer(nil), f.importers...), nil
}

func (f *fakeImporterRepo) FindByID(_ context.Context, id string) (*entity.Importer, error) {
	for _, imp := range f.importers {
		if imp.ID == id {
			copied := imp
			return &copied, nil
		}
	}

	return nil, repository.ErrImporterNotFound
}

func (f *fakeImporterRepo) Save(_ context.Context, importer *entity.Importer) (*entity.Importer, error) {
	if f.failAll {
		return nil, errors.New("storage failure")
	}

	stored := *importer
	if stored.ID == "" {
		f.nextID++
		stored.ID = fmt.Sprintf("imp-%d", f.nextID)
		f.importers = append(f.importers, stored)
	} else {
		replaced := false
		for i, imp := range f.importers {
			if imp.ID == stored.ID {
				f.importers[i] = stored
				replaced = true
				break
			}
		}
		if !replaced {
			f.importers = append(f.importers, stored)
		}
	}
	copied := stored

	return &copied, nil
}

func (f *fakeImporterRepo) Delete(_ context.Context, id string) (bool, error) {
	for i, imp := range f.importers {
		if imp.ID == id {
			f.importers = append(f.importers[:i], f.importers[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// fakeProductRepo is a canned repository.ProductRepository.
type fakeProductRepo struct {
	products   []entity.Product
	categories []string
	total      int
	err        error
	byIDErr    error
}

func (f *fakeProductRepo) GetProducts(context.Context, string, string, int, int) ([]entity.Product, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}

	return f.products, f.total, nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id string) (*entity.Product, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	for _, p := range f.products {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (f *fakeProductRepo) GetCategories(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.categories, nil
}

func (f *fakeProductRepo) ClearCache() {}

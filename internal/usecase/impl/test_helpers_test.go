package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"recycle/config"
	"recycle/internal/domain/entity"
	"recycle/internal/domain/repository"
	"recycle/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:           4,
			MaxFailedAttempts:    5,
			LockoutDuration:      15 * time.Minute,
			SessionTTL:           24 * time.Hour,
			ConfirmationTokenTTL: 24 * time.Hour,
		},
	}
}

// --- clock ---

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// --- password hasher ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (fakeHasher) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	return nil
}

// --- confirmation tokens ---

type fakeConfirmationTokens struct{}

func (fakeConfirmationTokens) Issue(accountID uuid.UUID, purpose service.TokenPurpose) (string, error) {
	return fmt.Sprintf("confirm|%s|%s", accountID, purpose), nil
}

func (fakeConfirmationTokens) Validate(accountID uuid.UUID, purpose service.TokenPurpose, token string) error {
	if token != fmt.Sprintf("confirm|%s|%s", accountID, purpose) {
		return errors.New("token mismatch")
	}

	return nil
}

// --- session tokens ---

type fakeSessionTokens struct{}

func (fakeSessionTokens) Establish(account *entity.Account) (service.Principal, string, error) {
	principal := service.Principal{
		AccountID:      account.ID,
		Username:       account.Username,
		EmailConfirmed: account.EmailConfirmed,
	}

	return principal, "session|" + account.ID.String(), nil
}

func (fakeSessionTokens) Parse(credential string) (service.Principal, error) {
	id, ok := strings.CutPrefix(credential, "session|")
	if !ok {
		return service.Principal{}, errors.New("invalid credential")
	}

	accountID, err := uuid.Parse(id)
	if err != nil {
		return service.Principal{}, errors.Wrap(err, "invalid credential subject")
	}

	return service.Principal{AccountID: accountID}, nil
}

// --- in-memory repositories ---

// memAccountRepo mimics the store's soft-delete and confirmation-state
// filtering so the service-level lookup asymmetry is exercised for real.
type memAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	for _, existing := range r.accounts {
		if !existing.IsDeleted() && existing.NormalizedEmail == account.NormalizedEmail {
			return repository.ErrDuplicateEmail
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.accounts[id]
	if !ok || account.IsDeleted() {
		return nil, repository.ErrAccountNotFound
	}
	clone := *account

	return &clone, nil
}

func (r *memAccountRepo) FindByNormalizedEmail(_ context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error) {
	for _, account := range r.accounts {
		if account.IsDeleted() {
			continue
		}
		if account.NormalizedEmail == normalizedEmail && account.EmailConfirmed == confirmed {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memAccountRepo) FindByNormalizedEmailForUpdate(ctx context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error) {
	return r.FindByNormalizedEmail(ctx, normalizedEmail, confirmed)
}

func (r *memAccountRepo) Update(_ context.Context, account *entity.Account) error {
	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

// memProductRepo is the catalog counterpart of memAccountRepo.
type memProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, part := range product.Parts {
		if part.ID == uuid.Nil {
			part.ID = uuid.New()
		}
		part.ProductID = product.ID
	}
	r.products[product.ID] = product

	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok || product.IsDeleted() {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range r.products {
		if product.IsDeleted() {
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.products[product.ID] = product

	return nil
}

// --- transaction plumbing ---

type fakeRepositoryFactory struct {
	accountRepo repository.AccountRepository
	productRepo repository.ProductRepository
}

func (f *fakeRepositoryFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }

func (f *fakeRepositoryFactory) ProductRepo() repository.ProductRepository { return f.productRepo }

type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

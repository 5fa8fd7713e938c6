// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/repository"
	"recycle/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The store's partial unique index on the
// normalized email is the authoritative duplicate guard; a violation maps to
// repository.ErrDuplicateEmail.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID

	return nil
}

// FindByID retrieves a non-deleted account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).
		Scopes(excludeDeleted).
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByNormalizedEmail retrieves a non-deleted account in the requested
// confirmation state. Login asks for confirmed accounts; token validation asks
// for unconfirmed ones, which is what makes confirmation single-use.
func (repo *accountRepository) FindByNormalizedEmail(ctx context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error) {
	return repo.findByNormalizedEmail(ctx, repo.db, normalizedEmail, confirmed)
}

// FindByNormalizedEmailForUpdate behaves like FindByNormalizedEmail but takes
// a row-level lock so concurrent lockout-counter updates serialize. Only
// meaningful inside a transaction.
func (repo *accountRepository) FindByNormalizedEmailForUpdate(ctx context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error) {
	locked := repo.db.Clauses(clause.Locking{Strength: "UPDATE"})

	return repo.findByNormalizedEmail(ctx, locked, normalizedEmail, confirmed)
}

func (repo *accountRepository) findByNormalizedEmail(ctx context.Context, db *gorm.DB, normalizedEmail string, confirmed bool) (*entity.Account, error) {
	var accountM model.AccountModel

	err := db.WithContext(ctx).
		Scopes(excludeDeleted).
		Where("normalized_email = ? AND email_confirmed = ?", normalizedEmail, confirmed).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by normalized email")
	}

	return toAccountDomain(&accountM), nil
}

// Update persists the account's mutable credential state and audit columns.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:               data.ID,
		Username:         data.Username,
		Email:            data.Email,
		NormalizedEmail:  data.NormalizedEmail,
		PasswordHash:     data.PasswordHash,
		EmailConfirmed:   data.EmailConfirmed,
		FailedLoginCount: data.FailedLoginCount,
		LockoutEndsAt:    data.LockoutEndsAt,
		Trackable:        toTrackableDomain(data.TrackableColumns),
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:               data.ID,
		Username:         data.Username,
		Email:            data.Email,
		NormalizedEmail:  data.NormalizedEmail,
		PasswordHash:     data.PasswordHash,
		EmailConfirmed:   data.EmailConfirmed,
		FailedLoginCount: data.FailedLoginCount,
		LockoutEndsAt:    data.LockoutEndsAt,
		TrackableColumns: fromTrackableDomain(data.Trackable),
	}
}

// toTrackableDomain converts persisted audit columns to the domain value.
func toTrackableDomain(data model.TrackableColumns) entity.Trackable {
	return entity.Trackable{
		CreatedAt:  data.CreatedAt,
		CreatedBy:  data.CreatedBy,
		ModifiedAt: data.ModifiedAt,
		ModifiedBy: data.ModifiedBy,
		DeletedAt:  data.DeletedAt,
		DeletedBy:  data.DeletedBy,
	}
}

// fromTrackableDomain converts the domain audit value to persisted columns.
func fromTrackableDomain(data entity.Trackable) model.TrackableColumns {
	return model.TrackableColumns{
		CreatedAt:  data.CreatedAt,
		CreatedBy:  data.CreatedBy,
		ModifiedAt: data.ModifiedAt,
		ModifiedBy: data.ModifiedBy,
		DeletedAt:  data.DeletedAt,
		DeletedBy:  data.DeletedBy,
	}
}

package dbbadger

import (
	"context"
	"time"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// account is the storage form of domain.Account. The account type is kept
// as its canonical bytes next to the variant discriminator.
type account struct {
	ID           string
	Level        int
	Name         string
	TypeAbstract string
	TypeID       []byte
	Origin       string
	BackedUp     bool
	FileBackedUp bool
	AddedAt      int64
}

type accountRepository struct {
	store *badgerhold.Store
}

func NewAccountRepository(store *badgerhold.Store) ports.AccountRepository {
	return &accountRepository{store}
}

func (r *accountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	return r.findAccounts(ctx, (&badgerhold.Query{}).SortBy("AddedAt"))
}

func (r *accountRepository) GetByLevel(
	ctx context.Context, level int,
) ([]domain.Account, error) {
	query := badgerhold.Where("Level").Eq(level).SortBy("AddedAt")
	return r.findAccounts(ctx, query)
}

func (r *accountRepository) GetByID(
	ctx context.Context, id string,
) (*domain.Account, error) {
	var a account
	if err := r.store.Get(id, &a); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	acc, err := a.toDomain()
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (r *accountRepository) Save(ctx context.Context, acc domain.Account) error {
	if acc.Type == nil {
		return domain.ErrUnknownAccountTypeAbstract
	}

	addedAt := time.Now().UnixNano()
	var prev account
	if err := r.store.Get(acc.ID, &prev); err == nil {
		addedAt = prev.AddedAt
	} else if err != badgerhold.ErrNotFound {
		return err
	}

	return r.store.Upsert(acc.ID, account{
		ID:           acc.ID,
		Level:        acc.Level,
		Name:         acc.Name,
		TypeAbstract: string(acc.Type.Abstract()),
		TypeID:       acc.Type.UniqueID(false),
		Origin:       string(acc.Origin),
		BackedUp:     acc.BackedUp,
		FileBackedUp: acc.FileBackedUp,
		AddedAt:      addedAt,
	})
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(id, account{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

// findAccounts skips records that can no longer be decoded so that a single
// corrupted entry does not hide the others.
func (r *accountRepository) findAccounts(
	_ context.Context, query *badgerhold.Query,
) ([]domain.Account, error) {
	var stored []account
	if err := r.store.Find(&stored, query); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(stored))
	for _, a := range stored {
		acc, err := a.toDomain()
		if err != nil {
			log.WithError(err).Warnf("skipping undecodable account %s", a.ID)
			continue
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func (a account) toDomain() (*domain.Account, error) {
	abstract, err := domain.ParseAccountTypeAbstract(a.TypeAbstract)
	if err != nil {
		return nil, err
	}
	accountType, err := domain.DecodeAccountType(a.TypeID, abstract)
	if err != nil {
		return nil, err
	}
	origin, err := domain.ParseAccountOrigin(a.Origin)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:           a.ID,
		Level:        a.Level,
		Name:         a.Name,
		Type:         accountType,
		Origin:       origin,
		BackedUp:     a.BackedUp,
		FileBackedUp: a.FileBackedUp,
	}, nil
}

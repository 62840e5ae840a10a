package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store runs units of work inside PostgreSQL transactions
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewStore creates a new transactional store
func NewStore(db *sql.DB, logger *logrus.Logger) *Store {
	return &Store{db: db, logger: logger}
}

type unitOfWork struct {
	wishlists *wishlistRepository
	items     *itemRepository
}

func (u *unitOfWork) Wishlists() repository.WishlistRepository { return u.wishlists }
func (u *unitOfWork) Items() repository.ItemRepository         { return u.items }

// Do begins a transaction, hands repositories bound to it to fn, and commits
// when fn succeeds. Any error from fn rolls the transaction back.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	items := NewItemRepository(tx, s.logger)
	uow := &unitOfWork{
		wishlists: NewWishlistRepository(tx, items, s.logger),
		items:     items,
	}

	if err := fn(uow); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WithError(rbErr).Error("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return models.NewValidationError("Unable to commit transaction", err)
	}

	return nil
}

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

const wishlistColumns = `id, name, updated_time, note, is_favorite`

type wishlistRepository struct {
	db     DBTX
	items  *itemRepository
	logger *logrus.Logger
}

// NewWishlistRepository creates a new wishlist repository. Items are read and
// written through the given item repository, which must share db.
func NewWishlistRepository(db DBTX, items *itemRepository, logger *logrus.Logger) *wishlistRepository {
	return &wishlistRepository{db: db, items: items, logger: logger}
}

var _ repository.WishlistRepository = (*wishlistRepository)(nil)

// Create inserts the wishlist and every item it owns.
func (r *wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error) {
	r.logger.Infof("Creating wishlist %s", wishlist.Name)

	query := `
		INSERT INTO wishlist (name, updated_time, note, is_favorite)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		wishlist.Name,
		nullTime(wishlist),
		wishlist.Note,
		wishlist.IsFavorite,
	).Scan(&wishlist.ID)

	if err != nil {
		return nil, models.NewValidationError("Unable to create Wishlist", err)
	}

	for i := range wishlist.Items {
		wishlist.Items[i].WishlistID = wishlist.ID
		if _, err := r.items.Create(ctx, &wishlist.Items[i]); err != nil {
			return nil, err
		}
	}

	return wishlist, nil
}

// Update saves the scalar attributes of an existing wishlist. Items are
// managed through the item repository.
func (r *wishlistRepository) Update(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error) {
	r.logger.WithField("id", wishlist.ID).Infof("Saving wishlist %s", wishlist.Name)

	if wishlist.ID == 0 {
		return nil, models.NewValidationError("Update called with empty ID field", nil)
	}

	query := `
		UPDATE wishlist
		SET name = $2, updated_time = $3, note = $4, is_favorite = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		wishlist.ID,
		wishlist.Name,
		nullTime(wishlist),
		wishlist.Note,
		wishlist.IsFavorite,
	)
	if err != nil {
		return nil, models.NewValidationError("Unable to update Wishlist", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return nil, models.NewValidationError("Unable to update Wishlist", err)
	}
	if n == 0 {
		return nil, models.NewValidationError(fmt.Sprintf("Unable to update Wishlist: id %d does not exist", wishlist.ID), nil)
	}

	return wishlist, nil
}

// Delete removes the wishlist's items and then the wishlist itself. Deleting
// an absent id is not an error.
func (r *wishlistRepository) Delete(ctx context.Context, id int64) error {
	r.logger.WithField("id", id).Info("Deleting wishlist")

	if err := r.items.DeleteByWishlist(ctx, id); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist WHERE id = $1`, id); err != nil {
		return models.NewValidationError("Unable to delete Wishlist", err)
	}

	return nil
}

func (r *wishlistRepository) All(ctx context.Context) ([]*models.Wishlist, error) {
	r.logger.Info("Processing all wishlists")
	return r.list(ctx, ``)
}

func (r *wishlistRepository) Find(ctx context.Context, id int64) (*models.Wishlist, error) {
	r.logger.Infof("Processing lookup for id %d", id)

	lists, err := r.list(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return nil, nil
	}

	return lists[0], nil
}

func (r *wishlistRepository) FindByName(ctx context.Context, name string) ([]*models.Wishlist, error) {
	r.logger.Infof("Processing name query for %s", name)
	return r.list(ctx, `WHERE name = $1`, name)
}

func (r *wishlistRepository) FindByFavorite(ctx context.Context, favorite bool) ([]*models.Wishlist, error) {
	r.logger.Infof("Processing favorite query for %t", favorite)
	return r.list(ctx, `WHERE is_favorite = $1`, favorite)
}

func (r *wishlistRepository) list(ctx context.Context, clause string, args ...any) ([]*models.Wishlist, error) {
	query := `SELECT ` + wishlistColumns + ` FROM wishlist ` + clause + ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlists: %w", err)
	}

	lists := []*models.Wishlist{}
	ids := []int64{}
	for rows.Next() {
		list := &models.Wishlist{}
		var updated sql.NullTime
		if err := rows.Scan(
			&list.ID,
			&list.Name,
			&updated,
			&list.Note,
			&list.IsFavorite,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		if updated.Valid {
			t := updated.Time.UTC()
			list.UpdatedTime = &t
		}
		lists = append(lists, list)
		ids = append(ids, list.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read wishlists: %w", err)
	}
	// Release the connection before the item query; a transaction holds only one.
	rows.Close()

	grouped, err := r.items.forWishlists(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		list.Items = grouped[list.ID]
	}

	return lists, nil
}

func nullTime(w *models.Wishlist) sql.NullTime {
	if w.UpdatedTime == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: w.UpdatedTime.UTC(), Valid: true}
}

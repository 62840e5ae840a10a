package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

const itemColumns = `i.id, i.wishlist_id, i.name, i.quantity, i.category, i.note, i.price, i.is_favorite`

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type itemRepository struct {
	db     DBTX
	logger *logrus.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db DBTX, logger *logrus.Logger) *itemRepository {
	return &itemRepository{db: db, logger: logger}
}

var _ repository.ItemRepository = (*itemRepository)(nil)

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.logger.WithField("wishlist_id", item.WishlistID).Infof("Creating item %s", item.Name)

	query := `
		INSERT INTO items (wishlist_id, name, quantity, category, note, price, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.WishlistID,
		item.Name,
		item.Quantity,
		item.Category,
		item.Note,
		item.Price,
		item.IsFavorite,
	).Scan(&item.ID)

	if err != nil {
		return nil, models.NewValidationError("Unable to create Item", err)
	}

	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	r.logger.WithField("id", item.ID).Infof("Saving item %s", item.Name)

	if item.ID == 0 {
		return nil, models.NewValidationError("Update called with empty ID field", nil)
	}

	query := `
		UPDATE items
		SET wishlist_id = $2, name = $3, quantity = $4, category = $5, note = $6, price = $7, is_favorite = $8
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.WishlistID,
		item.Name,
		item.Quantity,
		item.Category,
		item.Note,
		item.Price,
		item.IsFavorite,
	)
	if err != nil {
		return nil, models.NewValidationError("Unable to update Item", err)
	}

	n, err := rowsAffected(result)
	if err != nil {
		return nil, models.NewValidationError("Unable to update Item", err)
	}
	if n == 0 {
		return nil, models.NewValidationError(fmt.Sprintf("Unable to update Item: id %d does not exist", item.ID), nil)
	}

	return item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	r.logger.WithField("id", id).Info("Deleting item")

	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return models.NewValidationError("Unable to delete Item", err)
	}

	return nil
}

func (r *itemRepository) DeleteByWishlist(ctx context.Context, wishlistID int64) error {
	r.logger.WithField("wishlist_id", wishlistID).Info("Deleting items of wishlist")

	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE wishlist_id = $1`, wishlistID); err != nil {
		return models.NewValidationError("Unable to delete Items", err)
	}

	return nil
}

func (r *itemRepository) Find(ctx context.Context, id int64) (*models.Item, error) {
	r.logger.Infof("Processing lookup for item id %d", id)

	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.id = $1`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.WishlistID,
		&item.Name,
		&item.Quantity,
		&item.Category,
		&item.Note,
		&item.Price,
		&item.IsFavorite,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}

	return item, nil
}

func (r *itemRepository) FindByWishlist(ctx context.Context, wishlistID int64) ([]*models.Item, error) {
	r.logger.Infof("Processing item lookup for wishlist %d", wishlistID)
	return r.list(ctx, `WHERE i.wishlist_id = $1`, wishlistID)
}

func (r *itemRepository) FindByName(ctx context.Context, wishlistID int64, name string) ([]*models.Item, error) {
	r.logger.Infof("Processing name query for %s", name)
	return r.list(ctx, `WHERE i.wishlist_id = $1 AND LOWER(i.name) = LOWER($2)`, wishlistID, name)
}

func (r *itemRepository) FindByCategory(ctx context.Context, wishlistID int64, category string) ([]*models.Item, error) {
	r.logger.Infof("Processing category query for %s", category)
	return r.list(ctx, `WHERE i.wishlist_id = $1 AND i.category = $2`, wishlistID, category)
}

func (r *itemRepository) FindByPrice(ctx context.Context, wishlistID int64, price float64) ([]*models.Item, error) {
	r.logger.Infof("Processing price query for %v", price)
	return r.list(ctx, `WHERE i.wishlist_id = $1 AND i.price = $2`, wishlistID, price)
}

func (r *itemRepository) FindByFavorite(ctx context.Context, wishlistID int64, favorite bool) ([]*models.Item, error) {
	r.logger.Infof("Processing favorite query for %t", favorite)
	return r.list(ctx, `WHERE i.wishlist_id = $1 AND i.is_favorite = $2`, wishlistID, favorite)
}

// Query searches items across all wishlists. Every supplied filter narrows
// the result.
func (r *itemRepository) Query(ctx context.Context, q repository.ItemQuery) ([]*models.Item, error) {
	r.logger.Info("Processing cross-wishlist item query")

	var conditions []string
	var args []any
	argIdx := 1
	join := ""

	if q.Name != nil {
		conditions = append(conditions, fmt.Sprintf("i.name ILIKE '%%' || $%d || '%%'", argIdx))
		args = append(args, likeEscaper.Replace(*q.Name))
		argIdx++
	}
	if q.Category != nil {
		conditions = append(conditions, fmt.Sprintf("i.category ILIKE '%%' || $%d || '%%'", argIdx))
		args = append(args, likeEscaper.Replace(*q.Category))
		argIdx++
	}
	if q.Price != nil {
		conditions = append(conditions, fmt.Sprintf("i.price = $%d", argIdx))
		args = append(args, *q.Price)
		argIdx++
	}
	if q.UpdatedTime != nil {
		join = " JOIN wishlist w ON w.id = i.wishlist_id"
		conditions = append(conditions, fmt.Sprintf("w.updated_time = $%d", argIdx))
		args = append(args, *q.UpdatedTime)
		argIdx++
	}
	if q.IsFavorite != nil {
		conditions = append(conditions, fmt.Sprintf("i.is_favorite = $%d", argIdx))
		args = append(args, *q.IsFavorite)
	}

	clause := join
	if len(conditions) > 0 {
		clause += " WHERE " + strings.Join(conditions, " AND ")
	}

	return r.list(ctx, clause, args...)
}

// forWishlists loads the items of several wishlists in one round trip,
// grouped by wishlist id.
func (r *itemRepository) forWishlists(ctx context.Context, ids []int64) (map[int64][]models.Item, error) {
	grouped := make(map[int64][]models.Item, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	items, err := r.list(ctx, `WHERE i.wishlist_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		grouped[item.WishlistID] = append(grouped[item.WishlistID], *item)
	}

	return grouped, nil
}

func (r *itemRepository) list(ctx context.Context, clause string, args ...any) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i ` + clause + ` ORDER BY i.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(
			&item.ID,
			&item.WishlistID,
			&item.Name,
			&item.Quantity,
			&item.Category,
			&item.Note,
			&item.Price,
			&item.IsFavorite,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

package repository

import (
	"context"
	"time"

	"github.com/Kerhoff/wishlists/internal/models"
)

// WishlistRepository defines the interface for wishlist data operations.
// Every read returns wishlists with their items loaded.
type WishlistRepository interface {
	Create(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error)
	Update(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error)
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context) ([]*models.Wishlist, error)
	Find(ctx context.Context, id int64) (*models.Wishlist, error)
	FindByName(ctx context.Context, name string) ([]*models.Wishlist, error)
	FindByFavorite(ctx context.Context, favorite bool) ([]*models.Wishlist, error)
}

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteByWishlist(ctx context.Context, wishlistID int64) error
	Find(ctx context.Context, id int64) (*models.Item, error)
	FindByWishlist(ctx context.Context, wishlistID int64) ([]*models.Item, error)
	FindByName(ctx context.Context, wishlistID int64, name string) ([]*models.Item, error)
	FindByCategory(ctx context.Context, wishlistID int64, category string) ([]*models.Item, error)
	FindByPrice(ctx context.Context, wishlistID int64, price float64) ([]*models.Item, error)
	FindByFavorite(ctx context.Context, wishlistID int64, favorite bool) ([]*models.Item, error)
	Query(ctx context.Context, q ItemQuery) ([]*models.Item, error)
}

// ItemQuery represents AND-combined filters for the global item search.
// Nil fields are not applied.
type ItemQuery struct {
	Name        *string
	Category    *string
	Price       *float64
	UpdatedTime *time.Time
	IsFavorite  *bool
}

// UnitOfWork exposes repositories bound to a single transaction
type UnitOfWork interface {
	Wishlists() WishlistRepository
	Items() ItemRepository
}

// Store runs fn inside a unit of work. Changes made through uow are committed
// when fn returns nil and discarded otherwise.
type Store interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
}

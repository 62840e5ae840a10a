package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

// Service is the business logic layer behind the HTTP API. Every method runs
// in exactly one unit of work of the underlying store.
type Service struct {
	store  repository.Store
	logger *logrus.Logger
	now    func() time.Time
}

// New creates a new Service on top of store.
func New(store repository.Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WishlistFilter selects wishlists. Name takes precedence over IsFavorite.
type WishlistFilter struct {
	Name       *string
	IsFavorite *bool
}

// ItemFilter selects items of one wishlist. Name is checked first and must
// match at least one item; then the first of Category, Price and IsFavorite
// that is set is applied.
type ItemFilter struct {
	Name       *string
	Category   *string
	Price      *float64
	IsFavorite *bool
}

// stamp normalizes an updated time to the second, which is the resolution of
// its wire format. A nil time becomes the current time.
func (s *Service) stamp(t *time.Time) *time.Time {
	var out time.Time
	if t == nil {
		out = s.now()
	} else {
		out = *t
	}
	out = out.UTC().Truncate(time.Second)
	return &out
}

// CreateWishlist creates a wishlist, and the items it lists, from a JSON body.
func (s *Service) CreateWishlist(ctx context.Context, body []byte) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{}
	if err := wishlist.Deserialize(body); err != nil {
		return nil, err
	}
	wishlist.UpdatedTime = s.stamp(wishlist.UpdatedTime)

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		wishlist, err = uow.Wishlists().Create(ctx, wishlist)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Wishlist with id [%d] created", wishlist.ID)
	return wishlist, nil
}

// ListWishlists returns the wishlists matching filter, or all of them.
func (s *Service) ListWishlists(ctx context.Context, filter WishlistFilter) ([]*models.Wishlist, error) {
	var lists []*models.Wishlist

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		switch {
		case filter.Name != nil:
			lists, err = uow.Wishlists().FindByName(ctx, *filter.Name)
		case filter.IsFavorite != nil:
			lists, err = uow.Wishlists().FindByFavorite(ctx, *filter.IsFavorite)
		default:
			lists, err = uow.Wishlists().All(ctx)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}

	return lists, nil
}

// GetWishlist returns the wishlist with the given id and its items.
func (s *Service) GetWishlist(ctx context.Context, id int64) (*models.Wishlist, error) {
	var wishlist *models.Wishlist

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		wishlist, err = findWishlist(ctx, uow, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// UpdateWishlist replaces the attributes of an existing wishlist with the ones
// in body. Items listed in body are added to the wishlist next to the ones it
// already holds.
func (s *Service) UpdateWishlist(ctx context.Context, id int64, body []byte) (*models.Wishlist, error) {
	var wishlist *models.Wishlist

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		found, err := findWishlist(ctx, uow, id)
		if err != nil {
			return err
		}

		updated := *found
		updated.Items = nil
		if err := updated.Deserialize(body); err != nil {
			return err
		}
		updated.UpdatedTime = s.stamp(updated.UpdatedTime)

		added := updated.Items
		updated.Items = nil
		if _, err := uow.Wishlists().Update(ctx, &updated); err != nil {
			return err
		}

		for i := range added {
			item := added[i]
			item.ID = 0
			item.WishlistID = id
			if _, err := uow.Items().Create(ctx, &item); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			s.logger.Infof("Added %d items to wishlist [%d]", len(added), id)
		}

		wishlist, err = findWishlist(ctx, uow, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// DeleteWishlist removes a wishlist and all of its items. Deleting an absent
// wishlist succeeds.
func (s *Service) DeleteWishlist(ctx context.Context, id int64) error {
	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Wishlists().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Wishlist with id [%d] delete complete", id)
	return nil
}

// SetWishlistFavorite sets the favorite flag of a wishlist.
func (s *Service) SetWishlistFavorite(ctx context.Context, id int64, favorite bool) (*models.Wishlist, error) {
	var wishlist *models.Wishlist

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		found, err := findWishlist(ctx, uow, id)
		if err != nil {
			return err
		}

		found.IsFavorite = favorite
		if _, err := uow.Wishlists().Update(ctx, found); err != nil {
			return err
		}
		wishlist = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// AddItem creates an item from body inside an existing wishlist and bumps the
// wishlist's updated time.
func (s *Service) AddItem(ctx context.Context, wishlistID int64, body []byte) (*models.Item, error) {
	var item *models.Item

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		wishlist, err := findWishlist(ctx, uow, wishlistID)
		if err != nil {
			return err
		}

		candidate := &models.Item{}
		if err := candidate.Deserialize(body); err != nil {
			return err
		}
		candidate.WishlistID = wishlist.ID

		if item, err = uow.Items().Create(ctx, candidate); err != nil {
			return err
		}

		wishlist.UpdatedTime = s.stamp(nil)
		_, err = uow.Wishlists().Update(ctx, wishlist)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Item with id [%d] added to wishlist [%d]", item.ID, wishlistID)
	return item, nil
}

// ListWishlistItems returns the items of a wishlist narrowed by filter.
func (s *Service) ListWishlistItems(ctx context.Context, wishlistID int64, filter ItemFilter) ([]*models.Item, error) {
	var items []*models.Item

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := findWishlist(ctx, uow, wishlistID); err != nil {
			return err
		}

		var named []*models.Item
		if filter.Name != nil {
			var err error
			named, err = uow.Items().FindByName(ctx, wishlistID, *filter.Name)
			if err != nil {
				return fmt.Errorf("failed to query items by name: %w", err)
			}
			if len(named) == 0 {
				return &models.NotFoundError{Resource: "Item", Name: *filter.Name, Parent: wishlistID}
			}
		}

		var err error
		switch {
		case filter.Category != nil:
			items, err = uow.Items().FindByCategory(ctx, wishlistID, *filter.Category)
		case filter.Price != nil:
			items, err = uow.Items().FindByPrice(ctx, wishlistID, *filter.Price)
		case filter.IsFavorite != nil:
			items, err = uow.Items().FindByFavorite(ctx, wishlistID, *filter.IsFavorite)
		case filter.Name != nil:
			items = named
		default:
			items, err = uow.Items().FindByWishlist(ctx, wishlistID)
		}
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetItem returns an item that belongs to the given wishlist.
func (s *Service) GetItem(ctx context.Context, wishlistID, itemID int64) (*models.Item, error) {
	var item *models.Item

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		item, err = findItem(ctx, uow, wishlistID, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem replaces the attributes of an item with the ones in body. A
// failed update leaves the stored item unchanged.
func (s *Service) UpdateItem(ctx context.Context, wishlistID, itemID int64, body []byte) (*models.Item, error) {
	var item *models.Item

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		found, err := findItem(ctx, uow, wishlistID, itemID)
		if err != nil {
			return err
		}

		updated := *found
		if err := updated.Deserialize(body); err != nil {
			return err
		}

		item, err = uow.Items().Update(ctx, &updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item if it exists and belongs to the wishlist.
// Deleting an absent item succeeds.
func (s *Service) DeleteItem(ctx context.Context, wishlistID, itemID int64) error {
	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		item, err := uow.Items().Find(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to lookup item %d: %w", itemID, err)
		}
		if item == nil || item.WishlistID != wishlistID {
			return nil
		}
		return uow.Items().Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Item with id [%d] delete complete", itemID)
	return nil
}

// SetItemFavorite sets the favorite flag of an item.
func (s *Service) SetItemFavorite(ctx context.Context, wishlistID, itemID int64, favorite bool) (*models.Item, error) {
	var item *models.Item

	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		found, err := findItem(ctx, uow, wishlistID, itemID)
		if err != nil {
			return err
		}

		found.IsFavorite = favorite
		item, err = uow.Items().Update(ctx, found)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// QueryItems searches items across all wishlists.
func (s *Service) QueryItems(ctx context.Context, query repository.ItemQuery) ([]*models.Item, error) {
	if query.UpdatedTime != nil {
		query.UpdatedTime = s.stamp(query.UpdatedTime)
	}

	var items []*models.Item
	err := s.store.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		items, err = uow.Items().Query(ctx, query)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	return items, nil
}

func findWishlist(ctx context.Context, uow repository.UnitOfWork, id int64) (*models.Wishlist, error) {
	wishlist, err := uow.Wishlists().Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup wishlist %d: %w", id, err)
	}
	if wishlist == nil {
		return nil, &models.NotFoundError{Resource: "Wishlist", ID: id}
	}
	return wishlist, nil
}

// findItem returns the item only when both the wishlist and the item exist
// and the item belongs to the wishlist.
func findItem(ctx context.Context, uow repository.UnitOfWork, wishlistID, itemID int64) (*models.Item, error) {
	if _, err := findWishlist(ctx, uow, wishlistID); err != nil {
		return nil, err
	}

	item, err := uow.Items().Find(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup item %d: %w", itemID, err)
	}
	if item == nil || item.WishlistID != wishlistID {
		return nil, &models.NotFoundError{Resource: "Item", ID: itemID, Parent: wishlistID}
	}
	return item, nil
}

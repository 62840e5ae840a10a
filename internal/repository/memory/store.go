// Package memory provides an in-process transactional store used when the
// service runs without PostgreSQL and in tests. Each unit of work operates on
// a private copy of the state that replaces the shared state only on success.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
)

type state struct {
	wishlists    map[int64]models.Wishlist
	items        map[int64]models.Item
	nextWishlist int64
	nextItem     int64
}

func newState() state {
	return state{
		wishlists:    map[int64]models.Wishlist{},
		items:        map[int64]models.Item{},
		nextWishlist: 1,
		nextItem:     1,
	}
}

func (s state) clone() state {
	out := state{
		wishlists:    make(map[int64]models.Wishlist, len(s.wishlists)),
		items:        make(map[int64]models.Item, len(s.items)),
		nextWishlist: s.nextWishlist,
		nextItem:     s.nextItem,
	}
	for k, v := range s.wishlists {
		out.wishlists[k] = cloneWishlist(v)
	}
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

func cloneWishlist(w models.Wishlist) models.Wishlist {
	if w.UpdatedTime != nil {
		t := w.UpdatedTime.UTC()
		w.UpdatedTime = &t
	}
	w.Items = nil
	return w
}

// Store is a mutex-guarded in-memory implementation of repository.Store.
// Units of work are serialized.
type Store struct {
	mu     sync.Mutex
	state  state
	logger *logrus.Logger
}

// NewStore creates an empty in-memory store
func NewStore(logger *logrus.Logger) *Store {
	return &Store{state: newState(), logger: logger}
}

// Do runs fn against a copy of the current state and publishes the copy when
// fn returns nil.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &unitOfWork{state: s.state.clone(), logger: s.logger}
	if err := fn(tx); err != nil {
		return err
	}

	s.state = tx.state
	return nil
}

type unitOfWork struct {
	state  state
	logger *logrus.Logger
}

func (u *unitOfWork) Wishlists() repository.WishlistRepository { return wishlistRepository{u} }
func (u *unitOfWork) Items() repository.ItemRepository         { return itemRepository{u} }

// withItems returns a copy of w carrying its items in id order.
func (u *unitOfWork) withItems(w models.Wishlist) *models.Wishlist {
	out := cloneWishlist(w)
	for _, item := range u.sortedItems(func(i models.Item) bool { return i.WishlistID == w.ID }) {
		out.Items = append(out.Items, *item)
	}
	return &out
}

func (u *unitOfWork) sortedItems(match func(models.Item) bool) []*models.Item {
	out := []*models.Item{}
	for _, item := range u.state.items {
		if match(item) {
			item := item
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (u *unitOfWork) sortedWishlists(match func(models.Wishlist) bool) []*models.Wishlist {
	out := []*models.Wishlist{}
	for _, w := range u.state.wishlists {
		if match(w) {
			out = append(out, u.withItems(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type wishlistRepository struct{ u *unitOfWork }

func (r wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) (*models.Wishlist, error) {
	r.u.logger.Infof("Creating wishlist %s", wishlist.Name)

	wishlist.ID = r.u.state.nextWishlist
	r.u.state.nextWishlist++
	r.u.state.wishlists[wishlist.ID] = cloneWishlist(*wishlist)

	items := itemRepository{r.u}
	for i := range wishlist.Items {
		wishlist.Items[i].WishlistID = wishlist.ID
		if _, err := items.Create(ctx, &wishlist.Items[i]); err != nil {
			return nil, err
		}
	}

	return wishlist, nil
}

func (r wishlistRepository) Update(_ context.Context, wishlist *models.Wishlist) (*models.Wishlist, error) {
	r.u.logger.WithField("id", wishlist.ID).Infof("Saving wishlist %s", wishlist.Name)

	if wishlist.ID == 0 {
		return nil, models.NewValidationError("Update called with empty ID field", nil)
	}
	if _, ok := r.u.state.wishlists[wishlist.ID]; !ok {
		return nil, models.NewValidationError("Unable to update Wishlist: id does not exist", nil)
	}

	r.u.state.wishlists[wishlist.ID] = cloneWishlist(*wishlist)
	return wishlist, nil
}

func (r wishlistRepository) Delete(_ context.Context, id int64) error {
	r.u.logger.WithField("id", id).Info("Deleting wishlist")

	for itemID, item := range r.u.state.items {
		if item.WishlistID == id {
			delete(r.u.state.items, itemID)
		}
	}
	delete(r.u.state.wishlists, id)
	return nil
}

func (r wishlistRepository) All(_ context.Context) ([]*models.Wishlist, error) {
	r.u.logger.Info("Processing all wishlists")
	return r.u.sortedWishlists(func(models.Wishlist) bool { return true }), nil
}

func (r wishlistRepository) Find(_ context.Context, id int64) (*models.Wishlist, error) {
	r.u.logger.Infof("Processing lookup for id %d", id)

	w, ok := r.u.state.wishlists[id]
	if !ok {
		return nil, nil
	}
	return r.u.withItems(w), nil
}

func (r wishlistRepository) FindByName(_ context.Context, name string) ([]*models.Wishlist, error) {
	r.u.logger.Infof("Processing name query for %s", name)
	return r.u.sortedWishlists(func(w models.Wishlist) bool { return w.Name == name }), nil
}

func (r wishlistRepository) FindByFavorite(_ context.Context, favorite bool) ([]*models.Wishlist, error) {
	r.u.logger.Infof("Processing favorite query for %t", favorite)
	return r.u.sortedWishlists(func(w models.Wishlist) bool { return w.IsFavorite == favorite }), nil
}

type itemRepository struct{ u *unitOfWork }

func (r itemRepository) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	r.u.logger.WithField("wishlist_id", item.WishlistID).Infof("Creating item %s", item.Name)

	if _, ok := r.u.state.wishlists[item.WishlistID]; !ok {
		return nil, models.NewValidationError("Unable to create Item: wishlist does not exist", nil)
	}

	item.ID = r.u.state.nextItem
	r.u.state.nextItem++
	r.u.state.items[item.ID] = *item
	return item, nil
}

func (r itemRepository) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	r.u.logger.WithField("id", item.ID).Infof("Saving item %s", item.Name)

	if item.ID == 0 {
		return nil, models.NewValidationError("Update called with empty ID field", nil)
	}
	if _, ok := r.u.state.items[item.ID]; !ok {
		return nil, models.NewValidationError("Unable to update Item: id does not exist", nil)
	}
	if _, ok := r.u.state.wishlists[item.WishlistID]; !ok {
		return nil, models.NewValidationError("Unable to update Item: wishlist does not exist", nil)
	}

	r.u.state.items[item.ID] = *item
	return item, nil
}

func (r itemRepository) Delete(_ context.Context, id int64) error {
	r.u.logger.WithField("id", id).Info("Deleting item")
	delete(r.u.state.items, id)
	return nil
}

func (r itemRepository) DeleteByWishlist(_ context.Context, wishlistID int64) error {
	r.u.logger.WithField("wishlist_id", wishlistID).Info("Deleting items of wishlist")
	for id, item := range r.u.state.items {
		if item.WishlistID == wishlistID {
			delete(r.u.state.items, id)
		}
	}
	return nil
}

func (r itemRepository) Find(_ context.Context, id int64) (*models.Item, error) {
	r.u.logger.Infof("Processing lookup for item id %d", id)

	item, ok := r.u.state.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r itemRepository) FindByWishlist(_ context.Context, wishlistID int64) ([]*models.Item, error) {
	r.u.logger.Infof("Processing item lookup for wishlist %d", wishlistID)
	return r.u.sortedItems(func(i models.Item) bool { return i.WishlistID == wishlistID }), nil
}

func (r itemRepository) FindByName(_ context.Context, wishlistID int64, name string) ([]*models.Item, error) {
	r.u.logger.Infof("Processing name query for %s", name)
	return r.u.sortedItems(func(i models.Item) bool {
		return i.WishlistID == wishlistID && strings.EqualFold(i.Name, name)
	}), nil
}

func (r itemRepository) FindByCategory(_ context.Context, wishlistID int64, category string) ([]*models.Item, error) {
	r.u.logger.Infof("Processing category query for %s", category)
	return r.u.sortedItems(func(i models.Item) bool {
		return i.WishlistID == wishlistID && i.Category == category
	}), nil
}

func (r itemRepository) FindByPrice(_ context.Context, wishlistID int64, price float64) ([]*models.Item, error) {
	r.u.logger.Infof("Processing price query for %v", price)
	return r.u.sortedItems(func(i models.Item) bool {
		return i.WishlistID == wishlistID && i.Price == price
	}), nil
}

func (r itemRepository) FindByFavorite(_ context.Context, wishlistID int64, favorite bool) ([]*models.Item, error) {
	r.u.logger.Infof("Processing favorite query for %t", favorite)
	return r.u.sortedItems(func(i models.Item) bool {
		return i.WishlistID == wishlistID && i.IsFavorite == favorite
	}), nil
}

func (r itemRepository) Query(_ context.Context, q repository.ItemQuery) ([]*models.Item, error) {
	r.u.logger.Info("Processing cross-wishlist item query")

	return r.u.sortedItems(func(i models.Item) bool {
		if q.Name != nil && !containsFold(i.Name, *q.Name) {
			return false
		}
		if q.Category != nil && !containsFold(i.Category, *q.Category) {
			return false
		}
		if q.Price != nil && i.Price != *q.Price {
			return false
		}
		if q.IsFavorite != nil && i.IsFavorite != *q.IsFavorite {
			return false
		}
		if q.UpdatedTime != nil {
			w := r.u.state.wishlists[i.WishlistID]
			if w.UpdatedTime == nil || !w.UpdatedTime.Equal(*q.UpdatedTime) {
				return false
			}
		}
		return true
	}), nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

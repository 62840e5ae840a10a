package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/repository"
	"github.com/Kerhoff/wishlists/internal/service"
)

func (s *Server) handleListWishlistItems(w http.ResponseWriter, r *http.Request) {
	wishlistID, _, ok := s.requireIDs(w, r, false)
	if !ok {
		return
	}
	s.logger.Infof("Request for items of wishlist with id: %d", wishlistID)

	q := r.URL.Query()
	filter := service.ItemFilter{
		Name:       stringParam(q, "name"),
		Category:   stringParam(q, "category"),
		Price:      priceParam(q),
		IsFavorite: boolParam(q, "is_favorite"),
	}

	items, err := s.svc.ListWishlistItems(r.Context(), wishlistID, filter)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, _, ok := s.requireIDs(w, r, false)
	if !ok {
		return
	}
	s.logger.Infof("Request to add an item to wishlist with id: %d", wishlistID)

	body, ok := s.readJSON(w, r)
	if !ok {
		return
	}

	item, err := s.svc.AddItem(r.Context(), wishlistID, body)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", location(r, "/wishlists/%d/items/%d", wishlistID, item.ID))
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.requireIDs(w, r, true)
	if !ok {
		return
	}
	s.logger.Infof("Request for item %d of wishlist %d", itemID, wishlistID)

	item, err := s.svc.GetItem(r.Context(), wishlistID, itemID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.requireIDs(w, r, true)
	if !ok {
		return
	}
	s.logger.Infof("Request to update item %d of wishlist %d", itemID, wishlistID)

	body, ok := s.readJSON(w, r)
	if !ok {
		return
	}

	item, err := s.svc.UpdateItem(r.Context(), wishlistID, itemID, body)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.requireIDs(w, r, true)
	if !ok {
		return
	}
	s.logger.Infof("Request to delete item %d of wishlist %d", itemID, wishlistID)

	if err := s.svc.DeleteItem(r.Context(), wishlistID, itemID); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFavoriteItem(favorite bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wishlistID, itemID, ok := s.requireIDs(w, r, true)
		if !ok {
			return
		}
		s.logger.Infof("Request to set favorite=%t on item %d of wishlist %d", favorite, itemID, wishlistID)

		item, err := s.svc.SetItemFavorite(r.Context(), wishlistID, itemID, favorite)
		if err != nil {
			s.respondServiceError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleQueryItems(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request for item search")

	q := r.URL.Query()
	query := repository.ItemQuery{
		Name:       stringParam(q, "name"),
		Category:   stringParam(q, "category"),
		Price:      priceParam(q),
		IsFavorite: boolParam(q, "is_favorite"),
	}
	if raw := q.Get("updated_time"); raw != "" {
		if t, err := models.ParseTimestamp(raw); err == nil {
			query.UpdatedTime = &t
		} else {
			s.logger.WithField("updated_time", raw).Debug("ignoring malformed updated_time filter")
		}
	}

	items, err := s.svc.QueryItems(r.Context(), query)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, items)
}

// ---------------------------------------------------------------------------
// Query parameters
// ---------------------------------------------------------------------------

func stringParam(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func boolParam(q url.Values, key string) *bool {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	b := parseBool(v)
	return &b
}

// priceParam ignores values that are not finite numbers.
func priceParam(q url.Values) *float64 {
	v, err := strconv.ParseFloat(q.Get("price"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

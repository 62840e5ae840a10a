package api

import (
	"net/http"
	"strings"

	"github.com/Kerhoff/wishlists/internal/service"
)

func (s *Server) handleListWishlists(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request for wishlist list")

	q := r.URL.Query()
	filter := service.WishlistFilter{
		Name:       stringParam(q, "name"),
		IsFavorite: boolParam(q, "is_favorite"),
	}

	lists, err := s.svc.ListWishlists(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.logger.Infof("Returning %d wishlists", len(lists))
	s.respondJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateWishlist(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request to create a wishlist")

	body, ok := s.readJSON(w, r)
	if !ok {
		return
	}

	created, err := s.svc.CreateWishlist(r.Context(), body)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", location(r, "/wishlists/%d", created.ID))
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.requireIDs(w, r, false)
	if !ok {
		return
	}
	s.logger.Infof("Request for wishlist with id: %d", id)

	wishlist, err := s.svc.GetWishlist(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, wishlist)
}

func (s *Server) handleUpdateWishlist(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.requireIDs(w, r, false)
	if !ok {
		return
	}
	s.logger.Infof("Request to update wishlist with id: %d", id)

	body, ok := s.readJSON(w, r)
	if !ok {
		return
	}

	updated, err := s.svc.UpdateWishlist(r.Context(), id, body)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWishlist(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.requireIDs(w, r, false)
	if !ok {
		return
	}
	s.logger.Infof("Request to delete wishlist with id: %d", id)

	if err := s.svc.DeleteWishlist(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFavoriteWishlist(favorite bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _, ok := s.requireIDs(w, r, false)
		if !ok {
			return
		}
		s.logger.Infof("Request to set favorite=%t on wishlist with id: %d", favorite, id)

		wishlist, err := s.svc.SetWishlistFavorite(r.Context(), id, favorite)
		if err != nil {
			s.respondServiceError(w, err)
			return
		}

		s.respondJSON(w, http.StatusOK, wishlist)
	}
}

// parseBool treats true, yes and 1 as true, in any case, and everything else
// as false.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

package api

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/metrics"
	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/service"
)

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

const maxBodyBytes = 1 << 20

// Server provides the HTTP API and serves the index page.
type Server struct {
	svc     *service.Service
	logger  *logrus.Logger
	metrics *metrics.Metrics
	mux     *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it. m may be
// nil, in which case no metrics are recorded.
func NewServer(svc *service.Service, logger *logrus.Logger, m *metrics.Metrics) *Server {
	s := &Server{svc: svc, logger: logger, metrics: m, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.observe(s.mux)
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	// Wishlists
	s.mux.HandleFunc("GET /wishlists", s.handleListWishlists)
	s.mux.HandleFunc("POST /wishlists", s.handleCreateWishlist)
	s.mux.HandleFunc("GET /wishlists/{id}", s.handleGetWishlist)
	s.mux.HandleFunc("PUT /wishlists/{id}", s.handleUpdateWishlist)
	s.mux.HandleFunc("DELETE /wishlists/{id}", s.handleDeleteWishlist)
	s.mux.HandleFunc("PUT /wishlists/{id}/favorite", s.handleFavoriteWishlist(true))
	s.mux.HandleFunc("DELETE /wishlists/{id}/favorite", s.handleFavoriteWishlist(false))

	// Items of a wishlist
	s.mux.HandleFunc("GET /wishlists/{id}/items", s.handleListWishlistItems)
	s.mux.HandleFunc("POST /wishlists/{id}/items", s.handleAddItem)
	s.mux.HandleFunc("GET /wishlists/{id}/items/{item_id}", s.handleGetItem)
	s.mux.HandleFunc("PUT /wishlists/{id}/items/{item_id}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /wishlists/{id}/items/{item_id}", s.handleDeleteItem)
	s.mux.HandleFunc("PUT /wishlists/{id}/items/{item_id}/favorite", s.handleFavoriteItem(true))
	s.mux.HandleFunc("DELETE /wishlists/{id}/items/{item_id}/favorite", s.handleFavoriteItem(false))

	// Cross-wishlist item search
	s.mux.HandleFunc("GET /items", s.handleQueryItems)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

type errorResponse struct {
	Status  int                 `json:"status"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondServiceError maps an error returned by the service to a response.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var ve *models.DataValidationError
	var nf *models.NotFoundError

	switch {
	case errors.As(err, &ve):
		s.logger.WithError(err).Warn("request failed validation")
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Status:  http.StatusBadRequest,
			Error:   http.StatusText(http.StatusBadRequest),
			Message: ve.Error(),
			Errors:  ve.Fields,
		})
	case errors.As(err, &nf):
		s.respondError(w, http.StatusNotFound, nf.Error())
	default:
		s.logger.WithError(err).Error("request failed")
		s.respondError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// readJSON checks the content type and reads the request body. It writes an
// error response and returns false when the body cannot be used.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" {
		s.logger.WithField("content_type", ct).Warn("invalid Content-Type")
		s.respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
		return nil, false
	}
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unable to read request body: %v", err))
		return nil, false
	}
	return body, true
}

// pathID extracts a path value and converts it to int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s in path", name)
	}
	return strconv.ParseInt(raw, 10, 64)
}

// requireIDs reads {id} and, when withItem is set, {item_id}. Ids that are
// not integers do not address any resource, so they are reported as 404.
func (s *Server) requireIDs(w http.ResponseWriter, r *http.Request, withItem bool) (wishlistID, itemID int64, ok bool) {
	wishlistID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Wishlist with id '%s' could not be found.", r.PathValue("id")))
		return 0, 0, false
	}
	if !withItem {
		return wishlistID, 0, true
	}

	itemID, err = pathID(r, "item_id")
	if err != nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Item with id '%s' could not be found.", r.PathValue("item_id")))
		return 0, 0, false
	}
	return wishlistID, itemID, true
}

func location(r *http.Request, format string, args ...any) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host) + fmt.Sprintf(format, args...)
}

// ---------------------------------------------------------------------------
// Health & index
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "message": "Healthy"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Title string }{Title: "Wishlist REST API Service"}); err != nil {
		s.logger.WithError(err).Error("failed to execute index template")
	}
}

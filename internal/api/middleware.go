package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code of a response. Plain-text 404 and
// 405 responses produced by the mux itself are replaced with the JSON error
// shape used by the handlers.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	wrote   bool
	replace bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wrote {
		return
	}
	rec.wrote = true
	rec.status = code

	h := rec.Header()
	if (code != http.StatusNotFound && code != http.StatusMethodNotAllowed) ||
		!strings.HasPrefix(h.Get("Content-Type"), "text/plain") {
		rec.ResponseWriter.WriteHeader(code)
		return
	}

	rec.replace = true
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Del("X-Content-Type-Options")
	h.Del("Content-Length")
	rec.ResponseWriter.WriteHeader(code)

	message := "The requested URL was not found on the server."
	if code == http.StatusMethodNotAllowed {
		message = "The method is not allowed for the requested URL."
	}
	_ = json.NewEncoder(rec.ResponseWriter).Encode(errorResponse{
		Status:  code,
		Error:   http.StatusText(code),
		Message: message,
	})
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wrote {
		rec.WriteHeader(http.StatusOK)
	}
	if rec.replace {
		return len(b), nil
	}
	return rec.ResponseWriter.Write(b)
}

// observe tags each request with an id, records metrics and logs the
// outcome.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		var record func(method, route string, code int)
		if s.metrics != nil {
			record = s.metrics.Begin()
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux stores the matched pattern on the request.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if record != nil {
			record(r.Method, route, rec.status)
		}

		logger.WithFields(s.logger, logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"route":      route,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("HTTP request")
	})
}

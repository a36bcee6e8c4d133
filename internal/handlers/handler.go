package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/metrics"
	"github.com/latoulicious/setforge/pkg/render"
)

const maxBodyBytes = 1 << 20

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the catalog over HTTP
type Handler struct {
	catalog  catalog.CatalogServiceInterface
	loggers  logging.LoggerFactory
	metrics  *metrics.Metrics
	db       Pinger
	renderer render.ReportRenderer
	started  time.Time
}

// Dependencies groups what the handlers need
type Dependencies struct {
	Catalog        catalog.CatalogServiceInterface
	Loggers        logging.LoggerFactory
	Metrics        *metrics.Metrics
	DB             Pinger
	AllowedOrigins []string
}

// NewHandler creates a Handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		catalog:  deps.Catalog,
		loggers:  deps.Loggers,
		metrics:  deps.Metrics,
		db:       deps.DB,
		renderer: render.NewTextRenderer(0),
		started:  time.Now(),
	}
}

func (h *Handler) requestLogger(r *http.Request) logging.Logger {
	if h.loggers == nil {
		return logging.NewNopLogger()
	}
	return h.loggers.CreateRequestLogger(r.Method, r.URL.Path, middleware.GetReqID(r.Context()))
}

// serviceError maps catalog errors onto status codes
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if v, ok := catalog.AsValidation(err); ok {
		badRequest(w, v.Error())
		return
	}
	if catalog.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.requestLogger(r).Error("Request failed", err, nil)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decode reads a JSON body into v
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// idParam parses a positive numeric route parameter
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

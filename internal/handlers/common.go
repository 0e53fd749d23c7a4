// Package handlers is the JSON surface the serve command exposes over
// the catalog store. The visual layer stays out of scope; these endpoints
// just hand it state.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/acorntide/shelfd/internal/actions"
	"github.com/acorntide/shelfd/internal/catalog"
	"github.com/acorntide/shelfd/internal/imageproxy"
	"github.com/acorntide/shelfd/internal/store"
)

type Handler struct {
	store     *store.Store
	actions   *actions.Actions
	proxy     *imageproxy.Handler
	proxyBase string
}

// New builds the handler set. proxyBase is the externally visible origin
// prefixed to rewritten cover URLs; empty means same-origin relative URLs.
func New(st *store.Store, acts *actions.Actions, proxyBase string) *Handler {
	return &Handler{
		store:     st,
		actions:   acts,
		proxy:     imageproxy.NewHandler(),
		proxyBase: proxyBase,
	}
}

// Register wires every route onto mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/books", h.HandleBooks)
	mux.HandleFunc("/api/books/", h.HandleBookDetail)
	mux.HandleFunc("/api/metadata/", h.HandleMetadata)
	mux.HandleFunc("/api/tags", h.HandleTags)
	mux.Handle("/proxy-image", h.proxy)
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeOperationError maps an operation failure to a response: upstream
// API failures keep their status, the local duplicate guard becomes a
// conflict, anything else is a bad gateway.
func (h *Handler) writeOperationError(w http.ResponseWriter, err error) {
	var apiErr *catalog.APIError
	switch {
	case errors.Is(err, actions.ErrDuplicateISBN):
		h.writeError(w, err.Error(), http.StatusConflict)
	case errors.As(err, &apiErr):
		h.writeError(w, apiErr.Error(), apiErr.Status)
	default:
		h.writeError(w, err.Error(), http.StatusBadGateway)
	}
}

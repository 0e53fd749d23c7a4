package handlers

import (
	"net/http"
	"strings"

	"github.com/acorntide/shelfd/internal/tags"
)

// HandleMetadata runs the ISBN lookup flow, including the local
// duplicate guard and the ISBN-10 to ISBN-13 upgrade.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	isbn := strings.TrimPrefix(r.URL.Path, "/api/metadata/")
	if isbn == "" {
		h.writeError(w, "Missing ISBN", http.StatusBadRequest)
		return
	}

	if err := h.actions.LookupISBN(r.Context(), isbn); err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeJSON(w, h.store.State().FetchedBookData)
}

// HandleTags serves the tag index for the current collection.
func (h *Handler) HandleTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.actions.FetchBooks(r.Context()); err != nil {
		h.writeOperationError(w, err)
		return
	}

	h.writeJSON(w, tags.Index(h.store.State().Books))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/imageproxy"
	"github.com/acorntide/shelfd/internal/query"
)

// HandleBooks serves the processed collection and accepts new records.
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		if err := h.actions.FetchBooks(r.Context()); err != nil {
			h.writeOperationError(w, err)
			return
		}

		opts := queryOptions(r)
		books := query.Process(h.store.State().Books, opts)
		for i := range books {
			books[i] = h.withCoverSrc(books[i])
		}
		h.writeJSON(w, books)
	case "POST":
		var b book.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		created, err := h.actions.AddBook(r.Context(), b)
		if err != nil {
			h.writeOperationError(w, err)
			return
		}
		h.writeJSON(w, created)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBookDetail serves one record and its update, delete and favorite
// operations.
func (h *Handler) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/books/")

	if favID, ok := strings.CutSuffix(rest, "/favorite"); ok {
		h.handleFavorite(w, r, favID)
		return
	}

	id := book.ParseID(rest)
	switch r.Method {
	case "GET":
		b, found := h.store.FindBook(id)
		if !found {
			h.writeError(w, "Book not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, h.withCoverSrc(b))
	case "PUT":
		var b book.Book
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		b.ID = id
		if err := h.actions.SaveBook(r.Context(), b); err != nil {
			h.writeOperationError(w, err)
			return
		}
		saved, _ := h.store.FindBook(id)
		h.writeJSON(w, saved)
	case "DELETE":
		if err := h.actions.DeleteBook(r.Context(), id); err != nil {
			h.writeOperationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleFavorite(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := book.ParseID(rawID)
	if err := h.actions.ToggleFavorite(r.Context(), id); err != nil {
		h.writeOperationError(w, err)
		return
	}

	b, _ := h.store.FindBook(id)
	h.writeJSON(w, b)
}

// withCoverSrc rewrites the cover to the best browse source: the proxy
// endpoint for hosts that block cross-origin loads, the bundled
// placeholder when the record has none. Write endpoints return the
// stored record untouched so round-trips keep the original URL.
func (h *Handler) withCoverSrc(b book.Book) book.Book {
	b.CoverURL = imageproxy.BestSrc(h.proxyBase, b.CoverURL, "")
	return b
}

func queryOptions(r *http.Request) query.Options {
	opts := query.Options{
		View:        query.ViewLibrary,
		Sort:        query.SortTitleAsc,
		SelectedTag: r.URL.Query().Get("tag"),
		SearchTerm:  r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("view"); v != "" {
		opts.View = query.View(v)
	}
	if s := r.URL.Query().Get("sort"); s != "" {
		opts.Sort = query.Sort(s)
	}
	if opts.SelectedTag != "" {
		opts.View = query.ViewTagFilter
	}
	return opts
}

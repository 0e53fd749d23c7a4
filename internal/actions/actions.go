// Package actions sequences the async catalog operations: each one flags
// loading on the store, calls the remote service, reconciles the result
// and always clears the loading flag again. Remote failures land in the
// store's error field; the same error is also returned so command-line
// callers can set an exit code.
package actions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/catalog"
	"github.com/acorntide/shelfd/internal/store"
)

// ErrDuplicateISBN is returned by LookupISBN when the typed ISBN already
// exists in the collection. It is a local precondition failure: no remote
// call is made and the store's error field stays untouched, so forms can
// show it inline.
var ErrDuplicateISBN = errors.New("a book with this ISBN is already in your collection")

// duplicateMessage is the user-facing rewrite for uniqueness conflicts
// reported by the API during add.
const duplicateMessage = "This book already exists in your collection."

// Service is the remote catalog surface the operations need. Implemented
// by *catalog.Client.
type Service interface {
	FetchBooks(ctx context.Context) ([]book.Book, error)
	FetchMetadata(ctx context.Context, isbn string) (book.Book, error)
	CreateBook(ctx context.Context, payload map[string]any) (book.Book, error)
	UpdateBook(ctx context.Context, id book.ID, payload map[string]any) (book.Book, error)
	DeleteBook(ctx context.Context, id book.ID) error
}

// Actions binds the remote service to a store.
type Actions struct {
	store *store.Store
	svc   Service
}

// New returns the operation set for the given store and service.
func New(st *store.Store, svc Service) *Actions {
	return &Actions{store: st, svc: svc}
}

// begin marks the start of an operation: loading on, stale error cleared.
func (a *Actions) begin() {
	a.store.SetLoading(true)
	a.store.SetError("")
}

// finish always runs, so loading never sticks.
func (a *Actions) finish() {
	a.store.SetLoading(false)
}

// FetchBooks replaces the collection with the server's copy. On failure
// the current books are left untouched.
func (a *Actions) FetchBooks(ctx context.Context) error {
	a.begin()
	defer a.finish()

	books, err := a.svc.FetchBooks(ctx)
	if err != nil {
		a.store.SetError(err.Error())
		return err
	}

	a.store.ReplaceBooks(books)
	return nil
}

// LookupISBN fetches metadata for a typed ISBN and stores it as the
// fetched focus. If the collection already has a book with exactly that
// ISBN the lookup short-circuits with ErrDuplicateISBN before any remote
// call.
//
// When a 10-character ISBN resolves to a record carrying a different
// 13-character ISBN, a second lookup under the ISBN-13 usually yields a
// richer record (better cover art). If that refetch fails the first
// response is used instead.
func (a *Actions) LookupISBN(ctx context.Context, isbn string) error {
	if _, exists := a.store.FindByISBN(isbn); exists {
		return ErrDuplicateISBN
	}

	a.begin()
	defer a.finish()

	meta, err := a.svc.FetchMetadata(ctx, isbn)
	if err != nil {
		a.store.SetError(err.Error())
		return err
	}

	if len(isbn) == 10 && len(meta.ISBN) == 13 && meta.ISBN != isbn {
		better, err := a.svc.FetchMetadata(ctx, meta.ISBN)
		if err != nil {
			slog.Warn("ISBN-13 refetch failed, keeping first result", "isbn", isbn, "isbn13", meta.ISBN, "err", err)
		} else {
			meta = better
		}
	}

	a.store.SetFetched(&meta)
	return nil
}

// SaveBook persists b and reconciles the result: an existing record (id
// set) is updated, a new one created. On success the returned record is
// upserted and editing finishes atomically.
func (a *Actions) SaveBook(ctx context.Context, b book.Book) error {
	a.begin()
	defer a.finish()

	var saved book.Book
	var err error
	if b.ID.IsZero() {
		saved, err = a.svc.CreateBook(ctx, book.UpdatePayload(b))
	} else {
		saved, err = a.svc.UpdateBook(ctx, b.ID, book.UpdatePayload(b))
	}
	if err != nil {
		a.store.SetError(err.Error())
		return err
	}

	a.store.Upsert(saved)
	a.store.FinishEditing(saved)
	return nil
}

// AddBook creates a new record, returning the service's copy, and closes
// the modal on success. A uniqueness conflict from the API is rewritten
// to a friendlier message; every other failure surfaces as-is.
func (a *Actions) AddBook(ctx context.Context, b book.Book) (book.Book, error) {
	a.begin()
	defer a.finish()

	created, err := a.svc.CreateBook(ctx, book.CreatePayload(b))
	if err != nil {
		if catalog.IsDuplicate(err) {
			a.store.SetError(duplicateMessage)
		} else {
			a.store.SetError(err.Error())
		}
		return book.Book{}, err
	}

	a.store.Upsert(created)
	a.store.CloseModal()
	return created, nil
}

// DeleteBook removes the record remotely, then locally. The local copy is
// never removed optimistically: a failed delete leaves the collection
// untouched.
func (a *Actions) DeleteBook(ctx context.Context, id book.ID) error {
	a.begin()
	defer a.finish()

	if err := a.svc.DeleteBook(ctx, id); err != nil {
		a.store.SetError(err.Error())
		return err
	}

	a.store.Remove(id)
	a.store.CloseModal()
	return nil
}

// ToggleFavorite flips the favorite flag optimistically, then asks the
// server to confirm. On success the optimistic copy is replaced with the
// server's record; on failure the pre-toggle record is restored.
func (a *Actions) ToggleFavorite(ctx context.Context, id book.ID) error {
	a.begin()
	defer a.finish()

	prior, found := a.store.FindBook(id)
	if !found {
		err := errors.New("book not found: " + id.String())
		a.store.SetError(err.Error())
		return err
	}

	selected := a.store.State().SelectedBook
	selectedMatches := selected != nil && selected.ID.Equal(id)

	optimistic := prior
	optimistic.Favorite = !prior.Favorite

	apply := func(b book.Book) {
		a.store.Upsert(b)
		if selectedMatches {
			a.store.SetSelected(&b)
		}
	}

	return runOptimistic(
		func() { apply(optimistic) },
		func() error {
			saved, err := a.svc.UpdateBook(ctx, id, map[string]any{"favorite": optimistic.Favorite})
			if err != nil {
				return err
			}
			apply(saved)
			return nil
		},
		func(err error) {
			apply(prior)
			a.store.SetError(err.Error())
		},
	)
}

// runOptimistic is the shared shape for optimistic updates: snapshot
// before (captured by the closures), apply locally, then commit against
// the server or revert. New optimistic operations should reuse this
// rather than hand-rolling snapshot logic.
func runOptimistic(apply func(), commit func() error, revert func(error)) error {
	apply()
	if err := commit(); err != nil {
		revert(err)
		return err
	}
	return nil
}

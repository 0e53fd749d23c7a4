// Package store holds the authoritative in-memory catalog plus the
// session state driving the browsing surface. All mutation goes through
// the Store's methods; readers get snapshot copies.
package store

import (
	"sync"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/query"
)

// State is the complete session state. Every read returns a copy, so a
// holder can never mutate the store through it.
type State struct {
	Books           []book.Book
	SelectedBook    *book.Book
	EditingBook     *book.Book
	FetchedBookData *book.Book
	ShowModal       bool
	IsLoading       bool
	Err             string
	RailExpanded    bool
	SortOrder       query.Sort
	SearchTerm      string
	CurrentView     query.View
	SelectedTag     string
}

// Mode is the modal mode derived from the focus objects.
type Mode string

const (
	ModeAdd        Mode = "add"
	ModeDetail     Mode = "detail"
	ModeEdit       Mode = "edit"
	ModeEditForAdd Mode = "edit-for-add"
)

// Mode derives the modal mode from the focus objects. An in-progress edit
// wins over a pending metadata fetch, which wins over a selected book,
// which defaults to adding a new record. Derived on every read, never
// stored.
func (s State) Mode() Mode {
	switch {
	case s.EditingBook != nil:
		return ModeEdit
	case s.FetchedBookData != nil:
		if s.SelectedBook != nil {
			return ModeDetail
		}
		return ModeEditForAdd
	case s.SelectedBook != nil:
		return ModeDetail
	default:
		return ModeAdd
	}
}

// Subscriber receives a state snapshot after every transition.
type Subscriber func(State)

// Store is the single state container for an application session.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []Subscriber
}

// New returns a Store with the initial session state.
func New() *Store {
	return &Store{
		state: State{
			Books:       []book.Book{},
			SortOrder:   query.SortTitleAsc,
			CurrentView: query.ViewLibrary,
		},
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

// Subscribe registers fn to be called with a snapshot after every state
// transition. Each transition produces exactly one notification, so a
// subscriber never observes an intermediate state.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// FindBook looks up a book by identifier in the current collection.
func (s *Store) FindBook(id book.ID) (book.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.state.Books {
		if b.ID.Equal(id) {
			return b, true
		}
	}
	return book.Book{}, false
}

// FindByISBN looks up a book by exact ISBN string match.
func (s *Store) FindByISBN(isbn string) (book.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.state.Books {
		if b.ISBN == isbn {
			return b, true
		}
	}
	return book.Book{}, false
}

// ReplaceBooks swaps in the full collection, wholesale.
func (s *Store) ReplaceBooks(books []book.Book) {
	s.apply(func(st *State) {
		st.Books = cloneBooks(books)
	})
}

// Upsert inserts or replaces one book, matched by identifier. An existing
// entry is replaced in place; a new one is prepended, so freshly synced
// records show first.
func (s *Store) Upsert(b book.Book) {
	s.apply(func(st *State) {
		for i := range st.Books {
			if st.Books[i].ID.Equal(b.ID) {
				st.Books[i] = b
				return
			}
		}
		st.Books = append([]book.Book{b}, st.Books...)
	})
}

// Remove deletes the book with the given identifier, if present.
func (s *Store) Remove(id book.ID) {
	s.apply(func(st *State) {
		out := st.Books[:0:0]
		for _, b := range st.Books {
			if !b.ID.Equal(id) {
				out = append(out, b)
			}
		}
		st.Books = out
	})
}

// SetSelected opens (or with nil closes) the detail focus.
func (s *Store) SetSelected(b *book.Book) {
	s.apply(func(st *State) { st.SelectedBook = cloneRef(b) })
}

// SetEditing opens (or with nil closes) the edit focus.
func (s *Store) SetEditing(b *book.Book) {
	s.apply(func(st *State) { st.EditingBook = cloneRef(b) })
}

// SetFetched stores metadata returned from an ISBN lookup.
func (s *Store) SetFetched(b *book.Book) {
	s.apply(func(st *State) { st.FetchedBookData = cloneRef(b) })
}

// FinishEditing atomically leaves edit mode and selects the saved book.
// A single transition: no subscriber can observe the edit focus cleared
// without the selection set.
func (s *Store) FinishEditing(b book.Book) {
	s.apply(func(st *State) {
		st.EditingBook = nil
		st.SelectedBook = cloneRef(&b)
	})
}

// CloseModal clears every focus object and hides the modal in one
// transition.
func (s *Store) CloseModal() {
	s.apply(func(st *State) {
		st.ShowModal = false
		st.SelectedBook = nil
		st.EditingBook = nil
		st.FetchedBookData = nil
	})
}

// SetShowModal toggles modal visibility.
func (s *Store) SetShowModal(show bool) {
	s.apply(func(st *State) { st.ShowModal = show })
}

// SetLoading flags the single outstanding async operation.
func (s *Store) SetLoading(loading bool) {
	s.apply(func(st *State) { st.IsLoading = loading })
}

// SetError records the user-visible error message. An empty string
// clears it.
func (s *Store) SetError(msg string) {
	s.apply(func(st *State) { st.Err = msg })
}

// SetRailExpanded toggles the navigation rail.
func (s *Store) SetRailExpanded(expanded bool) {
	s.apply(func(st *State) { st.RailExpanded = expanded })
}

// SetSortOrder changes the display ordering.
func (s *Store) SetSortOrder(order query.Sort) {
	s.apply(func(st *State) { st.SortOrder = order })
}

// SetSearchTerm updates the search filter input.
func (s *Store) SetSearchTerm(term string) {
	s.apply(func(st *State) { st.SearchTerm = term })
}

// SetView switches the navigation view. Switching to any view other than
// the tags overview drops the selected tag.
func (s *Store) SetView(view query.View) {
	s.apply(func(st *State) {
		st.CurrentView = view
		if view != query.ViewTags {
			st.SelectedTag = ""
		}
	})
}

// SelectTag picks a tag to browse, forcing the tag-filter view.
func (s *Store) SelectTag(tag string) {
	s.apply(func(st *State) {
		st.SelectedTag = tag
		st.CurrentView = query.ViewTagFilter
	})
}

// apply runs one state transition under the lock, then notifies
// subscribers with the resulting snapshot.
func (s *Store) apply(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := snapshot(s.state)
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func snapshot(st State) State {
	out := st
	out.Books = cloneBooks(st.Books)
	out.SelectedBook = cloneRef(st.SelectedBook)
	out.EditingBook = cloneRef(st.EditingBook)
	out.FetchedBookData = cloneRef(st.FetchedBookData)
	return out
}

func cloneBooks(books []book.Book) []book.Book {
	out := make([]book.Book, len(books))
	copy(out, books)
	return out
}

func cloneRef(b *book.Book) *book.Book {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

package query

import (
	"reflect"
	"testing"

	"github.com/acorntide/shelfd/internal/book"
)

func sampleBooks() []book.Book {
	return []book.Book{
		{ID: book.NumericID(1), ISBN: "A", Title: "Zed", Authors: []string{"X"}},
		{ID: book.NumericID(2), ISBN: "B", Title: "Alpha", Authors: []string{"Y"}},
	}
}

func titles(books []book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func TestProcessSortsByTitle(t *testing.T) {
	got := Process(sampleBooks(), Options{
		View: ViewLibrary,
		Sort: SortTitleAsc,
	})

	if !reflect.DeepEqual(titles(got), []string{"Alpha", "Zed"}) {
		t.Errorf("Expected [Alpha Zed], got %v", titles(got))
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	in := sampleBooks()
	original := make([]book.Book, len(in))
	copy(original, in)

	_ = Process(in, Options{View: ViewLibrary, Sort: SortTitleAsc})

	for i := range in {
		if in[i].Title != original[i].Title || in[i].ID != original[i].ID {
			t.Fatalf("Process mutated its input at index %d: %#v", i, in[i])
		}
	}
}

func TestSortOptions(t *testing.T) {
	books := []book.Book{
		{Title: "Beta", Authors: []string{"Zimmer"}},
		{Title: "Alpha", Authors: []string{"Adams"}},
		{Title: "Gamma"},
	}

	tests := []struct {
		name     string
		order    Sort
		expected []string
	}{
		{"title asc", SortTitleAsc, []string{"Alpha", "Beta", "Gamma"}},
		{"title desc", SortTitleDesc, []string{"Gamma", "Beta", "Alpha"}},
		{"author asc, missing author sorts first", SortAuthorAsc, []string{"Gamma", "Alpha", "Beta"}},
		{"author desc", SortAuthorDesc, []string{"Beta", "Alpha", "Gamma"}},
		{"unknown order passes through", Sort("shuffle"), []string{"Beta", "Alpha", "Gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortBooks(books, tt.order)
			if !reflect.DeepEqual(titles(got), tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, titles(got))
			}
		})
	}
}

func TestSearchThreshold(t *testing.T) {
	books := []book.Book{
		{Title: "Dune", Authors: []string{"Frank Herbert"}},
		{Title: "Emma", Authors: []string{"Jane Austen"}},
		{Title: "日本文学全集", Authors: []string{"池澤夏樹"}},
	}

	// The threshold counts characters, not bytes, so short multibyte
	// terms must not filter either.
	for _, term := range []string{"", "d", "du", "dun", "日本", "日本文"} {
		got := Process(books, Options{View: ViewLibrary, SearchTerm: term, Sort: SortTitleAsc})
		base := Process(books, Options{View: ViewLibrary, SearchTerm: "", Sort: SortTitleAsc})
		if !reflect.DeepEqual(titles(got), titles(base)) {
			t.Errorf("Term %q below threshold should not filter: got %v", term, titles(got))
		}
	}

	tests := []struct {
		term     string
		expected []string
	}{
		{"dune", []string{"Dune"}},
		{"日本文学", []string{"日本文学全集"}},
	}
	for _, tt := range tests {
		got := Process(books, Options{View: ViewLibrary, SearchTerm: tt.term, Sort: SortTitleAsc})
		if !reflect.DeepEqual(titles(got), tt.expected) {
			t.Errorf("Term %q: expected %v, got %v", tt.term, tt.expected, titles(got))
		}
	}
}

func TestSearchFields(t *testing.T) {
	books := []book.Book{
		{Title: "One", Description: "a sandworm story"},
		{Title: "Two", Authors: []string{"Ursula K. Le Guin"}},
		{Title: "Three", Categories: []string{"Philosophy"}},
		{Title: "Four", Tags: []string{"favorites-2024"}},
		{Title: "Five"},
	}

	tests := []struct {
		term     string
		expected []string
	}{
		{"sandworm", []string{"One"}},
		{"le guin", []string{"Two"}},
		{"philosophy", []string{"Three"}},
		{"favorites-2024", []string{"Four"}},
		{"nothing matches this", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := FilterBySearch(books, tt.term)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(titles(got), tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, titles(got))
			}
		})
	}
}

func TestViewFilters(t *testing.T) {
	books := []book.Book{
		{Title: "Fav", Favorite: true, Tags: []string{"history"}},
		{Title: "Plain"},
	}

	t.Run("favorites view", func(t *testing.T) {
		got := FilterByView(books, ViewFavorites, "")
		if !reflect.DeepEqual(titles(got), []string{"Fav"}) {
			t.Errorf("Expected [Fav], got %v", titles(got))
		}
	})

	t.Run("tag filter is case-insensitive", func(t *testing.T) {
		got := Process(books, Options{View: ViewTagFilter, SelectedTag: "History", Sort: SortTitleAsc})
		if !reflect.DeepEqual(titles(got), []string{"Fav"}) {
			t.Errorf("Expected [Fav], got %v", titles(got))
		}
	})

	t.Run("tag filter without a tag yields empty", func(t *testing.T) {
		got := Process(books, Options{View: ViewTagFilter, SelectedTag: "", Sort: SortTitleAsc})
		if len(got) != 0 {
			t.Errorf("Expected empty result, got %v", titles(got))
		}
	})

	t.Run("tags view passes through", func(t *testing.T) {
		got := FilterByView(books, ViewTags, "")
		if len(got) != len(books) {
			t.Errorf("Expected all books, got %v", titles(got))
		}
	})
}

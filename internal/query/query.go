// Package query implements the pure pipeline that turns the raw catalog
// into the displayed list: normalize, view filter, search filter, sort.
// No stage mutates its input.
package query

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/acorntide/shelfd/internal/book"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View is a top-level navigation mode controlling which subset of the
// catalog is shown.
type View string

const (
	ViewLibrary   View = "library"
	ViewFavorites View = "favorites"
	ViewTags      View = "tags"
	ViewTagFilter View = "tag-filter"
)

// Sort selects the display ordering.
type Sort string

const (
	SortTitleAsc   Sort = "title-asc"
	SortTitleDesc  Sort = "title-desc"
	SortAuthorAsc  Sort = "author-asc"
	SortAuthorDesc Sort = "author-desc"
)

// minSearchLen gates the search filter: shorter terms are treated as no
// filter at all, so the list does not flicker while a term is being typed.
const minSearchLen = 4

// Options are the query parameters for Process.
type Options struct {
	View        View
	SelectedTag string // only meaningful when View == ViewTagFilter
	SearchTerm  string
	Sort        Sort
}

// Process derives the displayed list from the full catalog.
func Process(books []book.Book, opts Options) []book.Book {
	normalized := make([]book.Book, 0, len(books))
	for _, b := range books {
		normalized = append(normalized, book.Normalize(b))
	}

	filtered := FilterByView(normalized, opts.View, opts.SelectedTag)
	filtered = FilterBySearch(filtered, opts.SearchTerm)
	return SortBooks(filtered, opts.Sort)
}

// FilterByView keeps the books the current navigation view shows. The
// library and tags views pass everything through.
func FilterByView(books []book.Book, view View, selectedTag string) []book.Book {
	switch view {
	case ViewFavorites:
		out := make([]book.Book, 0, len(books))
		for _, b := range books {
			if b.Favorite {
				out = append(out, b)
			}
		}
		return out
	case ViewTagFilter:
		out := make([]book.Book, 0, len(books))
		if selectedTag == "" {
			return out
		}
		for _, b := range books {
			if b.HasTag(selectedTag) {
				out = append(out, b)
			}
		}
		return out
	default:
		out := make([]book.Book, len(books))
		copy(out, books)
		return out
	}
}

// FilterBySearch keeps books whose title, any author, description, any
// category or any tag contains the lower-cased term. Terms shorter than
// four characters disable the filter.
func FilterBySearch(books []book.Book, searchTerm string) []book.Book {
	if utf8.RuneCountInString(searchTerm) < minSearchLen {
		out := make([]book.Book, len(books))
		copy(out, books)
		return out
	}

	term := strings.ToLower(searchTerm)
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if matchesTerm(b, term) {
			out = append(out, b)
		}
	}
	return out
}

func matchesTerm(b book.Book, term string) bool {
	if strings.Contains(strings.ToLower(b.Title), term) {
		return true
	}
	for _, a := range b.Authors {
		if strings.Contains(strings.ToLower(a), term) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(b.Description), term) {
		return true
	}
	for _, c := range b.Categories {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	for _, t := range b.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// SortBooks orders books by the given sort option using locale-aware
// string comparison. Unrecognized options return the books unsorted.
func SortBooks(books []book.Book, order Sort) []book.Book {
	out := make([]book.Book, len(books))
	copy(out, books)

	collator := collate.New(language.English)

	switch order {
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[j].Title, out[i].Title) < 0
		})
	case SortAuthorAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].PrimaryAuthor(), out[j].PrimaryAuthor()) < 0
		})
	case SortAuthorDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[j].PrimaryAuthor(), out[i].PrimaryAuthor()) < 0
		})
	}

	return out
}

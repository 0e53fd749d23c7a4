// Package tags derives tag views from the catalog. Tag identity is
// case-insensitive; the index always works on lower-cased names.
package tags

import (
	"sort"
	"strings"

	"github.com/acorntide/shelfd/internal/book"
)

// All returns every unique tag in the collection, lower-cased and sorted.
func All(books []book.Book) []string {
	seen := make(map[string]struct{})
	for _, b := range books {
		for _, t := range b.Tags {
			if t == "" {
				continue
			}
			seen[strings.ToLower(t)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Count returns how many books carry the given tag.
func Count(books []book.Book, tag string) int {
	n := 0
	for _, b := range books {
		if b.HasTag(tag) {
			n++
		}
	}
	return n
}

// Entry pairs a tag with the number of books carrying it.
type Entry struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// Index returns the sorted tag list with per-tag counts.
func Index(books []book.Book) []Entry {
	all := All(books)
	out := make([]Entry, 0, len(all))
	for _, t := range all {
		out = append(out, Entry{Tag: t, Count: Count(books, t)})
	}
	return out
}

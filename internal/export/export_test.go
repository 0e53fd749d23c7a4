package export

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/acorntide/shelfd/internal/book"
)

func sampleBooks() []book.Book {
	return []book.Book{
		book.Normalize(book.Book{
			ID:       book.NumericID(1),
			ISBN:     "9780441172719",
			Title:    "Dune",
			Authors:  []string{"Frank Herbert"},
			Tags:     []string{"sci-fi"},
			Favorite: true,
		}),
		book.Normalize(book.Book{
			ID:      book.StringID("b-2"),
			ISBN:    "9780141439518",
			Title:   "Pride and Prejudice",
			Authors: []string{"Jane Austen"},
			Unread:  true,
		}),
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	in := sampleBooks()

	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Errorf("Round trip changed the catalog:\nin:  %#v\nout: %#v", in, out)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")
	in := sampleBooks()

	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("Expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		if in[i].Title != out[i].Title || !in[i].ID.Equal(out[i].ID) || in[i].Favorite != out[i].Favorite {
			t.Errorf("Record %d changed: %#v vs %#v", i, in[i], out[i])
		}
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if err := WriteFile("catalog.csv", nil); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
	if _, err := ReadFile("catalog.csv"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}

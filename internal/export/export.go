// Package export moves the catalog in and out of flat files. Parquet and
// JSONL are supported in both directions.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/parquet-go/parquet-go"
)

// Record is the flat, file-friendly form of a catalog entry.
type Record struct {
	ID            string   `json:"id" parquet:"id"`
	ISBN          string   `json:"isbn" parquet:"isbn"`
	Title         string   `json:"title" parquet:"title"`
	Authors       []string `json:"authors" parquet:"authors,list"`
	Publisher     string   `json:"publisher" parquet:"publisher"`
	PublishedDate string   `json:"publishedDate" parquet:"published_date"`
	CoverURL      string   `json:"cover_url" parquet:"cover_url"`
	Description   string   `json:"description" parquet:"description"`
	Categories    []string `json:"categories" parquet:"categories,list"`
	Tags          []string `json:"tags" parquet:"tags,list"`
	Favorite      bool     `json:"favorite" parquet:"favorite"`
	Unread        bool     `json:"unread" parquet:"unread"`
}

func fromBook(b book.Book) Record {
	b = book.Normalize(b)
	return Record{
		ID:            b.ID.String(),
		ISBN:          b.ISBN,
		Title:         b.Title,
		Authors:       b.Authors,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		CoverURL:      b.CoverURL,
		Description:   b.Description,
		Categories:    b.Categories,
		Tags:          b.Tags,
		Favorite:      b.Favorite,
		Unread:        b.Unread,
	}
}

func (r Record) toBook() book.Book {
	return book.Normalize(book.Book{
		ID:            book.ParseID(r.ID),
		ISBN:          r.ISBN,
		Title:         r.Title,
		Authors:       r.Authors,
		Publisher:     r.Publisher,
		PublishedDate: r.PublishedDate,
		CoverURL:      r.CoverURL,
		Description:   r.Description,
		Categories:    r.Categories,
		Tags:          r.Tags,
		Favorite:      r.Favorite,
		Unread:        r.Unread,
	})
}

// WriteFile writes the catalog to path, picking the format from the file
// extension.
func WriteFile(path string, books []book.Book) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(path, books)
	case ".jsonl", ".json":
		return writeJSONL(path, books)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// ReadFile loads a catalog file previously written by WriteFile.
func ReadFile(path string) ([]book.Book, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return readParquet(path)
	case ".jsonl", ".json":
		return readJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet(path string, books []book.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Record](file)
	records := make([]Record, 0, len(books))
	for _, b := range books {
		records = append(records, fromBook(b))
	}
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}

	slog.Debug("Wrote parquet export", "path", path, "records", len(records))
	return nil
}

func readParquet(path string) ([]book.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var books []book.Book
	rows := make([]Record, 128)
	for {
		n, err := reader.Read(rows)
		for _, rec := range rows[:n] {
			books = append(books, rec.toBook())
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Read parquet file", "path", path, "records", len(books))
	return books, nil
}

func writeJSONL(path string, books []book.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, b := range books {
		if err := enc.Encode(fromBook(b)); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return w.Flush()
}

func readJSONL(path string) ([]book.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var books []book.Book
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		books = append(books, rec.toBook())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return books, nil
}

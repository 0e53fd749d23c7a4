package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acorntide/shelfd/internal/actions"
	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/catalog"
	"github.com/acorntide/shelfd/internal/imageproxy"
	"github.com/acorntide/shelfd/internal/store"
)

// newTestSurface wires the handler against a stub remote catalog.
func newTestSurface(t *testing.T, remote http.HandlerFunc) (*httptest.Server, *store.Store) {
	t.Helper()

	upstream := httptest.NewServer(remote)
	t.Cleanup(upstream.Close)

	st := store.New()
	acts := actions.New(st, catalog.NewClient(upstream.URL))

	mux := http.NewServeMux()
	New(st, acts, "").Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func TestGetBooksAppliesQueryParameters(t *testing.T) {
	srv, _ := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"isbn":"A","title":"Zed","authors":["X"],"favorite":true},
			{"id":2,"isbn":"B","title":"Alpha","authors":["Y"]}
		]`)
	})

	resp, err := http.Get(srv.URL + "/api/books?view=favorites&sort=title-asc")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var books []book.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Zed" {
		t.Errorf("Expected only the favorite, got %#v", books)
	}
}

func TestGetBooksRewritesHostileCoverHosts(t *testing.T) {
	srv, _ := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"isbn":"A","title":"Blocked","cover_url":"https://images.gr-assets.com/books/1.jpg"},
			{"id":2,"isbn":"B","title":"Fine","cover_url":"https://example.com/2.jpg"},
			{"id":3,"isbn":"C","title":"Bare"}
		]`)
	})

	resp, err := http.Get(srv.URL + "/api/books?sort=title-asc")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var books []book.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	covers := map[string]string{}
	for _, b := range books {
		covers[b.Title] = b.CoverURL
	}
	if got := covers["Blocked"]; !strings.HasPrefix(got, "/proxy-image?url=") {
		t.Errorf("Expected hostile host routed through the proxy, got %q", got)
	}
	if got := covers["Fine"]; got != "https://example.com/2.jpg" {
		t.Errorf("Expected friendly host untouched, got %q", got)
	}
	if got := covers["Bare"]; got != imageproxy.DefaultFallback {
		t.Errorf("Expected placeholder for missing cover, got %q", got)
	}
}

func TestPostBookRewritesDuplicateConflict(t *testing.T) {
	srv, _ := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, "duplicate isbn")
	})

	resp, err := http.Post(srv.URL+"/api/books", "application/json", strings.NewReader(`{"isbn":"A","title":"T"}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected upstream status passed through, got %d", resp.StatusCode)
	}
}

func TestMetadataDuplicateGuardReturnsConflict(t *testing.T) {
	var remoteCalls int
	srv, st := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		remoteCalls++
		fmt.Fprint(w, `{}`)
	})

	st.ReplaceBooks([]book.Book{{ID: book.NumericID(1), ISBN: "0441172717"}})

	resp, err := http.Get(srv.URL + "/api/metadata/0441172717")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for a local duplicate, got %d", resp.StatusCode)
	}
	if remoteCalls != 0 {
		t.Errorf("Remote service must not be called, got %d calls", remoteCalls)
	}
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	srv, st := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT to remote, got %s", r.Method)
		}
		fmt.Fprint(w, `{"id":5,"isbn":"A","title":"Dune","authors":[],"favorite":true}`)
	})

	st.ReplaceBooks([]book.Book{{ID: book.NumericID(5), ISBN: "A", Title: "Dune"}})

	resp, err := http.Post(srv.URL+"/api/books/5/favorite", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	var b book.Book
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !b.Favorite {
		t.Errorf("Expected favorite set, got %#v", b)
	}
	if got, _ := st.FindBook(book.NumericID(5)); !got.Favorite {
		t.Error("Expected store reconciled with server copy")
	}
}

func TestDeleteBookEndpoint(t *testing.T) {
	srv, st := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	st.ReplaceBooks([]book.Book{{ID: book.NumericID(3), Title: "Gone"}})

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/books/3", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
	if len(st.State().Books) != 0 {
		t.Error("Expected book removed from store")
	}
}

func TestTagsEndpoint(t *testing.T) {
	srv, _ := newTestSurface(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"isbn":"A","title":"T1","authors":[],"tags":["Sci-Fi"]},
			{"id":2,"isbn":"B","title":"T2","authors":[],"tags":["sci-fi","History"]}
		]`)
	})

	resp, err := http.Get(srv.URL + "/api/tags")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var entries []struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 2 || entries[1].Tag != "sci-fi" || entries[1].Count != 2 {
		t.Errorf("Unexpected tag index: %#v", entries)
	}
}

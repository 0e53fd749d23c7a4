package book

import "strings"

// Book represents one catalog entry. The shape matches the record the
// shelf API returns from GET /books and GET /metadata/{isbn}.
type Book struct {
	ID            ID       `json:"id,omitzero" yaml:"id"`
	ISBN          string   `json:"isbn" yaml:"isbn"`
	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors" yaml:"authors"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty" yaml:"publishedDate,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Favorite      bool     `json:"favorite" yaml:"favorite"`
	Unread        bool     `json:"unread" yaml:"unread"`
}

// Normalize returns a copy of b with consistent defaults: authors,
// categories and tags are always non-nil slices and slice data is never
// shared with the input. Normalize is pure and idempotent.
func Normalize(b Book) Book {
	b.Authors = cloneOrEmpty(b.Authors)
	b.Categories = cloneOrEmpty(b.Categories)
	b.Tags = cloneOrEmpty(b.Tags)
	return b
}

func cloneOrEmpty(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// HasTag reports whether b carries tag under case-insensitive comparison.
func (b Book) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PrimaryAuthor returns the first author, or the empty string.
func (b Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}

// DisplayAuthors returns the comma-joined author list for display.
func (b Book) DisplayAuthors() string {
	if len(b.Authors) == 0 {
		return "Unknown Author"
	}
	return strings.Join(b.Authors, ", ")
}

// UpdatePayload builds the partial body for PUT /books/{id}: only fields
// with a value are included and the id is never part of the payload.
func UpdatePayload(b Book) map[string]any {
	payload := map[string]any{
		"favorite": b.Favorite,
		"unread":   b.Unread,
	}
	putString(payload, "isbn", b.ISBN)
	putString(payload, "title", b.Title)
	putString(payload, "publisher", b.Publisher)
	putString(payload, "publishedDate", b.PublishedDate)
	putString(payload, "cover_url", b.CoverURL)
	putString(payload, "description", b.Description)
	putSlice(payload, "authors", b.Authors)
	putSlice(payload, "categories", b.Categories)
	putSlice(payload, "tags", b.Tags)
	return payload
}

// CreatePayload builds the body for POST /books. Same rules as
// UpdatePayload except cover_url is always present, empty or not, because
// the API requires the field on create.
func CreatePayload(b Book) map[string]any {
	payload := UpdatePayload(b)
	payload["cover_url"] = b.CoverURL
	return payload
}

func putString(payload map[string]any, key, value string) {
	if value != "" {
		payload[key] = value
	}
}

func putSlice(payload map[string]any, key string, values []string) {
	if len(values) > 0 {
		payload[key] = values
	}
}

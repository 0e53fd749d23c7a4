package book

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the opaque identifier the shelf API assigns to a book. The API is
// free to use either JSON numbers or strings, so ID keeps the decoded text
// and remembers which form it arrived in. Equality is always by the string
// form. The zero ID marks a record that has not been persisted yet.
type ID struct {
	text    string
	numeric bool
}

// NumericID returns an ID holding a JSON number.
func NumericID(n int64) ID {
	return ID{text: strconv.FormatInt(n, 10), numeric: true}
}

// StringID returns an ID holding a JSON string.
func StringID(s string) ID {
	return ID{text: s}
}

// ParseID interprets raw as a numeric ID when it looks like an integer,
// otherwise as a string ID. Used for identifiers typed on the command line.
func ParseID(raw string) ID {
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ID{text: raw, numeric: true}
	}
	return ID{text: raw}
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id.text == ""
}

func (id ID) String() string {
	return id.text
}

// Equal compares identifiers by their string form, matching records
// regardless of whether the API sent a number or a string.
func (id ID) Equal(other ID) bool {
	return id.text == other.text
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.text), nil
	}
	return json.Marshal(id.text)
}

// MarshalYAML keeps the number-or-string distinction in YAML output too.
func (id ID) MarshalYAML() (any, error) {
	if id.numeric {
		if n, err := strconv.ParseInt(id.text, 10, 64); err == nil {
			return n, nil
		}
	}
	return id.text, nil
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode book id: %w", err)
		}
		*id = ID{text: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode book id: %w", err)
	}
	*id = ID{text: n.String(), numeric: true}
	return nil
}

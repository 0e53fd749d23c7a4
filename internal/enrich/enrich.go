// Package enrich fills gaps in a catalog record (description, categories)
// using Google Gemini. Best effort: existing fields are never overwritten.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// Enricher generates supplemental metadata for catalog records.
type Enricher struct {
	model string
}

// New returns an Enricher for the given model name. An empty name uses
// GEMINI_MODEL or the package default.
func New(model string) *Enricher {
	if model == "" {
		model = os.Getenv("GEMINI_MODEL")
	}
	if model == "" {
		model = defaultModel
	}
	return &Enricher{model: model}
}

// suggestion is the JSON shape the model is asked for.
type suggestion struct {
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// Enrich returns a copy of b with an empty description and empty category
// list filled in from the model. Fields that already have a value are
// left alone.
func (e *Enricher) Enrich(ctx context.Context, b book.Book) (book.Book, error) {
	b = book.Normalize(b)
	if b.Description != "" && len(b.Categories) > 0 {
		return b, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return b, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return b, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(e.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(b)))
	if err != nil {
		return b, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := candidateText(resp)
	if err != nil {
		return b, err
	}

	sug, err := parseSuggestion(text)
	if err != nil {
		return b, err
	}

	if b.Description == "" {
		b.Description = sug.Description
	}
	if len(b.Categories) == 0 && len(sug.Categories) > 0 {
		b.Categories = sug.Categories
	}
	return b, nil
}

func buildPrompt(b book.Book) string {
	var sb strings.Builder
	sb.WriteString("You are a librarian. For the following book, reply with a JSON object ")
	sb.WriteString(`{"description": "...", "categories": ["..."]}: `)
	sb.WriteString("a two-sentence neutral description and up to three subject categories.\n")
	fmt.Fprintf(&sb, "Title: %s\n", b.Title)
	if len(b.Authors) > 0 {
		fmt.Fprintf(&sb, "Authors: %s\n", strings.Join(b.Authors, ", "))
	}
	if b.ISBN != "" {
		fmt.Fprintf(&sb, "ISBN: %s\n", b.ISBN)
	}
	if b.Publisher != "" {
		fmt.Fprintf(&sb, "Publisher: %s\n", b.Publisher)
	}
	return sb.String()
}

func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}
	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}
	return "", fmt.Errorf("unexpected response format from Gemini")
}

// parseSuggestion tolerates markdown code fences around the JSON body.
func parseSuggestion(text string) (suggestion, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	var sug suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &sug); err != nil {
		return suggestion{}, fmt.Errorf("failed to parse model response: %w", err)
	}
	return sug, nil
}

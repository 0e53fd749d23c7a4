package imageproxy

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Handler streams cover images from the allowed hosts, so the browsing
// surface never hits their CORS restrictions directly.
type Handler struct {
	httpClient *http.Client
}

// NewHandler creates a proxy handler with the default fetch timeout.
func NewHandler() *Handler {
	return &Handler{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		http.Error(w, "Missing url parameter", http.StatusBadRequest)
		return
	}
	if !IsAllowed(rawURL) {
		http.Error(w, "Domain not allowed", http.StatusForbidden)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		http.Error(w, "Invalid image URL", http.StatusBadRequest)
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to fetch proxied image", "url", rawURL, "err", err)
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		http.Error(w, "Upstream returned "+resp.Status, http.StatusBadGateway)
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Error("Failed to stream proxied image", "url", rawURL, "err", err)
	}
}

// Package imageproxy decides where a cover image should be loaded from.
// A handful of image hosts refuse cross-origin requests, so URLs on those
// hosts are rewritten to go through the local proxy endpoint instead.
package imageproxy

import (
	"net/url"
	"strings"
)

// DefaultFallback is the bundled placeholder used when a book has no
// usable cover source.
const DefaultFallback = "/static/images/default-cover.svg"

// problematicDomains lists hosts (or host/path prefixes) known to block
// cross-origin image loads.
var problematicDomains = []string{
	"images-na.ssl-images-amazon.com",
	"images.gr-assets.com",
	"s.gr-assets.com",
	"books.google.com/books/content",
}

// allowedProxyDomains is the closed set of hosts the proxy will fetch
// from. Everything else is refused, proxying arbitrary URLs is not a
// feature.
var allowedProxyDomains = []string{
	"books.google.com",
	"images-na.ssl-images-amazon.com",
	"images.gr-assets.com",
	"s.gr-assets.com",
	"lh3.googleusercontent.com",
	"books.googleusercontent.com",
}

// IsProblematic reports whether rawURL points at a host that commonly
// blocks cross-origin image loads.
func IsProblematic(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http") {
		return false
	}
	for _, domain := range problematicDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}

// IsAllowed reports whether rawURL may be fetched through the proxy.
func IsAllowed(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http") {
		return false
	}
	for _, domain := range allowedProxyDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}

// ProxyURL rewrites rawURL to the proxy endpoint under proxyBase.
// Non-HTTP sources are returned unchanged.
func ProxyURL(proxyBase, rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		return rawURL
	}
	return proxyBase + "/proxy-image?url=" + url.QueryEscape(rawURL)
}

// BestSrc picks the source to load a cover from: the fallback when the
// original is empty or not an HTTP URL, the proxy for known hostile
// hosts, and the original otherwise. An empty fallback selects
// DefaultFallback.
func BestSrc(proxyBase, original, fallback string) string {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if !strings.HasPrefix(original, "http") {
		if original == "" {
			return fallback
		}
		return original
	}
	if IsProblematic(original) {
		return ProxyURL(proxyBase, original)
	}
	return original
}

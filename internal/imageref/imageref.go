// Package imageref decides how product image URLs are persisted and rendered.
//
// Images hosted in the app's own Supabase storage are stored as the opaque
// marker "[SUPABASE]" instead of a live URL, so records survive storage URL
// changes and cache-busting. External URLs (e.g. Open Food Facts images) are
// stored verbatim.
package imageref

import (
	"fmt"
	"strings"
)

// Marker is the sentinel stored in place of a platform-hosted image URL.
const Marker = "[SUPABASE]"

const objectPath = "/storage/v1/object/"

// Abstract returns the value to persist for imageURL. Platform storage URLs
// collapse to Marker, the marker itself passes through, everything else is
// stored unchanged. Idempotent: Abstract(Abstract(u)) == Abstract(u).
func Abstract(imageURL, supabaseURL string) string {
	if imageURL == Marker {
		return Marker
	}
	if supabaseURL != "" &&
		strings.HasPrefix(imageURL, strings.TrimRight(supabaseURL, "/")) &&
		strings.Contains(imageURL, objectPath) {
		return Marker
	}
	return imageURL
}

// PublicURL builds the public storage URL for a product's image object.
// Objects are keyed by the canonical barcode.
func PublicURL(supabaseURL, bucket, ean13 string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s.jpg",
		strings.TrimRight(supabaseURL, "/"), bucket, ean13)
}

// Resolve maps a stored image reference to a client-usable URL. The marker
// expands to the current public storage URL; anything else is already a URL.
func Resolve(stored, supabaseURL, bucket, ean13 string) string {
	if stored == Marker {
		return PublicURL(supabaseURL, bucket, ean13)
	}
	return stored
}

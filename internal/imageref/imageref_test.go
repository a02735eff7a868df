package imageref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const supabaseURL = "https://abc123.supabase.co"

func TestAbstractPlatformURL(t *testing.T) {
	u := supabaseURL + "/storage/v1/object/public/productimages/012345678901.jpg"
	assert.Equal(t, Marker, Abstract(u, supabaseURL))
}

func TestAbstractMarkerUnchanged(t *testing.T) {
	assert.Equal(t, Marker, Abstract(Marker, supabaseURL))
}

func TestAbstractExternalURLUnchanged(t *testing.T) {
	u := "https://images.openfoodfacts.org/image.jpg"
	assert.Equal(t, u, Abstract(u, supabaseURL))
}

func TestAbstractOtherHostWithStoragePathUnchanged(t *testing.T) {
	// Same path convention on a foreign host is not ours.
	u := "https://evil.example.com/storage/v1/object/public/productimages/x.jpg"
	assert.Equal(t, u, Abstract(u, supabaseURL))
}

func TestAbstractIdempotent(t *testing.T) {
	inputs := []string{
		supabaseURL + "/storage/v1/object/public/productimages/012345678901.jpg",
		"https://images.openfoodfacts.org/image.jpg",
		Marker,
		"",
	}
	for _, u := range inputs {
		once := Abstract(u, supabaseURL)
		assert.Equal(t, once, Abstract(once, supabaseURL), "input %q", u)
	}
}

func TestResolveMarker(t *testing.T) {
	got := Resolve(Marker, supabaseURL, "productimages", "012345678901")
	assert.Equal(t, supabaseURL+"/storage/v1/object/public/productimages/012345678901.jpg", got)
}

func TestResolveExternalURLPassthrough(t *testing.T) {
	u := "https://images.openfoodfacts.org/image.jpg"
	assert.Equal(t, u, Resolve(u, supabaseURL, "productimages", "012345678901"))
}

func TestResolveTrimsTrailingSlash(t *testing.T) {
	got := Resolve(Marker, supabaseURL+"/", "productimages", "012345678901")
	assert.Equal(t, supabaseURL+"/storage/v1/object/public/productimages/012345678901.jpg", got)
}

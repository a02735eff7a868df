package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantUPC   string
		wantEAN13 string
	}{
		{
			name:      "11 digits gets one leading zero",
			raw:       "12345678901",
			wantUPC:   "012345678901",
			wantEAN13: "012345678901",
		},
		{
			name:      "12 digits unchanged",
			raw:       "012345678901",
			wantUPC:   "012345678901",
			wantEAN13: "012345678901",
		},
		{
			name:      "13 digits unchanged",
			raw:       "4012345678901",
			wantUPC:   "4012345678901",
			wantEAN13: "4012345678901",
		},
		{
			name:      "8 digits unchanged",
			raw:       "12345678",
			wantUPC:   "12345678",
			wantEAN13: "12345678",
		},
		{
			name:      "empty unchanged",
			raw:       "",
			wantUPC:   "",
			wantEAN13: "",
		},
		{
			name:      "non-digit characters are not rejected",
			raw:       "1234567890a",
			wantUPC:   "01234567890a",
			wantEAN13: "01234567890a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			assert.Equal(t, tt.wantUPC, got.UPC)
			assert.Equal(t, tt.wantEAN13, got.EAN13)
		})
	}
}

func TestNormalizeElevenDigitLength(t *testing.T) {
	got := Normalize("99999999999")
	assert.Len(t, got.UPC, 12)
	assert.Equal(t, got.UPC, got.EAN13)
}

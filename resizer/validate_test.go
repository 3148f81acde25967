package resizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestValidateMediaType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		valid     bool
	}{
		{"jpeg", "image/jpeg", true},
		{"png", "image/png", true},
		{"webp", "image/webp", true},
		{"plain text", "text/plain", false},
		{"json", "application/json", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := Blob{Type: tt.mediaType, Data: []byte{0x1}}
			result := Validate(blob, Options{Width: intPtr(10)})
			if tt.valid {
				assert.True(t, result.Ok())
				assert.Empty(t, result.Err())
			} else {
				assert.False(t, result.Ok())
				assert.Contains(t, result.Err(), tt.mediaType)
				assert.Contains(t, result.Err(), "invalid type")
			}
		})
	}
}

func TestValidateQuality(t *testing.T) {
	tests := []struct {
		quality float64
		valid   bool
	}{
		{0.09, false},
		{0.1, true}, // lower bound is inclusive
		{0.5, true},
		{1.0, true}, // upper bound is inclusive
		{1.01, false},
		{1.5, false},
		{-1, false},
		{0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("quality %v", tt.quality), func(t *testing.T) {
			blob := Blob{Type: "image/png", Data: []byte{0x1}}
			result := Validate(blob, Options{Width: intPtr(10), Quality: floatPtr(tt.quality)})
			if tt.valid {
				assert.True(t, result.Ok())
			} else {
				assert.False(t, result.Ok())
				assert.Contains(t, result.Err(), "invalid quality")
				assert.Contains(t, result.Err(), fmt.Sprintf("%v", tt.quality))
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	blob := Blob{Type: "image/png", Data: []byte{0x1}}

	t.Run("neither width nor height", func(t *testing.T) {
		result := Validate(blob, Options{})
		assert.False(t, result.Ok())
		assert.Contains(t, result.Err(), "either width or height must be set")
	})

	t.Run("width only", func(t *testing.T) {
		assert.True(t, Validate(blob, Options{Width: intPtr(100)}).Ok())
	})

	t.Run("height only", func(t *testing.T) {
		assert.True(t, Validate(blob, Options{Height: intPtr(100)}).Ok())
	})

	t.Run("non-positive dimensions rejected", func(t *testing.T) {
		result := Validate(blob, Options{Width: intPtr(0), Height: intPtr(-5)})
		assert.False(t, result.Ok())
		assert.Contains(t, result.Err(), "invalid width: 0")
		assert.Contains(t, result.Err(), "invalid height: -5")
	})
}

func TestValidateAccumulatesViolations(t *testing.T) {
	blob := Blob{Type: "text/plain", Data: []byte("hello")}
	result := Validate(blob, Options{Quality: floatPtr(2.0)})

	assert.False(t, result.Ok())
	// All three violations are reported at once, joined by the separator.
	assert.Contains(t, result.Err(), "invalid type: text/plain")
	assert.Contains(t, result.Err(), "invalid quality: 2")
	assert.Contains(t, result.Err(), "either width or height must be set")
	assert.Contains(t, result.Err(), errorSeparator)
}

func TestValidateIsIdempotent(t *testing.T) {
	blob := Blob{Type: "text/plain", Data: []byte("hello")}
	opts := Options{Quality: floatPtr(1.5)}

	first := Validate(blob, opts)
	second := Validate(blob, opts)

	assert.Equal(t, first.Ok(), second.Ok())
	assert.Equal(t, first.Err(), second.Err())
}

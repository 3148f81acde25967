package resizer

import (
	"context"
	"image"
)

// Blob is an opaque binary payload with a declared media type. The pipeline
// never inspects the bytes directly; decoding is delegated to the
// BitmapDecoder port.
type Blob struct {
	// Type is the declared media type, e.g. "image/jpeg".
	Type string
	// Data is the raw encoded image payload.
	Data []byte
}

// Bitmap is a decoded, pixel-addressable image with known intrinsic
// dimensions. It is owned by the single resize call that decoded it.
type Bitmap struct {
	img image.Image
}

// NewBitmap wraps a decoded image. Exposed so tests and alternative
// decoders can construct bitmaps directly.
func NewBitmap(img image.Image) Bitmap {
	return Bitmap{img: img}
}

// Width returns the intrinsic pixel width.
func (b Bitmap) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height returns the intrinsic pixel height.
func (b Bitmap) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// Image returns the underlying pixel data.
func (b Bitmap) Image() image.Image {
	return b.img
}

// BlobReader turns a blob into its base64 textual representation. Exactly
// one of {success, abort, error} fires per invocation; an abort signalled
// through the context surfaces as a failure outcome.
type BlobReader interface {
	ReadAsBase64(ctx context.Context, blob Blob) Outcome[string]
}

// BitmapDecoder turns a base64 string into a decoded bitmap. Same
// completion contract as BlobReader.
type BitmapDecoder interface {
	Decode(ctx context.Context, base64Data string) Outcome[Bitmap]
}

// Surface is a 2D raster drawing target. Render must leave the surface at
// exactly the resolved target dimensions containing the scaled source, then
// serialize it as a data URL in the requested format. Its only failure mode
// is the drawing context being unavailable.
type Surface interface {
	Render(bitmap Bitmap, dims Dimensions, quality float64, format Format) Outcome[string]
}

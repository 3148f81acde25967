package resizer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Base64Reader is the standard BlobReader. It encodes the blob bytes
// in-process; the abort path is driven by the caller's context.
type Base64Reader struct{}

// ReadAsBase64 implements BlobReader.
func (Base64Reader) ReadAsBase64(ctx context.Context, blob Blob) Outcome[string] {
	select {
	case <-ctx.Done():
		return Failure[string]("read aborted")
	default:
	}

	if len(blob.Data) == 0 {
		return Failure[string]("read error: blob has no content")
	}

	return Success(base64.StdEncoding.EncodeToString(blob.Data))
}

// StdDecoder is the standard BitmapDecoder built on image.Decode. PNG,
// JPEG, GIF, BMP and WebP decoders are registered.
type StdDecoder struct{}

// Decode implements BitmapDecoder.
func (StdDecoder) Decode(ctx context.Context, base64Data string) Outcome[Bitmap] {
	select {
	case <-ctx.Done():
		return Failure[Bitmap]("decode aborted")
	default:
	}

	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return Failure[Bitmap](fmt.Sprintf("decode error: %v", err))
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Failure[Bitmap](fmt.Sprintf("decode error: %v", err))
	}

	return Success(NewBitmap(img))
}

// CanvasSurface is the standard Surface. It paints the source unscaled onto
// a canvas at intrinsic size, then resizes the canvas to the target
// dimensions with Lanczos3 resampling and serializes it as a data URL.
type CanvasSurface struct{}

// Render implements Surface.
func (CanvasSurface) Render(bitmap Bitmap, dims Dimensions, quality float64, format Format) Outcome[string] {
	src := bitmap.Image()
	if src == nil || bitmap.Width() <= 0 || bitmap.Height() <= 0 {
		return Failure[string]("drawing context not available")
	}

	// Unscaled paint at intrinsic size. The canvas is the transient drawing
	// surface; it is released when this call returns.
	canvas := imaging.New(bitmap.Width(), bitmap.Height(), color.NRGBA{})
	canvas = imaging.Paste(canvas, src, image.Pt(0, 0))

	// Fractional target dimensions are coerced to whole pixels here, not in
	// the resolver.
	targetW, targetH := dims.round()
	scaled := resize.Resize(uint(targetW), uint(targetH), canvas, resize.Lanczos3)

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: qualityPercent(quality)}); err != nil {
			return Failure[string]("drawing context not available")
		}
	case FormatWEBP:
		if err := webp.Encode(&buf, scaled, &webp.Options{Quality: float32(qualityPercent(quality))}); err != nil {
			return Failure[string]("drawing context not available")
		}
	default:
		// PNG is lossless, the quality hint does not apply.
		if err := png.Encode(&buf, scaled); err != nil {
			return Failure[string]("drawing context not available")
		}
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return Success(fmt.Sprintf("data:%s;base64,%s", format, encoded))
}

// qualityPercent maps the [0.1, 1.0] quality hint onto the 1-100 scale the
// JPEG and WebP encoders expect.
func qualityPercent(quality float64) int {
	return int(quality * 100)
}

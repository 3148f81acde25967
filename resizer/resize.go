package resizer

import (
	"context"
	"math"
)

// Dimensions is a resolved target size. Values stay fractional until the
// surface coerces them to whole pixels.
type Dimensions struct {
	Width  float64
	Height float64
}

// round coerces to whole pixels, never below one: an extreme aspect ratio
// can push a derived dimension under 0.5, and a zero-sized image cannot be
// encoded.
func (d Dimensions) round() (int, int) {
	w := int(math.Round(d.Width))
	h := int(math.Round(d.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Resizer runs the validate, read, decode, resolve, draw pipeline. Calls
// are independent; a Resizer holds no mutable state and is safe for
// concurrent use.
type Resizer struct {
	reader  BlobReader
	decoder BitmapDecoder
	surface Surface
}

// New returns a Resizer backed by the standard in-process environment.
func New() *Resizer {
	return NewWithEnv(Base64Reader{}, StdDecoder{}, CanvasSurface{})
}

// NewWithEnv returns a Resizer with explicit port implementations. Tests
// inject fakes here to simulate abort and error completions
// deterministically.
func NewWithEnv(reader BlobReader, decoder BitmapDecoder, surface Surface) *Resizer {
	return &Resizer{reader: reader, decoder: decoder, surface: surface}
}

// Resize runs the flexible entry point: at least one of Options.Width and
// Options.Height must be set. On success the outcome carries a
// "data:<mime>;base64," URL.
func (r *Resizer) Resize(ctx context.Context, blob Blob, opts Options) Outcome[string] {
	return r.run(ctx, blob, opts, true)
}

// ResizeExact resizes to explicit dimensions. Aspect ratio is not enforced;
// the caller may distort.
func (r *Resizer) ResizeExact(ctx context.Context, blob Blob, width, height int, opts ...Opt) Outcome[string] {
	o := applyOpts(opts)
	o.Width = &width
	o.Height = &height
	return r.run(ctx, blob, o, false)
}

// ResizeToWidth resizes to the given width, deriving the height from the
// source aspect ratio.
func (r *Resizer) ResizeToWidth(ctx context.Context, blob Blob, width int, opts ...Opt) Outcome[string] {
	o := applyOpts(opts)
	o.Width = &width
	return r.run(ctx, blob, o, false)
}

// ResizeToHeight resizes to the given height, deriving the width from the
// source aspect ratio.
func (r *Resizer) ResizeToHeight(ctx context.Context, blob Blob, height int, opts ...Opt) Outcome[string] {
	o := applyOpts(opts)
	o.Height = &height
	return r.run(ctx, blob, o, false)
}

// run is the single linear pipeline. Every stage short-circuits the whole
// call with its failure outcome; nothing is retried.
func (r *Resizer) run(ctx context.Context, blob Blob, opts Options, requireDims bool) Outcome[string] {
	if v := validate(blob, opts, requireDims); !v.Ok() {
		return Failure[string](v.Err())
	}

	read := r.reader.ReadAsBase64(ctx, blob)
	if !read.Ok() {
		return Failure[string](read.Err())
	}

	decoded := r.decoder.Decode(ctx, read.Value())
	if !decoded.Ok() {
		return Failure[string](decoded.Err())
	}
	bitmap := decoded.Value()

	dims := resolveDimensions(opts, bitmap.Width(), bitmap.Height())
	if !dims.Ok() {
		return Failure[string](dims.Err())
	}

	return r.surface.Render(bitmap, dims.Value(), opts.quality(), opts.format())
}

// resolveDimensions derives the target size from partial options. Scaling
// uses float64 arithmetic; fractional results are passed through to the
// surface unmodified.
func resolveDimensions(opts Options, intrinsicWidth, intrinsicHeight int) Outcome[Dimensions] {
	switch {
	case opts.Width != nil && opts.Height != nil:
		return Success(Dimensions{Width: float64(*opts.Width), Height: float64(*opts.Height)})
	case opts.Width != nil:
		w := float64(*opts.Width)
		return Success(Dimensions{
			Width:  w,
			Height: float64(intrinsicHeight) / float64(intrinsicWidth) * w,
		})
	case opts.Height != nil:
		h := float64(*opts.Height)
		return Success(Dimensions{
			Width:  float64(intrinsicWidth) / float64(intrinsicHeight) * h,
			Height: h,
		})
	default:
		// Unreachable once validation has run, but the resolver still has
		// to answer for itself.
		return Failure[Dimensions]("unknown dimensions")
	}
}

func applyOpts(opts []Opt) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

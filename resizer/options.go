package resizer

// Format is the closed set of supported output encodings.
type Format string

const (
	FormatPNG  Format = "image/png"
	FormatJPEG Format = "image/jpeg"
	FormatWEBP Format = "image/webp"
)

const (
	// MinQuality and MaxQuality bound the accepted encoder quality hint.
	// Both ends are inclusive.
	MinQuality = 0.1
	MaxQuality = 1.0

	// defaultQuality is applied when the caller does not supply one.
	// Lossless formats ignore it.
	defaultQuality = 0.85
)

// Options configures a flexible resize call. Width, Height and Quality are
// pointer-typed so that "not set" is distinguishable from zero.
type Options struct {
	// Format selects the output encoding. Empty means FormatPNG.
	Format Format
	// Width is the target pixel width. When Height is nil the target height
	// is derived from the source aspect ratio.
	Width *int
	// Height is the target pixel height, symmetric to Width.
	Height *int
	// Quality is the encoder quality hint in [MinQuality, MaxQuality].
	Quality *float64
}

func (o Options) format() Format {
	if o.Format == "" {
		return FormatPNG
	}
	return o.Format
}

func (o Options) quality() float64 {
	if o.Quality == nil {
		return defaultQuality
	}
	return *o.Quality
}

// Opt tweaks quality or output format on the convenience entry points.
type Opt func(*Options)

// WithQuality sets the encoder quality hint.
func WithQuality(q float64) Opt {
	return func(o *Options) {
		o.Quality = &q
	}
}

// WithFormat sets the output encoding.
func WithFormat(f Format) Opt {
	return func(o *Options) {
		o.Format = f
	}
}

package resizer

import (
	"fmt"
	"strings"
)

const (
	imageTypePrefix = "image/"
	errorSeparator  = "; "
)

// Validate checks a blob and options under the flexible entry point. It
// accumulates every violation instead of stopping at the first, so the
// caller sees all of them at once.
func Validate(blob Blob, opts Options) Outcome[struct{}] {
	return validate(blob, opts, true)
}

// validate runs the shared checks. requireDims is set when validating under
// the options entry point, where at least one target dimension must be
// supplied.
func validate(blob Blob, opts Options, requireDims bool) Outcome[struct{}] {
	var violations []string

	if !strings.HasPrefix(blob.Type, imageTypePrefix) {
		violations = append(violations, fmt.Sprintf("invalid type: %s", blob.Type))
	}

	if opts.Quality != nil {
		if q := *opts.Quality; q < MinQuality || q > MaxQuality {
			violations = append(violations, fmt.Sprintf("invalid quality: %v", q))
		}
	}

	if opts.Width != nil && *opts.Width <= 0 {
		violations = append(violations, fmt.Sprintf("invalid width: %d", *opts.Width))
	}
	if opts.Height != nil && *opts.Height <= 0 {
		violations = append(violations, fmt.Sprintf("invalid height: %d", *opts.Height))
	}

	if requireDims && opts.Width == nil && opts.Height == nil {
		violations = append(violations, "either width or height must be set")
	}

	if len(violations) > 0 {
		return Failure[struct{}](strings.Join(violations, errorSeparator))
	}
	return Success(struct{}{})
}

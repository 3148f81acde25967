package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/corebit/img2dataurl/db"
	"github.com/corebit/img2dataurl/logger"
	"github.com/corebit/img2dataurl/models"
	"github.com/corebit/img2dataurl/resizer"
)

var (
	ErrInvalidInput = errors.New("invalid resize input")
	ErrRead         = errors.New("blob read failed")
	ErrDecode       = errors.New("image decode failed")
	ErrEnvironment  = errors.New("drawing environment unavailable")
)

// ResizeService runs resize requests through the core pipeline, consults
// the result cache first and records every invocation in job history.
type ResizeService struct {
	resizer *resizer.Resizer
	jobs    *db.Database
	cache   *ResultCache
	now     func() time.Time
}

// NewResizeService wires the resizer engine, the optional job store and the
// result cache into the service layer.
func NewResizeService(rz *resizer.Resizer, jobs *db.Database, cfg *Config) *ResizeService {
	ttl := time.Duration(0)
	if cfg != nil {
		ttl = cfg.CacheTTL
	}
	return &ResizeService{
		resizer: rz,
		jobs:    jobs,
		cache:   NewResultCache(ttl),
		now:     time.Now,
	}
}

// Resize handles the flexible endpoint: the request must carry at least one
// of width and height.
func (s *ResizeService) Resize(ctx context.Context, requester string, req *models.ResizeRequest) (*models.ResizeResponse, error) {
	blob, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, requester, blob, opts, func() resizer.Outcome[string] {
		return s.resizer.Resize(ctx, blob, opts)
	})
}

// ResizeToWidth handles the width-driven endpoint; the height is derived
// from the source aspect ratio.
func (s *ResizeService) ResizeToWidth(ctx context.Context, requester string, req *models.ResizeRequest) (*models.ResizeResponse, error) {
	if req.Width == nil {
		return nil, fmt.Errorf("%w: width is required", ErrInvalidInput)
	}
	blob, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	opts.Height = nil
	return s.execute(ctx, requester, blob, opts, func() resizer.Outcome[string] {
		return s.resizer.ResizeToWidth(ctx, blob, *opts.Width, carriedOpts(opts)...)
	})
}

// ResizeToHeight handles the height-driven endpoint, symmetric to
// ResizeToWidth.
func (s *ResizeService) ResizeToHeight(ctx context.Context, requester string, req *models.ResizeRequest) (*models.ResizeResponse, error) {
	if req.Height == nil {
		return nil, fmt.Errorf("%w: height is required", ErrInvalidInput)
	}
	blob, opts, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	opts.Width = nil
	return s.execute(ctx, requester, blob, opts, func() resizer.Outcome[string] {
		return s.resizer.ResizeToHeight(ctx, blob, *opts.Height, carriedOpts(opts)...)
	})
}

// ListJobs returns the most recent job history entries.
func (s *ResizeService) ListJobs(limit int) ([]*models.JobResponse, error) {
	if s.jobs == nil {
		return nil, errors.New("job database not initialized")
	}
	jobs, err := s.jobs.ListJobs(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, &models.JobResponse{
			ID:           j.ID,
			Requester:    j.Requester,
			MediaType:    j.MediaType,
			Format:       j.Format,
			TargetWidth:  j.TargetWidth,
			TargetHeight: j.TargetHeight,
			Status:       j.Status,
			Detail:       j.Detail,
			DurationMs:   j.DurationMs,
			CreatedAt:    j.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// ResetJobs clears the job history.
func (s *ResizeService) ResetJobs() error {
	if s.jobs == nil {
		return errors.New("job database not initialized")
	}
	return s.jobs.ResetJobs()
}

// prepare translates the transport request into a core blob and options.
func (s *ResizeService) prepare(req *models.ResizeRequest) (resizer.Blob, resizer.Options, error) {
	var blob resizer.Blob
	var opts resizer.Options

	payload, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return blob, opts, fmt.Errorf("%w: data is not valid base64: %v", ErrInvalidInput, err)
	}

	format, err := parseFormat(req.Format)
	if err != nil {
		return blob, opts, err
	}

	blob = resizer.Blob{Type: req.ContentType, Data: payload}
	opts = resizer.Options{
		Format:  format,
		Width:   req.Width,
		Height:  req.Height,
		Quality: req.Quality,
	}
	return blob, opts, nil
}

// execute runs the pipeline call with cache lookup and job recording wrapped
// around it.
func (s *ResizeService) execute(ctx context.Context, requester string, blob resizer.Blob, opts resizer.Options, call func() resizer.Outcome[string]) (*models.ResizeResponse, error) {
	key := cacheKey(blob, opts)
	if cached := s.cache.Get(key); cached != "" {
		logger.Debug().Str("requester", requester).Msg("resize served from cache")
		width, height := dataURLDimensions(cached)
		return &models.ResizeResponse{DataURL: cached, Width: width, Height: height, Cached: true}, nil
	}

	start := s.now()
	outcome := call()
	duration := s.now().Sub(start)

	s.recordJob(requester, blob, opts, outcome, duration)

	if !outcome.Ok() {
		logger.Warn().Str("requester", requester).Str("outcome", outcome.Err()).Msg("resize failed")
		return nil, classifyFailure(outcome.Err())
	}

	dataURL := outcome.Value()
	s.cache.Set(key, dataURL)

	width, height := dataURLDimensions(dataURL)
	logger.Info().Str("requester", requester).Int("width", width).Int("height", height).Dur("duration", duration).Msg("resize completed")
	return &models.ResizeResponse{DataURL: dataURL, Width: width, Height: height}, nil
}

func (s *ResizeService) recordJob(requester string, blob resizer.Blob, opts resizer.Options, outcome resizer.Outcome[string], duration time.Duration) {
	if s.jobs == nil {
		return
	}

	job := &db.Job{
		Requester: requester,
		MediaType: blob.Type,
		Format:    string(opts.Format),
		Status:    db.StatusOK,
		CreatedAt: s.now().UTC(),
	}
	if opts.Width != nil {
		job.TargetWidth = *opts.Width
	}
	if opts.Height != nil {
		job.TargetHeight = *opts.Height
	}
	if !outcome.Ok() {
		job.Status = db.StatusError
		job.Detail = outcome.Err()
	}
	job.DurationMs = duration.Milliseconds()

	if err := s.jobs.SaveJob(job); err != nil {
		logger.Warn().Err(err).Msg("failed to record resize job")
	}
}

// classifyFailure maps an outcome message onto the service error families
// the API layer translates to HTTP statuses. Messages are produced by the
// pipeline stages, so the prefix identifies the failing stage.
func classifyFailure(msg string) error {
	switch {
	case strings.HasPrefix(msg, "read"):
		return fmt.Errorf("%w: %s", ErrRead, msg)
	case strings.HasPrefix(msg, "decode"):
		return fmt.Errorf("%w: %s", ErrDecode, msg)
	case strings.HasPrefix(msg, "drawing"):
		return fmt.Errorf("%w: %s", ErrEnvironment, msg)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
}

// parseFormat maps the transport format name onto the core enum.
func parseFormat(name string) (resizer.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return resizer.FormatPNG, nil
	case "jpeg", "jpg":
		return resizer.FormatJPEG, nil
	case "webp":
		return resizer.FormatWEBP, nil
	default:
		return "", fmt.Errorf("%w: unknown format: %s", ErrInvalidInput, name)
	}
}

// carriedOpts forwards quality and format to the convenience entry points.
func carriedOpts(opts resizer.Options) []resizer.Opt {
	out := []resizer.Opt{resizer.WithFormat(opts.Format)}
	if opts.Quality != nil {
		out = append(out, resizer.WithQuality(*opts.Quality))
	}
	return out
}

// dataURLDimensions decodes only the image header of a produced data URL to
// report the final pixel size.
func dataURLDimensions(dataURL string) (int, int) {
	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return 0, 0
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return 0, 0
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

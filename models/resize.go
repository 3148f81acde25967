package models

// ResizeRequest mirrors the JSON schema accepted by the client resize
// endpoints. Data carries the raw image payload as standard base64.
type ResizeRequest struct {
	Data        string   `json:"data"`
	ContentType string   `json:"content_type"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	Quality     *float64 `json:"quality,omitempty"`
	// Format selects the output encoding: "png", "jpeg" or "webp".
	// Empty means png.
	Format string `json:"format,omitempty"`
}

// ResizeResponse is returned on a successful resize.
type ResizeResponse struct {
	// DataURL is the encoded result, "data:<mime>;base64,<payload>".
	DataURL string `json:"data_url"`
	// Width and Height are the pixel dimensions of the encoded result.
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Cached bool `json:"cached"`
}

// JobResponse is a single entry in the admin job history listing.
type JobResponse struct {
	ID           int    `json:"id"`
	Requester    string `json:"requester"`
	MediaType    string `json:"media_type"`
	Format       string `json:"format"`
	TargetWidth  int    `json:"target_width,omitempty"`
	TargetHeight int    `json:"target_height,omitempty"`
	Status       string `json:"status"`
	Detail       string `json:"detail,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
	CreatedAt    string `json:"created_at"`
}

package models

import "github.com/google/uuid"

// SampleRequest asks for k rows drawn uniformly without replacement from Source.
type SampleRequest struct {
	Source TableRef
	Size   int64
	// Seed makes the selection reproducible. Nil means a fresh, non-reproducible seed.
	Seed *int64
}

// MaterializeRequest extends SampleRequest with the destination table to create.
// The destination schema travels with each request; nothing is remembered between requests.
type MaterializeRequest struct {
	SampleRequest
	Destination TableRef
	// BatchSize caps the number of INSERT statements submitted together (<= 0 means all at once).
	BatchSize int
}

// SampleResult summarizes one sampling request.
type SampleResult struct {
	RequestID  uuid.UUID `json:"request_id" yaml:"request_id"`
	Source     TableRef  `json:"source" yaml:"source"`
	Population int64     `json:"population" yaml:"population"`
	Requested  int64     `json:"requested" yaml:"requested"`
	Selected   int       `json:"selected" yaml:"selected"`
	// Clamped is set when Requested exceeded Population and every row was taken.
	Clamped bool `json:"clamped" yaml:"clamped"`
	// StreamRows is the number of rows the row stream actually produced.
	// It differs from Population only if the table changed between the count and the scan.
	StreamRows int64 `json:"stream_rows" yaml:"stream_rows"`
	Emitted    int   `json:"emitted" yaml:"emitted"`
}

// MaterializeResult summarizes a sample-and-materialize request.
type MaterializeResult struct {
	SampleResult    `yaml:",inline"`
	Destination     TableRef `json:"destination" yaml:"destination"`
	CreateStatement string   `json:"create_statement" yaml:"create_statement"`
	Batches         int      `json:"batches" yaml:"batches"`
}

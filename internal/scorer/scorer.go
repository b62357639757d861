package scorer

import "context"

// Result carries the scorer output for one image.
type Result struct {
	// Probabilities is a discrete distribution over the condition catalog.
	Probabilities []float64
	// ModelVersion identifies which model produced the distribution.
	ModelVersion string
}

// Scorer exposes the subset of inference functionality used by the analysis
// pipeline. Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, patientID string, imageBytes []byte) (*Result, error)
}

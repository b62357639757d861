// Package findings turns a raw probability vector into clinical findings.
package findings

import (
	"errors"
	"fmt"
	"math"

	"github.com/example/corneal-ai/internal/catalog"
)

// SignificanceThreshold is the probability above which a condition is
// reported as a clinical finding.
const SignificanceThreshold = 0.1

// sumTolerance bounds how far the vector may drift from a proper
// distribution before it is rejected.
const sumTolerance = 0.01

// ErrMalformedVector indicates the scorer output violated its contract.
// This is always a defect between collaborators, never user input.
var ErrMalformedVector = errors.New("malformed score vector")

// Derivation is the deterministic post-processing result for one vector.
type Derivation struct {
	ConfidenceScores map[string]float64
	ClinicalFindings []string
	PrimaryDiagnosis string
}

// Derive maps predictions onto the catalog and ranks them. Pure: the result
// is fully determined by the inputs.
func Derive(cat *catalog.Catalog, predictions []float64) (*Derivation, error) {
	if len(predictions) != cat.Size() {
		return nil, fmt.Errorf("%w: got %d probabilities, catalog has %d conditions",
			ErrMalformedVector, len(predictions), cat.Size())
	}

	sum := 0.0
	for i, p := range predictions {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("%w: probability %v at index %d outside [0,1]", ErrMalformedVector, p, i)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > sumTolerance {
		return nil, fmt.Errorf("%w: probabilities sum to %v", ErrMalformedVector, sum)
	}

	scores := make(map[string]float64, len(predictions))
	findings := make([]string, 0, len(predictions))
	best := 0
	for i, p := range predictions {
		label, _ := cat.Label(i)
		scores[label] = p
		if p > SignificanceThreshold {
			findings = append(findings, fmt.Sprintf("%s (confidence: %.3f)", label, p))
		}
		// Strict comparison keeps the lowest index on ties.
		if p > predictions[best] {
			best = i
		}
	}

	primary, _ := cat.Label(best)
	return &Derivation{
		ConfidenceScores: scores,
		ClinicalFindings: findings,
		PrimaryDiagnosis: primary,
	}, nil
}

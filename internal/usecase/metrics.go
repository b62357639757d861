package usecase

import (
	"context"

	"github.com/example/corneal-ai/internal/auth"
)

// MetricsSummary represents aggregated diagnostic pipeline insights.
type MetricsSummary struct {
	TotalAnalyses            int64   `json:"total_analyses"`
	ValidatedAnalyses        int64   `json:"validated_analyses"`
	ValidationRate           float64 `json:"validation_rate"`
	AverageProcessingSeconds float64 `json:"average_processing_seconds"`
}

// GetMetricsSummary aggregates metrics from persisted analyses. Restricted
// to roles that can read all records.
func (uc *AnalysisUseCase) GetMetricsSummary(ctx context.Context, actor auth.Identity) (*MetricsSummary, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}
	if !actor.Role.CanReadAll() {
		return nil, NewError(KindPermissionDenied, "metrics require the Scientist or Admin role")
	}

	aggregation, err := uc.store.AggregateMetrics(ctx)
	if err != nil {
		return nil, uc.storeError("aggregate metrics", "", err)
	}

	summary := &MetricsSummary{
		TotalAnalyses:            aggregation.TotalCount,
		ValidatedAnalyses:        aggregation.ValidatedCount,
		AverageProcessingSeconds: aggregation.AverageProcessingSeconds,
	}

	if aggregation.TotalCount > 0 {
		summary.ValidationRate = float64(aggregation.ValidatedCount) / float64(aggregation.TotalCount)
	}

	return summary, nil
}

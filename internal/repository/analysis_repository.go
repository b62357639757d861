package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnalysisRepository provides persistence APIs for analysis results and the
// file records that accompany them.
type AnalysisRepository struct {
	db *gorm.DB
	retrier
}

// NewAnalysisRepository creates a new repository instance.
func NewAnalysisRepository(db *gorm.DB, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{db: db, retrier: newRetrier(logger.Named("analysis_repository"))}
}

// AutoMigrate ensures the schema is available.
func (r *AnalysisRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&AnalysisResult{}, &FileRecord{})
}

// Create persists a new analysis result.
func (r *AnalysisRepository) Create(ctx context.Context, result *AnalysisResult) error {
	return r.executeWithRetry(ctx, "repository.create_analysis", result.ID, func() error {
		return r.db.WithContext(ctx).Create(result).Error
	})
}

// FindByID retrieves a single analysis result. Returns
// gorm.ErrRecordNotFound when the id is unknown.
func (r *AnalysisRepository) FindByID(ctx context.Context, id string) (*AnalysisResult, error) {
	var result AnalysisResult
	err := r.executeWithRetry(ctx, "repository.find_analysis", id, func() error {
		return r.db.WithContext(ctx).First(&result, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns results newest first. An empty ownerID means no ownership
// filter; skip and limit implement pagination.
func (r *AnalysisRepository) List(ctx context.Context, ownerID string, skip, limit int) ([]*AnalysisResult, error) {
	var results []*AnalysisResult
	err := r.executeWithRetry(ctx, "repository.list_analyses", "", func() error {
		query := r.db.WithContext(ctx).Order("created_at DESC").Offset(skip).Limit(limit)
		if ownerID != "" {
			query = query.Where("user_id = ?", ownerID)
		}
		return query.Find(&results).Error
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// MarkValidated applies the one-shot pending→validated transition. The
// update is conditional on the record still being pending, so concurrent
// validators serialize on the row: exactly one call can affect it. Returns
// the number of rows changed; zero means the id is unknown or the record was
// already validated, which the caller disambiguates with FindByID.
func (r *AnalysisRepository) MarkValidated(ctx context.Context, id, validatorID, notes string, when time.Time) (int64, error) {
	var affected int64
	err := r.executeWithRetry(ctx, "repository.mark_validated", id, func() error {
		tx := r.db.WithContext(ctx).
			Model(&AnalysisResult{}).
			Where("id = ? AND validated_by IS NULL", id).
			Updates(map[string]interface{}{
				"validated_by":    validatorID,
				"scientist_notes": notes,
				"validation_date": when,
			})
		affected = tx.RowsAffected
		return tx.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// CreateFileRecord persists the upload bookkeeping entry.
func (r *AnalysisRepository) CreateFileRecord(ctx context.Context, record *FileRecord) error {
	return r.executeWithRetry(ctx, "repository.create_file_record", record.ID, func() error {
		return r.db.WithContext(ctx).Create(record).Error
	})
}

// AnalysisAggregation holds the raw numbers behind the metrics summary.
type AnalysisAggregation struct {
	TotalCount               int64
	ValidatedCount           int64
	AverageProcessingSeconds float64
}

// AggregateMetrics computes totals across all persisted analyses.
func (r *AnalysisRepository) AggregateMetrics(ctx context.Context) (*AnalysisAggregation, error) {
	var agg AnalysisAggregation
	err := r.executeWithRetry(ctx, "repository.aggregate_metrics", "", func() error {
		return r.db.WithContext(ctx).
			Model(&AnalysisResult{}).
			Select("COUNT(*) AS total_count, COUNT(validated_by) AS validated_count, COALESCE(AVG(processing_time_seconds), 0) AS average_processing_seconds").
			Scan(&agg).Error
	})
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/catalog"
	"github.com/example/corneal-ai/internal/findings"
	"github.com/example/corneal-ai/internal/logging"
	"github.com/example/corneal-ai/internal/repository"
	"github.com/example/corneal-ai/internal/scorer"
)

// AnalysisType tags every record produced by this pipeline.
const AnalysisType = "corneal_pattern_recognition"

const (
	defaultListLimit = 20
	cacheTTL         = 5 * time.Minute
)

// AnalysisStore defines the persistence operations needed by the pipeline.
type AnalysisStore interface {
	Create(ctx context.Context, result *repository.AnalysisResult) error
	FindByID(ctx context.Context, id string) (*repository.AnalysisResult, error)
	List(ctx context.Context, ownerID string, skip, limit int) ([]*repository.AnalysisResult, error)
	MarkValidated(ctx context.Context, id, validatorID, notes string, when time.Time) (int64, error)
	CreateFileRecord(ctx context.Context, record *repository.FileRecord) error
	AggregateMetrics(ctx context.Context) (*repository.AnalysisAggregation, error)
}

// ArtifactStore archives uploaded images. Archival is best-effort and never
// blocks or fails a request.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Upload carries one inbound image submission.
type Upload struct {
	FileName    string
	ContentType string
	PatientID   string
	Data        []byte
}

// AnalysisUseCase orchestrates scoring, derivation, persistence, and caching
// for the diagnostic pipeline.
type AnalysisUseCase struct {
	store          AnalysisStore
	cache          Cache
	scorer         scorer.Scorer
	artifacts      ArtifactStore
	catalog        *catalog.Catalog
	logger         *zap.Logger
	scorerTimeout  time.Duration
	retryAttempts  int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewAnalysisUseCase constructs the pipeline. artifacts may be nil when no
// object store is configured.
func NewAnalysisUseCase(store AnalysisStore, cache Cache, sc scorer.Scorer, artifacts ArtifactStore, cat *catalog.Catalog, logger *zap.Logger, scorerTimeout time.Duration) *AnalysisUseCase {
	if scorerTimeout <= 0 {
		scorerTimeout = 30 * time.Second
	}
	return &AnalysisUseCase{
		store:          store,
		cache:          cache,
		scorer:         sc,
		artifacts:      artifacts,
		catalog:        cat,
		logger:         logger.Named("analysis_usecase"),
		scorerTimeout:  scorerTimeout,
		retryAttempts:  3,
		initialBackoff: 50 * time.Millisecond,
		maxBackoff:     time.Second,
	}
}

// SubmitAnalysis runs the full pipeline for one image: score, derive
// findings, persist, then archive and cache off the request path. Nothing is
// persisted when scoring or derivation fails.
func (uc *AnalysisUseCase) SubmitAnalysis(ctx context.Context, actor auth.Identity, upload Upload) (*repository.AnalysisResult, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return nil, NewError(KindUnsupportedMediaType, fmt.Sprintf("unsupported content type %q, expected an image", upload.ContentType))
	}

	analysisID := uuid.NewString()
	opLogger := logging.WithOperation(uc.logger, "usecase.submit_analysis", analysisID)
	start := time.Now()

	scoreCtx, cancel := context.WithTimeout(ctx, uc.scorerTimeout)
	defer cancel()
	scored, err := uc.scorer.Score(scoreCtx, upload.PatientID, upload.Data)
	if err != nil {
		wrapped := WrapError(KindInferenceFailure, "scoring failed", err)
		opLogger.Error("scorer invocation failed", zap.Error(wrapped))
		return nil, wrapped
	}

	derived, err := findings.Derive(uc.catalog, scored.Probabilities)
	if err != nil {
		wrapped := WrapError(KindMalformedScoreVector, "scorer output violates contract", err)
		opLogger.Error("finding derivation rejected score vector", zap.Error(wrapped))
		return nil, wrapped
	}

	predictions := make(map[string]float64, len(scored.Probabilities))
	for i, p := range scored.Probabilities {
		predictions[strconv.Itoa(i)] = p
	}

	result := &repository.AnalysisResult{
		ID:                    analysisID,
		PatientID:             upload.PatientID,
		UserID:                actor.UserID,
		FileName:              upload.FileName,
		AnalysisType:          AnalysisType,
		Predictions:           predictions,
		ConfidenceScores:      derived.ConfidenceScores,
		ClinicalFindings:      derived.ClinicalFindings,
		PrimaryDiagnosis:      derived.PrimaryDiagnosis,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
		ModelVersion:          scored.ModelVersion,
		CreatedAt:             time.Now().UTC(),
	}

	if err := uc.store.Create(ctx, result); err != nil {
		wrapped := uc.storeError("persist analysis result", analysisID, err)
		opLogger.Error("failed to persist analysis result", zap.Error(wrapped))
		return nil, wrapped
	}

	hash := sha1.Sum(upload.Data)
	objectKey := fmt.Sprintf("corneal-images/%s.img", hex.EncodeToString(hash[:]))

	record := &repository.FileRecord{
		ID:         uuid.NewString(),
		UserID:     actor.UserID,
		FileName:   upload.FileName,
		FileType:   "corneal_image",
		ObjectKey:  objectKey,
		PatientID:  upload.PatientID,
		UploadDate: result.CreatedAt,
		Status:     "completed",
	}
	if err := uc.store.CreateFileRecord(ctx, record); err != nil {
		opLogger.Warn("failed to persist file record", zap.Error(err))
	}

	uc.archiveArtifact(objectKey, upload.Data, upload.ContentType, opLogger)

	if err := uc.cacheResult(ctx, result); err != nil {
		opLogger.Warn("failed to cache analysis result", zap.Error(err))
	}

	return result, nil
}

// GetResult returns a single analysis, enforcing the Collaborator ownership
// restriction.
func (uc *AnalysisUseCase) GetResult(ctx context.Context, actor auth.Identity, analysisID string) (*repository.AnalysisResult, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}

	result, err := uc.loadResult(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.CanReadAll() && result.UserID != actor.UserID {
		return nil, NewError(KindPermissionDenied, "collaborators may only read their own analyses")
	}
	return result, nil
}

// ListResults returns a page of analyses scoped to the actor's role:
// Collaborators see only their own submissions.
func (uc *AnalysisUseCase) ListResults(ctx context.Context, actor auth.Identity, skip, limit int) ([]*repository.AnalysisResult, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	ownerID := ""
	if !actor.Role.CanReadAll() {
		ownerID = actor.UserID
	}

	results, err := uc.store.List(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, uc.storeError("list analysis results", "", err)
	}
	return results, nil
}

func (uc *AnalysisUseCase) loadResult(ctx context.Context, analysisID string) (*repository.AnalysisResult, error) {
	cacheKey := analysisCacheKey(analysisID)
	if cached, err := uc.withRedisGet(ctx, analysisID, "cache.get.analysis", cacheKey); err == nil {
		var result repository.AnalysisResult
		if err := json.Unmarshal([]byte(cached), &result); err != nil {
			logging.WithOperation(uc.logger, "usecase.get_result", analysisID).Warn("failed to decode cached analysis", zap.Error(err))
		} else {
			return &result, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logging.WithOperation(uc.logger, "usecase.get_result", analysisID).Warn("failed to read cache", zap.Error(err))
	}

	result, err := uc.store.FindByID(ctx, analysisID)
	if err != nil {
		return nil, uc.storeError("load analysis result", analysisID, err)
	}
	return result, nil
}

func (uc *AnalysisUseCase) cacheResult(ctx context.Context, result *repository.AnalysisResult) error {
	serialized, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return uc.withRedisRetry(ctx, result.ID, "cache.set.analysis", func() error {
		return uc.cache.Set(ctx, analysisCacheKey(result.ID), string(serialized), cacheTTL)
	})
}

// archiveArtifact uploads the raw image off the request path. Failures are
// logged, never surfaced to the submitter.
func (uc *AnalysisUseCase) archiveArtifact(key string, data []byte, contentType string, opLogger *zap.Logger) {
	if uc.artifacts == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.artifacts.Put(ctx, key, data, contentType); err != nil {
			opLogger.Warn("failed to archive uploaded image", zap.Error(err), zap.String("object_key", key))
			return
		}
		opLogger.Debug("archived uploaded image", zap.String("object_key", key))
	}()
}

func (uc *AnalysisUseCase) storeError(message, analysisID string, err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return WrapError(KindNotFound, message, err)
	case repository.IsTransient(err):
		return WrapError(KindUnavailable, message, err)
	default:
		return WrapError(KindInternal, message, logging.NewOperationError("usecase."+message, analysisID, err))
	}
}

func analysisCacheKey(analysisID string) string {
	return fmt.Sprintf("analysis:%s", analysisID)
}

func (uc *AnalysisUseCase) withRedisRetry(ctx context.Context, analysisID, operation string, fn func() error) error {
	if uc.retryAttempts <= 1 {
		err := fn()
		return logging.NewOperationError(operation, analysisID, err)
	}

	backoff := uc.initialBackoff
	opLogger := logging.WithOperation(uc.logger, operation, analysisID)
	var err error
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return logging.NewOperationError(operation, analysisID, ctx.Err())
			case <-time.After(backoff):
			}
			if next := backoff * 2; next <= uc.maxBackoff {
				backoff = next
			}
		}

		err = fn()
		if err == nil {
			if attempt > 0 {
				opLogger.Info("redis operation succeeded after retry", zap.Int("attempt", attempt+1))
			}
			return nil
		}

		if !repository.IsTransient(err) || attempt == uc.retryAttempts-1 {
			return logging.NewOperationError(operation, analysisID, err)
		}

		opLogger.Warn("transient redis error", zap.Error(err), zap.Int("attempt", attempt+1))
	}
	return logging.NewOperationError(operation, analysisID, err)
}

func (uc *AnalysisUseCase) withRedisGet(ctx context.Context, analysisID, operation, cacheKey string) (string, error) {
	var result string
	err := uc.withRedisRetry(ctx, analysisID, operation, func() error {
		value, err := uc.cache.Get(ctx, cacheKey)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/logging"
)

// ValidateAnalysis applies the one-shot pending→validated transition.
// Only Scientists and Admins may validate. The store update is conditional
// on the record still being pending, so of two concurrent validators exactly
// one succeeds; the other sees AlreadyValidated. Zero affected rows is
// disambiguated with a follow-up read instead of being reported as a bare
// not-found.
func (uc *AnalysisUseCase) ValidateAnalysis(ctx context.Context, actor auth.Identity, analysisID, notes string) error {
	if actor.UserID == "" {
		return NewError(KindUnauthenticated, "authentication required")
	}
	if !actor.Role.CanValidate() {
		return NewError(KindPermissionDenied, "validation requires the Scientist or Admin role")
	}

	opLogger := logging.WithOperation(uc.logger, "usecase.validate_analysis", analysisID)

	affected, err := uc.store.MarkValidated(ctx, analysisID, actor.UserID, notes, time.Now().UTC())
	if err != nil {
		wrapped := uc.storeError("apply validation", analysisID, err)
		opLogger.Error("validation update failed", zap.Error(wrapped))
		return wrapped
	}

	if affected == 0 {
		existing, err := uc.store.FindByID(ctx, analysisID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return NewError(KindNotFound, "analysis not found")
		case err != nil:
			return uc.storeError("probe analysis after validation", analysisID, err)
		case existing.Validated():
			return NewError(KindAlreadyValidated, "analysis has already been validated")
		default:
			// The record exists and is still pending, yet the conditional
			// update touched nothing. Treat as retryable.
			return NewError(KindUnavailable, "validation did not apply, retry")
		}
	}

	// Drop any cached pre-validation copy.
	if err := uc.cache.Del(ctx, analysisCacheKey(analysisID)); err != nil {
		opLogger.Warn("failed to invalidate cached analysis", zap.Error(err))
	}

	opLogger.Info("analysis validated",
		zap.String("validated_by", actor.UserID),
		zap.String("role", string(actor.Role)),
	)
	return nil
}

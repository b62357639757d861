package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/corneal-ai/internal/logging"
)

type transientTestError struct{}

func (transientTestError) Error() string   { return "transient" }
func (transientTestError) Timeout() bool   { return true }
func (transientTestError) Temporary() bool { return true }

func TestExecuteWithRetryRetriesTransientErrors(t *testing.T) {
	r := retrier{
		logger:         zap.NewNop(),
		retryAttempts:  3,
		initialBackoff: time.Millisecond,
		maxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := r.executeWithRetry(context.Background(), "test.operation", "rec-1", func() error {
		attempts++
		if attempts < 2 {
			return transientTestError{}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestExecuteWithRetryReturnsOperationError(t *testing.T) {
	r := retrier{
		logger:         zap.NewNop(),
		retryAttempts:  2,
		initialBackoff: time.Millisecond,
		maxBackoff:     2 * time.Millisecond,
	}

	attempts := 0
	err := r.executeWithRetry(context.Background(), "test.operation", "rec-2", func() error {
		attempts++
		return errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}

	var opErr *logging.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T", err)
	}
	if opErr.Operation != "test.operation" {
		t.Fatalf("unexpected operation: %s", opErr.Operation)
	}
	if opErr.RecordID != "rec-2" {
		t.Fatalf("unexpected record id: %s", opErr.RecordID)
	}
}

func TestIsTransientClassifiesTimeouts(t *testing.T) {
	if !IsTransient(transientTestError{}) {
		t.Fatal("expected timeout error to be transient")
	}
	if !IsTransient(context.DeadlineExceeded) {
		t.Fatal("expected deadline exceeded to be transient")
	}
	if IsTransient(errors.New("boom")) {
		t.Fatal("expected plain error to be permanent")
	}
	if IsTransient(nil) {
		t.Fatal("nil is not an error")
	}
}

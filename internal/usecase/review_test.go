package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/example/corneal-ai/internal/repository"
)

func pendingResult(id, ownerID string) *repository.AnalysisResult {
	return &repository.AnalysisResult{ID: id, UserID: ownerID, PrimaryDiagnosis: "cond-a"}
}

func TestValidateAnalysisRequiresPrivilegedRole(t *testing.T) {
	store := newStubStore()
	store.results["a-1"] = pendingResult("a-1", "user-1")
	uc := newTestUseCase(store, newStubCache(), &stubScorer{result: validScore()})

	err := uc.ValidateAnalysis(context.Background(), collaborator("user-1"), "a-1", "looks fine")
	if KindOf(err) != KindPermissionDenied {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if store.results["a-1"].Validated() {
		t.Fatal("record must stay pending after a denied validation")
	}
}

func TestValidateAnalysisAppliesOnce(t *testing.T) {
	store := newStubStore()
	store.results["a-1"] = pendingResult("a-1", "user-1")
	cache := newStubCache()
	uc := newTestUseCase(store, cache, &stubScorer{result: validScore()})

	if err := uc.ValidateAnalysis(context.Background(), scientist("sci-1"), "a-1", "confirmed keratoconus"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	record := store.results["a-1"]
	if !record.Validated() {
		t.Fatal("record should be validated")
	}
	if *record.ValidatedBy != "sci-1" {
		t.Fatalf("validated_by = %q, want sci-1", *record.ValidatedBy)
	}
	if *record.ScientistNotes != "confirmed keratoconus" {
		t.Fatalf("notes = %q", *record.ScientistNotes)
	}
	if record.ValidationDate == nil {
		t.Fatal("validation date missing")
	}
	if len(cache.delKeys) != 1 || cache.delKeys[0] != analysisCacheKey("a-1") {
		t.Fatalf("expected cache invalidation for a-1, got %v", cache.delKeys)
	}

	// Second validation must not silently re-apply.
	err := uc.ValidateAnalysis(context.Background(), admin("admin-1"), "a-1", "overriding notes")
	if KindOf(err) != KindAlreadyValidated {
		t.Fatalf("expected already validated, got %v", err)
	}
	if *record.ScientistNotes != "confirmed keratoconus" {
		t.Fatalf("original notes were overwritten: %q", *record.ScientistNotes)
	}
}

func TestValidateAnalysisUnknownIDIsNotFound(t *testing.T) {
	uc := newTestUseCase(newStubStore(), newStubCache(), &stubScorer{result: validScore()})

	err := uc.ValidateAnalysis(context.Background(), scientist("sci-1"), "missing", "notes")
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConcurrentValidationsExactlyOneWins(t *testing.T) {
	store := newStubStore()
	store.results["a-1"] = pendingResult("a-1", "user-1")
	uc := newTestUseCase(store, newStubCache(), &stubScorer{result: validScore()})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	notes := []string{"first scientist", "second scientist"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.ValidateAnalysis(context.Background(), scientist("sci-"+notes[i]), "a-1", notes[i])
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case KindOf(err) == KindAlreadyValidated:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	record := store.results["a-1"]
	if record.ScientistNotes == nil {
		t.Fatal("winning notes missing")
	}
	if *record.ScientistNotes != "first scientist" && *record.ScientistNotes != "second scientist" {
		t.Fatalf("persisted notes %q belong to neither caller", *record.ScientistNotes)
	}
}

package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/analyzer"
	"github.com/halalcheck/halalcheck/internal/islamic/knowledge"
	"github.com/halalcheck/halalcheck/internal/islamic/madhab"
	"github.com/halalcheck/halalcheck/internal/islamic/verification"
	"github.com/halalcheck/halalcheck/internal/workflow"
	"github.com/halalcheck/halalcheck/pkg/events"
)

func newRuntime(t *testing.T) *workflow.Runtime {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	base := knowledge.New()
	if err := base.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	return &workflow.Runtime{
		FallbackEnabled: false,
		Analyzer:        analyzer.New(base, analyzer.DefaultConfig()),
		Madhab:          madhab.New(),
		Verification:    verification.New(verification.Config{}, logger),
		Bus:             events.New(0, 0, logger),
		Logger:          logger,
	}
}

func classification(name string, status islamic.Status, confidence int) islamic.EnhancedClassification {
	return islamic.EnhancedClassification{
		IngredientClassification: islamic.IngredientClassification{
			Name:       name,
			Status:     status,
			Confidence: confidence,
		},
	}
}

func TestAggregateHaramAbsorbing(t *testing.T) {
	req := workflow.Request{ProductName: "Gummy Mix"}
	result := workflow.Aggregate(req, []islamic.EnhancedClassification{
		classification("water", islamic.StatusHalal, 100),
		classification("pork gelatin", islamic.StatusHaram, 100),
		classification("natural flavors", islamic.StatusMashbooh, 60),
	})

	if result.OverallStatus != islamic.StatusHaram {
		t.Errorf("status = %s, want HARAM", result.OverallStatus)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(result.Warnings))
	}
	if result.Compliance.Haram != 1 {
		t.Errorf("haram count = %d, want 1", result.Compliance.Haram)
	}
	if len(result.Recommendations) == 0 {
		t.Error("haram verdict must carry recommendations")
	}
}

func TestAggregateMashboohWithoutHaram(t *testing.T) {
	req := workflow.Request{ProductName: "Cream Filling"}
	result := workflow.Aggregate(req, []islamic.EnhancedClassification{
		classification("milk powder", islamic.StatusHalal, 100),
		classification("natural flavors", islamic.StatusMashbooh, 60),
	})

	if result.OverallStatus != islamic.StatusMashbooh {
		t.Errorf("status = %s, want MASHBOOH", result.OverallStatus)
	}
	if result.ConfidenceScore != 80 {
		t.Errorf("confidence = %d, want mean 80", result.ConfidenceScore)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("got %d warnings, want none without haram ingredients", len(result.Warnings))
	}
}

func TestAggregateEmpty(t *testing.T) {
	result := workflow.Aggregate(workflow.Request{ProductName: "Empty"}, nil)

	if result.OverallStatus != islamic.StatusHalal {
		t.Errorf("status = %s, want HALAL", result.OverallStatus)
	}
	if result.ConfidenceScore != 0 {
		t.Errorf("confidence = %d, want 0", result.ConfidenceScore)
	}
}

func TestExecuteHaramProduct(t *testing.T) {
	rt := newRuntime(t)

	result, err := workflow.Execute(context.Background(), rt, workflow.Request{
		ProductName: "Test Candy",
		Ingredients: []string{"water", "cane sugar", "pork gelatin"},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.OverallStatus != islamic.StatusHaram {
		t.Errorf("status = %s, want HARAM", result.OverallStatus)
	}
	if len(result.Ingredients) != 3 {
		t.Fatalf("got %d ingredient results, want 3", len(result.Ingredients))
	}

	gelatin := result.Ingredients[2]
	if gelatin.Status != islamic.StatusHaram {
		t.Errorf("gelatin status = %s, want HARAM", gelatin.Status)
	}
	found := false
	for _, ref := range gelatin.References {
		if ref.Citation == "Q2:173" {
			found = true
		}
	}
	if !found {
		t.Error("gelatin classification missing Q2:173 reference")
	}
}

func TestExecuteHalalProduct(t *testing.T) {
	rt := newRuntime(t)

	result, err := workflow.Execute(context.Background(), rt, workflow.Request{
		ProductName: "Spring Water",
		Ingredients: []string{"water"},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if result.OverallStatus != islamic.StatusHalal {
		t.Errorf("status = %s, want HALAL", result.OverallStatus)
	}
	if result.ConfidenceScore != 100 {
		t.Errorf("confidence = %d, want 100", result.ConfidenceScore)
	}
	if len(result.Recommendations) != 1 || !strings.Contains(result.Recommendations[0], "eligible") {
		t.Errorf("recommendations = %v, want certification eligibility", result.Recommendations)
	}
}

func TestExecuteEmptyIngredients(t *testing.T) {
	rt := newRuntime(t)

	if _, err := workflow.Execute(context.Background(), rt, workflow.Request{ProductName: "Nothing"}); err == nil {
		t.Fatal("expected an error for an empty ingredient list")
	}
}

func TestExecuteDoesNotEmit(t *testing.T) {
	rt := newRuntime(t)

	emitted := 0
	rt.Bus.Subscribe(workflow.EventAnalysisCompleted, "test", func(events.Event) error {
		emitted++
		return nil
	})

	_, err := workflow.Execute(context.Background(), rt, workflow.Request{
		ProductName: "Spring Water",
		Ingredients: []string{"water"},
		RequestID:   "req-42",
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if emitted != 0 {
		t.Errorf("got %d completion events during execution, want 0 before persistence", emitted)
	}
}

func TestEmitCompleted(t *testing.T) {
	rt := newRuntime(t)

	var payloads []workflow.CompletedPayload
	rt.Bus.Subscribe(workflow.EventAnalysisCompleted, "test", func(e events.Event) error {
		if p, ok := e.Data.(workflow.CompletedPayload); ok {
			payloads = append(payloads, p)
		}
		return nil
	})

	req := workflow.Request{
		ProductName: "Spring Water",
		Ingredients: []string{"water"},
		RequestID:   "req-42",
	}
	result, err := workflow.Execute(context.Background(), rt, req)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	event := workflow.EmitCompleted(rt.Bus, req, *result)
	if event.Source != workflow.EventSource {
		t.Errorf("event source = %q, want %q", event.Source, workflow.EventSource)
	}

	if len(payloads) != 1 {
		t.Fatalf("got %d completion events, want 1", len(payloads))
	}
	if payloads[0].RequestID != "req-42" {
		t.Errorf("request id = %q, want req-42", payloads[0].RequestID)
	}
	if payloads[0].Result.OverallStatus != islamic.StatusHalal {
		t.Errorf("event status = %s, want HALAL", payloads[0].Result.OverallStatus)
	}
}

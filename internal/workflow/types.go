package workflow

import (
	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/pkg/events"
)

// State bag keys shared by the graph nodes.
const (
	KeyRequest         = "request"
	KeyClassifications = "classifications"
	KeyResult          = "result"
)

// EventAnalysisCompleted is emitted on the bus when a product analysis
// finishes. Its payload is a CompletedPayload.
const EventAnalysisCompleted = "islamic-analysis-completed"

// EventSource identifies this workflow as an event emitter.
const EventSource = "analysis-workflow"

// Request is the inbound analysis request: a product, its ingredient
// strings, and optional context modifiers. RequestID, when set, is echoed in
// the completion event payload so callers can correlate over the bus.
type Request struct {
	ProductName string                   `json:"product_name"`
	Ingredients []string                 `json:"ingredients"`
	Context     *islamic.AnalysisContext `json:"context,omitempty"`
	RequestID   string                   `json:"request_id,omitempty"`
}

// CompletedPayload is the completion event payload.
type CompletedPayload struct {
	ProductName string                 `json:"product_name"`
	RequestID   string                 `json:"request_id,omitempty"`
	Result      islamic.AnalysisResult `json:"result"`
}

// EmitCompleted publishes the analysis-completed event for a finished
// request. Callers emit after the result has been persisted, so subscribers
// that reference the stored analysis row always find it.
func EmitCompleted(bus *events.Bus, req Request, result islamic.AnalysisResult) events.Event {
	return bus.Emit(EventAnalysisCompleted, CompletedPayload{
		ProductName: req.ProductName,
		RequestID:   req.RequestID,
		Result:      result,
	}, EventSource, "")
}

// Madhab returns the requested school, defaulting to General.
func (r Request) Madhab() islamic.Madhab {
	if r.Context == nil || r.Context.Madhab == "" {
		return islamic.MadhabGeneral
	}
	return r.Context.Madhab
}

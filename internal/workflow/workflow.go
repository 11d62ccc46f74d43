// Package workflow implements the product analysis workflow. It provides the
// foundational types, aggregation rules, and LLM fallback used by the 4-node
// state graph (resolve → fallback? → augment → finalize).
package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

// Execute runs the analysis workflow for one product. It builds the state
// graph (resolve → fallback? → augment → finalize), executes it, and
// extracts the AnalysisResult from the final state. Execute publishes no
// events; callers announce completion with EmitCompleted after persisting
// the result.
func Execute(ctx context.Context, rt *Runtime, req Request) (*islamic.AnalysisResult, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyRequest, req)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("halalcheck-analysis")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("resolve", ResolveNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("fallback", FallbackNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("augment", AugmentNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	needsFallback := rt.needsFallback

	// resolve → fallback (when unknowns remain and an agent is configured)
	if err := graph.AddEdge("resolve", "fallback", needsFallback); err != nil {
		return nil, err
	}

	// resolve → augment (when nothing needs the model)
	if err := graph.AddEdge("resolve", "augment", state.Not(needsFallback)); err != nil {
		return nil, err
	}

	// fallback → augment (unconditional)
	if err := graph.AddEdge("fallback", "augment", nil); err != nil {
		return nil, err
	}

	// augment → finalize (unconditional)
	if err := graph.AddEdge("augment", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("resolve"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*islamic.AnalysisResult, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(islamic.AnalysisResult)
	if !ok {
		return nil, fmt.Errorf("%s is not AnalysisResult", KeyResult)
	}

	return &result, nil
}

func extractClassifications(s state.State) ([]islamic.EnhancedClassification, error) {
	val, ok := s.Get(KeyClassifications)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrResolveFailed, KeyClassifications)
	}

	classifications, ok := val.([]islamic.EnhancedClassification)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []EnhancedClassification", ErrResolveFailed, KeyClassifications)
	}

	return classifications, nil
}

func extractRequest(s state.State) (Request, error) {
	val, ok := s.Get(KeyRequest)
	if !ok {
		return Request{}, fmt.Errorf("%w: missing %s in state", ErrResolveFailed, KeyRequest)
	}

	req, ok := val.(Request)
	if !ok {
		return Request{}, fmt.Errorf("%w: %s is not Request", ErrResolveFailed, KeyRequest)
	}

	return req, nil
}

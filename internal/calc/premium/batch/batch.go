package batch

import (
	"fmt"

	"Porthole/internal/calc/porthole"
)

type BatchInput struct {
	Items []porthole.Input `json:"items"`
}

type BatchResult struct {
	Results []porthole.Result `json:"results"`
}

// Calculate evaluates every item independently. Undefined quantities stay
// inside each result, so the only failure is an empty batch.
func Calculate(in BatchInput) (BatchResult, error) {
	if len(in.Items) == 0 {
		return BatchResult{}, fmt.Errorf("no items")
	}
	out := BatchResult{Results: make([]porthole.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		out.Results = append(out.Results, porthole.Calculate(item))
	}
	return out, nil
}

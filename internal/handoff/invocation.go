// Package handoff renders a resolved invocation for the engines that execute it.
package handoff

import (
	"errors"
	"fmt"

	"planweaver/internal/params"
)

// Invocation is the document handed to the planning, evaluation, database and utility
// engines: which operation to run and the validated options of every group.
type Invocation struct {
	ID        string                    `json:"id" yaml:"id"`
	Operation params.OperationType      `json:"operation" yaml:"operation"`
	Options   map[string]map[string]any `json:"options" yaml:"options"`
	Context   *params.ContextOptions    `json:"context,omitempty" yaml:"context,omitempty"`
}

// NewInvocation builds the handoff document for a successful result.
func NewInvocation(id string, res params.Result) (Invocation, error) {
	if !res.OK() {
		return Invocation{}, fmt.Errorf("cannot hand off an invalid invocation: %w", res.Err)
	}
	if id == "" {
		return Invocation{}, errors.New("invocation id is required")
	}
	opts := make(map[string]map[string]any, len(res.Values))
	for group, values := range res.Values {
		opts[string(group)] = values.Map()
	}
	return Invocation{
		ID:        id,
		Operation: res.Operation,
		Options:   opts,
		Context:   res.Context,
	}, nil
}

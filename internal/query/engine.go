// Package query evaluates jq filters against the loaded JSON input.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// ErrEmptyResult is returned when a filter produces no output at all.
var ErrEmptyResult = errors.New("filter produced no output")

// Engine runs filters over a fixed set of input values.
type Engine struct {
	inputs []any
}

// NewEngine creates an engine over the decoded input stream.
func NewEngine(inputs []any) *Engine {
	return &Engine{inputs: inputs}
}

// Inputs returns the decoded input values.
func (e *Engine) Inputs() []any {
	return e.inputs
}

// Eval compiles filter and runs it against every input value, collecting all
// outputs. An empty filter is treated as the identity.
func (e *Engine) Eval(ctx context.Context, filter string) ([]any, error) {
	src := strings.TrimSpace(filter)
	if src == "" {
		src = "."
	}

	parsed, err := gojq.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	var out []any
	for _, input := range e.inputs {
		iter := code.RunWithContext(ctx, input)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, isErr := v.(error); isErr {
				var halt *gojq.HaltError
				if errors.As(err, &halt) && halt.Value() == nil {
					break
				}
				return nil, err
			}
			out = append(out, v)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}

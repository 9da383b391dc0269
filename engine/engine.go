package engine

import (
	"log/slog"

	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/stream"
)

// Execute runs chain over every value of input and returns the surviving
// outputs in input order.
func Execute(chain *ast.Chain, input *stream.Stream) *stream.Stream {
	result := stream.New(input.Name)
	dropped := 0
	for _, v := range input.Values {
		out, ok := Run(chain, v)
		if !ok {
			dropped++
			continue
		}
		result.Append(out)
	}
	slog.Debug("executed chain", "stream", input.Name, "kept", result.Len(), "dropped", dropped)
	return result
}

// Mismatch describes an input on which two chains disagree.
type Mismatch struct {
	Input int64
	Left  Result
	Right Result
}

// Compare evaluates both chains over every value of input and returns the
// first input on which their results differ, or nil if they agree.
func Compare(left, right *ast.Chain, input *stream.Stream) *Mismatch {
	for _, v := range input.Values {
		l := Evaluate(left, v)
		r := Evaluate(right, v)
		if l != r {
			return &Mismatch{Input: v, Left: l, Right: r}
		}
	}
	return nil
}

package port

import "github.com/bnema/dragkit/internal/domain/entity"

// AcceptPolicy decides whether a zone accepts the operation in its current state.
type AcceptPolicy func(op *entity.Operation) bool

// PolicyCompiler turns a textual predicate into an AcceptPolicy.
type PolicyCompiler interface {
	Compile(source string) (AcceptPolicy, error)
}

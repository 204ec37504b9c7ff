package dnd

import (
	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
)

// AcceptAll accepts every operation.
func AcceptAll(*entity.Operation) bool { return true }

// KindsPolicy accepts operations whose payload carries at least one of kinds.
// With no kinds it accepts everything.
func KindsPolicy(kinds ...entity.PayloadKind) port.AcceptPolicy {
	if len(kinds) == 0 {
		return AcceptAll
	}
	return func(op *entity.Operation) bool {
		p := op.Payload()
		for _, k := range kinds {
			if p.Has(k) {
				return true
			}
		}
		return false
	}
}

// AllOf accepts when every non-nil policy accepts.
func AllOf(policies ...port.AcceptPolicy) port.AcceptPolicy {
	return func(op *entity.Operation) bool {
		for _, p := range policies {
			if p != nil && !p(op) {
				return false
			}
		}
		return true
	}
}

// MaxIndexPolicy rejects insertion beyond max; operations without an index pass.
func MaxIndexPolicy(max int) port.AcceptPolicy {
	return func(op *entity.Operation) bool {
		idx, ok := op.Index()
		return !ok || idx <= max
	}
}

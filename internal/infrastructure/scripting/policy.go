// Package scripting compiles JavaScript acceptance predicates for drop zones.
package scripting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grafana/sobek"

	"github.com/bnema/dragkit/internal/application/port"
	"github.com/bnema/dragkit/internal/domain/entity"
	"github.com/bnema/dragkit/internal/logging"
)

// DefaultTimeout bounds a single predicate evaluation.
const DefaultTimeout = 50 * time.Millisecond

var ErrEmptyPolicy = errors.New("policy source is empty")

// Compiler turns JavaScript expressions into zone acceptance policies.
//
// The expression sees one object, drag:
//
//	drag.payload   array of payload kinds ("resource", "url", ...)
//	drag.index     candidate insertion index, or null
//	drag.fromZone  origin zone id
//	drag.toZone    zone currently under the pointer
//	drag.sourceId  id of the dragged source
//
// A truthy result accepts. Runtime errors and timeouts reject.
type Compiler struct {
	ctx     context.Context
	timeout time.Duration
}

var _ port.PolicyCompiler = (*Compiler)(nil)

// NewCompiler creates a compiler; evaluation failures are logged through ctx.
func NewCompiler(ctx context.Context, timeout time.Duration) *Compiler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Compiler{ctx: ctx, timeout: timeout}
}

// Compile parses source once and returns a policy bound to a private runtime.
func (c *Compiler) Compile(source string) (port.AcceptPolicy, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptyPolicy
	}

	wrapped := "(function (drag) { return (" + source + "); })"
	prg, err := sobek.Compile("policy", wrapped, true)
	if err != nil {
		return nil, fmt.Errorf("compile policy %q: %w", source, err)
	}

	vm := sobek.New()
	fnValue, err := vm.RunProgram(prg)
	if err != nil {
		return nil, fmt.Errorf("load policy %q: %w", source, err)
	}
	fn, ok := sobek.AssertFunction(fnValue)
	if !ok {
		return nil, fmt.Errorf("policy %q did not produce a function", source)
	}

	p := &policy{vm: vm, fn: fn, source: source, timeout: c.timeout, ctx: c.ctx}
	return p.accepts, nil
}

// policy serializes access to its runtime; sobek runtimes are not goroutine safe.
type policy struct {
	mu      sync.Mutex
	vm      *sobek.Runtime
	fn      sobek.Callable
	source  string
	timeout time.Duration
	ctx     context.Context
}

func (p *policy) accepts(op *entity.Operation) bool {
	if op == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	timer := time.AfterFunc(p.timeout, func() { p.vm.Interrupt("policy timeout") })
	defer func() {
		timer.Stop()
		p.vm.ClearInterrupt()
	}()

	res, err := p.fn(sobek.Undefined(), p.vm.ToValue(newDragView(op)))
	if err != nil {
		logging.FromContext(p.ctx).Warn().
			Err(err).
			Str("policy", p.source).
			Str("operation_id", string(op.ID())).
			Msg("acceptance policy failed, rejecting")
		return false
	}
	return res.ToBoolean()
}

func newDragView(op *entity.Operation) map[string]any {
	kinds := op.Payload().Kinds()
	payload := make([]any, len(kinds))
	for i, k := range kinds {
		payload[i] = string(k)
	}

	var index any
	if idx, ok := op.Index(); ok {
		index = idx
	}

	return map[string]any{
		"payload":  payload,
		"index":    index,
		"fromZone": string(op.FromZone()),
		"toZone":   string(op.ToZone()),
		"sourceId": string(op.Source()),
	}
}

// Package host defines the Evaluator capability set: the surface a host
// application implements so the evaluator can look up variables, invoke
// members/methods/indexers, sink parameter declarations, drain buffered
// output, and cooperate with cancellation and a custom comparer registry.
package host

import (
	"context"

	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/value"
)

// Evaluator is the capability set a host application must provide. The
// evaluator treats every method here as opaque and synchronous: the sole
// blocking I/O is whatever the host performs on its callbacks.
type Evaluator interface {
	// GetVariable is the fallback variable lookup used when a scope chain
	// lookup misses locally.
	GetVariable(name string) (value.Value, bool)

	// InvokeMethod calls a global/free method by name.
	InvokeMethod(ctx context.Context, name string, args []value.Value) (value.Value, error)

	// InvokeMember reads property `name` on receiver when args is nil, or
	// calls method `name` on receiver with args otherwise.
	InvokeMember(ctx context.Context, receiver value.Value, name string, args []value.Value) (value.Value, error)

	// InvokeIndexer calls the host's indexer with (receiver, key).
	InvokeIndexer(ctx context.Context, receiver value.Value, key value.Value) (value.Value, error)

	// SaveParameter sinks a parameter declaration's name and value.
	SaveParameter(name string, v value.Value)

	// FlushOutput drains and returns any buffered textual output the host
	// has accumulated (e.g. from a print-like builtin it exposes through
	// InvokeMethod). Returns "" when nothing was buffered.
	FlushOutput() string

	// Context returns the cancellation context for this evaluation. A
	// host with no real deadline returns context.Background().
	Context() context.Context

	// Comparers returns the comparer registry to consult for comparison
	// operators, seeded with host-specific entries on top of the three
	// built-ins.
	Comparers() *comparer.Registry
}

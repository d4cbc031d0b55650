package host

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/value"
)

// MethodFunc is a free/global method the host exposes to scripts.
type MethodFunc func(ctx context.Context, args []value.Value) (value.Value, error)

// MemberFunc reads or calls a member on a receiver. args is nil for a
// property read and non-nil (possibly empty) for a method call.
type MemberFunc func(ctx context.Context, receiver value.Value, args []value.Value) (value.Value, error)

// IndexerFunc resolves receiver[key].
type IndexerFunc func(ctx context.Context, receiver value.Value, key value.Value) (value.Value, error)

// Map is a small, in-memory reference Evaluator host: a set of named
// variables, registered free methods, member accessors, and an optional
// indexer, plus an output buffer. It is a thin, struct-literal-friendly
// facade over plain Go maps rather than a full object model.
type Map struct {
	Vars      map[string]value.Value
	Methods   map[string]MethodFunc
	Members   map[string]MemberFunc
	Indexer   IndexerFunc
	Params    map[string]value.Value
	Reg       *comparer.Registry
	ctx       context.Context
	output    bytes.Buffer
}

// NewMap returns a ready-to-use reference host. ctx may be nil, in which
// case context.Background() is used.
func NewMap(ctx context.Context) *Map {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Map{
		Vars:    make(map[string]value.Value),
		Methods: make(map[string]MethodFunc),
		Members: make(map[string]MemberFunc),
		Params:  make(map[string]value.Value),
		Reg:     comparer.New(),
		ctx:     ctx,
	}
}

// Print appends text to the output buffer. This is how a host's own
// PrintLn-style free method wires into FlushOutput.
func (m *Map) Print(s string) {
	m.output.WriteString(s)
}

func (m *Map) GetVariable(name string) (value.Value, bool) {
	v, ok := m.Vars[name]
	return v, ok
}

func (m *Map) InvokeMethod(ctx context.Context, name string, args []value.Value) (value.Value, error) {
	fn, ok := m.Methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn(ctx, args)
}

func (m *Map) InvokeMember(ctx context.Context, receiver value.Value, name string, args []value.Value) (value.Value, error) {
	fn, ok := m.Members[name]
	if !ok {
		return nil, fmt.Errorf("unknown member: %s", name)
	}
	return fn(ctx, receiver, args)
}

func (m *Map) InvokeIndexer(ctx context.Context, receiver value.Value, key value.Value) (value.Value, error) {
	if c, ok := receiver.(value.Collection); ok && m.Indexer == nil {
		return indexCollection(c, key)
	}
	if m.Indexer == nil {
		return nil, fmt.Errorf("host does not support indexing")
	}
	return m.Indexer(ctx, receiver, key)
}

func indexCollection(c value.Collection, key value.Value) (value.Value, error) {
	switch k := key.(type) {
	case value.Integer:
		v, ok := c.Get(int(k.V))
		if !ok {
			return nil, fmt.Errorf("index out of bounds: %d", k.V)
		}
		return v, nil
	case value.Text:
		v, ok := c.Get(k.V)
		if !ok {
			return nil, fmt.Errorf("key not found: %s", k.V)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("invalid index key type: %s", key.Tag())
	}
}

func (m *Map) SaveParameter(name string, v value.Value) {
	m.Params[name] = v
}

func (m *Map) FlushOutput() string {
	s := m.output.String()
	m.output.Reset()
	return s
}

func (m *Map) Context() context.Context {
	return m.ctx
}

func (m *Map) Comparers() *comparer.Registry {
	return m.Reg
}

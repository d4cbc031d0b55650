package host_test

import (
	"context"
	"testing"

	"github.com/cwbudde/exprscript/host"
	"github.com/cwbudde/exprscript/value"
)

func TestMapVariablesAndFlushOutput(t *testing.T) {
	m := host.NewMap(nil)
	m.Vars["x"] = value.NewInteger(1)

	if v, ok := m.GetVariable("x"); !ok || v.(value.Integer).V != 1 {
		t.Fatalf("expected x=1, got %v, %v", v, ok)
	}

	m.Print("hello")
	m.Print(" world")
	if out := m.FlushOutput(); out != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", out)
	}
	if out := m.FlushOutput(); out != "" {
		t.Fatalf("expected a drained buffer to be empty, got %q", out)
	}
}

func TestMapInvokeMethodUnknown(t *testing.T) {
	m := host.NewMap(nil)
	if _, err := m.InvokeMethod(context.Background(), "DoesNotExist", nil); err == nil {
		t.Fatalf("expected an error invoking an unregistered method")
	}
}

func TestMapInvokeMethodRegistered(t *testing.T) {
	m := host.NewMap(nil)
	m.Methods["Double"] = func(_ context.Context, args []value.Value) (value.Value, error) {
		n := args[0].(value.Integer)
		return value.NewInteger(n.V * 2), nil
	}
	v, err := m.InvokeMethod(context.Background(), "Double", []value.Value{value.NewInteger(21)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(value.Integer).V != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestMapIndexerFallsBackToCollection(t *testing.T) {
	m := host.NewMap(nil)
	coll := value.NewCollection(value.NewText("a"), value.NewText("b"))
	v, err := m.InvokeIndexer(context.Background(), coll, value.NewInteger(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(value.Text).V != "b" {
		t.Fatalf("expected \"b\", got %v", v)
	}
}

func TestMapIndexerOutOfBounds(t *testing.T) {
	m := host.NewMap(nil)
	coll := value.NewCollection(value.NewText("a"))
	if _, err := m.InvokeIndexer(context.Background(), coll, value.NewInteger(5)); err == nil {
		t.Fatalf("expected an out-of-bounds error")
	}
}

func TestMapSaveParameter(t *testing.T) {
	m := host.NewMap(nil)
	m.SaveParameter("threshold", value.NewInteger(10))
	if v := m.Params["threshold"]; v.(value.Integer).V != 10 {
		t.Fatalf("expected threshold=10, got %v", v)
	}
}

func TestMapContextDefaultsToBackground(t *testing.T) {
	m := host.NewMap(nil)
	if m.Context() == nil {
		t.Fatalf("expected a non-nil default context")
	}
}

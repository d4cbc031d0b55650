package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/cwbudde/exprscript/host"
	"github.com/cwbudde/exprscript/value"
)

// registerBuiltins wires a minimal free-method set onto a reference Map
// host: Print/PrintLn concatenate their arguments' String() form into the
// host's output buffer, and a handful of string helpers are exposed for
// scripts run from this CLI.
func registerBuiltins(h *host.Map) {
	h.Methods["Print"] = func(_ context.Context, args []value.Value) (value.Value, error) {
		for _, a := range args {
			h.Print(a.String())
		}
		return value.Null{}, nil
	}
	h.Methods["PrintLn"] = func(_ context.Context, args []value.Value) (value.Value, error) {
		for _, a := range args {
			h.Print(a.String())
		}
		h.Print("\n")
		return value.Null{}, nil
	}
	h.Methods["Length"] = func(_ context.Context, args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errArity("Length", 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Text:
			return value.NewInteger(int32(len([]rune(v.V)))), nil
		case value.Collection:
			return value.NewInteger(int32(len(v.Items))), nil
		default:
			return nil, errType("Length expects Text or Collection, got %s", v.Tag())
		}
	}
	h.Methods["UpperCase"] = stringUnary("UpperCase", strings.ToUpper)
	h.Methods["LowerCase"] = stringUnary("LowerCase", strings.ToLower)
	h.Methods["Trim"] = stringUnary("Trim", strings.TrimSpace)
	h.Methods["Abs"] = func(_ context.Context, args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errArity("Abs", 1, len(args))
		}
		switch v := args[0].(type) {
		case value.Integer:
			n := v.V
			if n < 0 {
				n = -n
			}
			return value.NewInteger(n), nil
		case value.Decimal:
			return value.NewDecimal(v.V.Abs()), nil
		default:
			return nil, errType("Abs expects Integer or Decimal, got %s", v.Tag())
		}
	}
}

func stringUnary(name string, f func(string) string) host.MethodFunc {
	return func(_ context.Context, args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, errArity(name, 1, len(args))
		}
		t, ok := args[0].(value.Text)
		if !ok {
			return nil, errType("%s expects Text, got %s", name, args[0].Tag())
		}
		return value.NewText(f(t.V)), nil
	}
}

func errArity(name string, want, got int) error {
	return errType("%s expects %d argument(s), got %d", name, want, got)
}

func errType(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

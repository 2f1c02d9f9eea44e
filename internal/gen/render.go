package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"strings"

	"bridge-generator/internal/plan"
)

// renderer turns conversions into Go source fragments for one file.
type renderer struct {
	imports *importSet
}

func (r *renderer) bridge(name string) string {
	return r.imports.name(plan.BridgePkgPath) + "." + name
}

func (r *renderer) typ(t types.Type) string {
	return r.imports.typeString(t)
}

// conversionType renders t in a conversion expression T(x), wrapping types
// that would otherwise parse as something else.
func (r *renderer) conversionType(t types.Type) string {
	s := r.typ(t)
	if strings.HasPrefix(s, "*") || strings.HasPrefix(s, "func") ||
		strings.HasPrefix(s, "<-") || strings.HasPrefix(s, "chan") {
		return "(" + s + ")"
	}

	return s
}

// fieldLine renders the statement converting in.<field> into out.<field>.
func (r *renderer) fieldLine(fc plan.FieldConversion, zero string) string {
	in := "in." + fc.Field
	out := "out." + fc.Field

	if !fc.Conv.Fallible() {
		return out + " = " + r.value(fc.Conv, in)
	}

	return fmt.Sprintf("if %s, err = %s; err != nil {\n\treturn %s, %s(%q, err)\n}",
		out, r.call(fc.Conv, in), zero, r.bridge("FieldError"), fc.Field)
}

// value renders an infallible conversion of expression x.
func (r *renderer) value(c *plan.Conversion, x string) string {
	switch c.Strategy {
	case plan.StrategyAssign:
		return x
	case plan.StrategyConvert, plan.StrategyInto:
		return r.conversionType(c.Target) + "(" + x + ")"
	default:
		panic("gen: value of fallible strategy " + c.Strategy.String())
	}
}

// call renders a fallible conversion of x as a call returning (T, error).
func (r *renderer) call(c *plan.Conversion, x string) string {
	switch c.Strategy {
	case plan.StrategyOverride:
		return callable(c.Expr) + "(ctx, " + x + ")"
	case plan.StrategyNested, plan.StrategyHandwritten:
		return r.funcName(c) + "(ctx, " + x + ")"
	case plan.StrategyOptional:
		return r.bridge("MapOptional") + "(ctx, " + x + ", " + r.fn(c.Elem) + ")"
	case plan.StrategySlice:
		return r.bridge("MapSlice") + "(ctx, " + x + ", " + r.fn(c.Elem) + ")"
	case plan.StrategyMap:
		return r.bridge("MapValues") + "(ctx, " + x + ", " + r.fn(c.Elem) + ")"
	case plan.StrategyMapOwned:
		return r.bridge("MapOwned") + "(ctx, " + x + ", " + r.fn(c.Elem) + ")"
	case plan.StrategyWrapOwned:
		return r.bridge("WrapOwned") + "(ctx, " + x + ", " + r.fn(c.Elem) + ")"
	case plan.StrategyTryInto, plan.StrategyTryEnum:
		return r.numeric(c) + "(ctx, " + x + ")"
	default:
		return r.fn(c) + "(ctx, " + x + ")"
	}
}

// fn renders c as a function value func(*bridge.Context, S) (T, error).
func (r *renderer) fn(c *plan.Conversion) string {
	switch c.Strategy {
	case plan.StrategyAssign:
		return r.bridge("Identity") + "[" + r.typ(c.Source) + "]"
	case plan.StrategyConvert:
		return fmt.Sprintf("func(_ *%s, v %s) (%s, error) { return %s(v), nil }",
			r.bridge("Context"), r.typ(c.Source), r.typ(c.Target), r.conversionType(c.Target))
	case plan.StrategyInto, plan.StrategyTryInto, plan.StrategyTryEnum:
		return r.numeric(c)
	case plan.StrategyOverride:
		return callable(c.Expr)
	case plan.StrategyNested, plan.StrategyHandwritten:
		return r.funcName(c)
	case plan.StrategyOptional:
		return r.bridge("Optional") + "(" + r.fn(c.Elem) + ")"
	case plan.StrategySlice:
		return r.bridge("Slice") + "(" + r.fn(c.Elem) + ")"
	case plan.StrategyMap:
		return r.bridge("Values") + "[" + r.typ(c.Key) + "](" + r.fn(c.Elem) + ")"
	case plan.StrategyMapOwned:
		return r.bridge("Owned") + "(" + r.fn(c.Elem) + ")"
	case plan.StrategyWrapOwned:
		return r.bridge("Wrapped") + "(" + r.fn(c.Elem) + ")"
	default:
		panic("gen: unknown strategy " + c.Strategy.String())
	}
}

// numeric renders the explicit instantiation of a numeric helper.
func (r *renderer) numeric(c *plan.Conversion) string {
	name := "Into"

	switch c.Strategy {
	case plan.StrategyTryInto:
		name = "TryInto"
	case plan.StrategyTryEnum:
		name = "TryEnum"
	}

	return fmt.Sprintf("%s[%s, %s]", r.bridge(name), r.typ(c.Target), r.typ(c.Source))
}

func (r *renderer) funcName(c *plan.Conversion) string {
	name := c.FuncName
	if name == "" && c.Func != nil {
		name = c.Func.Name()
	}

	if q := r.imports.qualifier(c.FuncPkg); q != "" {
		return q + "." + name
	}

	return name
}

// callable parenthesizes an override expression unless it can be called as
// written.
func callable(expr string) string {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return "(" + expr + ")"
	}

	switch x.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr, *ast.CallExpr, *ast.ParenExpr:
		return expr
	default:
		return "(" + expr + ")"
	}
}

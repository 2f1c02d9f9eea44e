package gen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/plan"
)

type fixture struct {
	self, geom, geom2 *types.Package

	point, pyPoint *types.Named
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		self:  types.NewPackage("example.com/shapes", "shapes"),
		geom:  types.NewPackage("example.com/a/geom", "geom"),
		geom2: types.NewPackage("example.com/b/geom", "geom"),
	}

	named := func(pkg *types.Package, name string, under types.Type) *types.Named {
		tn := types.NewTypeName(token.NoPos, pkg, name, nil)
		n := types.NewNamed(tn, under, nil)
		pkg.Scope().Insert(tn)

		return n
	}

	f.point = named(f.self, "Point", types.NewStruct(nil, nil))
	f.pyPoint = named(f.geom, "PyPoint", types.NewStruct(nil, nil))

	return f
}

func (f *fixture) renderer(t *testing.T) *renderer {
	t.Helper()

	s := newImportSet(f.self)
	require.NoError(t, s.require("bridge", plan.BridgePkgPath, "bridge"))
	s.add(f.geom)
	s.add(f.geom2)

	return &renderer{imports: s}
}

func TestImportSet_Aliases(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)

	assert.Equal(t, "geom", r.imports.name(f.geom.Path()))
	assert.Equal(t, "geom2", r.imports.name(f.geom2.Path()))
	assert.Equal(t, "", r.imports.qualifier(f.self))
	assert.Equal(t, "Point", r.typ(f.point))
	assert.Equal(t, "geom.PyPoint", r.typ(f.pyPoint))

	assert.Equal(t, []importSpec{
		{Path: "bridge-generator/bridge"},
		{Path: "example.com/a/geom"},
		{Alias: "geom2", Path: "example.com/b/geom"},
	}, r.imports.specs())
}

func TestImportSet_AvoidsScopeAndLocals(t *testing.T) {
	self := types.NewPackage("example.com/self", "self")
	self.Scope().Insert(types.NewVar(token.NoPos, self, "geom", types.Typ[types.Int]))

	s := newImportSet(self)
	s.add(types.NewPackage("example.com/geom", "geom"))
	s.add(types.NewPackage("example.com/in", "in"))

	assert.Equal(t, "geom2", s.name("example.com/geom"))
	assert.Equal(t, "in2", s.name("example.com/in"))
}

func TestImportSet_RequireConflicts(t *testing.T) {
	s := newImportSet(types.NewPackage("example.com/self", "self"))

	require.NoError(t, s.require("g", "example.com/geom", "geom"))
	require.NoError(t, s.require("g", "example.com/geom", "geom"))
	require.Error(t, s.require("geom", "example.com/geom", "geom"))
	require.Error(t, s.require("g", "example.com/other", "other"))

	// Later automatic imports keep the forced name.
	s.add(types.NewPackage("example.com/geom", "geom"))
	assert.Equal(t, "g", s.name("example.com/geom"))
	assert.Equal(t, []importSpec{{Alias: "g", Path: "example.com/geom"}}, s.specs())
}

func TestRenderer_Values(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)

	assert.Equal(t, "in.X", r.value(&plan.Conversion{Strategy: plan.StrategyAssign}, "in.X"))
	assert.Equal(t, "int64(in.X)", r.value(&plan.Conversion{
		Strategy: plan.StrategyInto, Source: types.Typ[types.Int32], Target: types.Typ[types.Int64],
	}, "in.X"))
	assert.Equal(t, "(*geom.PyPoint)(in.P)", r.value(&plan.Conversion{
		Strategy: plan.StrategyConvert, Target: types.NewPointer(f.pyPoint),
	}, "in.P"))
	assert.Equal(t, "(func())(in.F)", r.value(&plan.Conversion{
		Strategy: plan.StrategyConvert, Target: types.NewSignatureType(nil, nil, nil, nil, nil, false),
	}, "in.F"))
}

func TestRenderer_Calls(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)

	nested := &plan.Conversion{
		Strategy: plan.StrategyNested, Source: f.point, Target: f.pyPoint,
		FuncName: "PointToBridge", FuncPkg: f.self,
	}
	foreign := &plan.Conversion{
		Strategy: plan.StrategyHandwritten, FuncName: "PyPointFromBridge", FuncPkg: f.geom2,
	}
	owned := types.NewPointer(f.point)

	tests := []struct {
		name string
		conv *plan.Conversion
		want string
	}{
		{"nested", nested, "PointToBridge(ctx, in.F)"},
		{"handwritten", foreign, "geom2.PyPointFromBridge(ctx, in.F)"},
		{
			"optional of slice",
			&plan.Conversion{
				Strategy: plan.StrategyOptional,
				Elem:     &plan.Conversion{Strategy: plan.StrategySlice, Elem: nested},
			},
			"bridge.MapOptional(ctx, in.F, bridge.Slice(PointToBridge))",
		},
		{
			"map of convert",
			&plan.Conversion{
				Strategy: plan.StrategyMap, Key: types.Typ[types.String],
				Elem: &plan.Conversion{
					Strategy: plan.StrategyConvert, Source: types.Typ[types.Int], Target: owned,
				},
			},
			"bridge.MapValues(ctx, in.F, func(_ *bridge.Context, v int) (*Point, error) { return (*Point)(v), nil })",
		},
		{
			"slice of map",
			&plan.Conversion{
				Strategy: plan.StrategySlice,
				Elem: &plan.Conversion{
					Strategy: plan.StrategyMap, Key: types.Typ[types.String],
					Elem: &plan.Conversion{Strategy: plan.StrategyAssign, Source: f.pyPoint},
				},
			},
			"bridge.MapSlice(ctx, in.F, bridge.Values[string](bridge.Identity[geom.PyPoint]))",
		},
		{
			"owned",
			&plan.Conversion{Strategy: plan.StrategyMapOwned, Elem: nested},
			"bridge.MapOwned(ctx, in.F, PointToBridge)",
		},
		{
			"wrapped inside optional",
			&plan.Conversion{
				Strategy: plan.StrategyOptional,
				Elem:     &plan.Conversion{Strategy: plan.StrategyWrapOwned, Elem: nested},
			},
			"bridge.MapOptional(ctx, in.F, bridge.Wrapped(PointToBridge))",
		},
		{
			"try into",
			&plan.Conversion{Strategy: plan.StrategyTryInto, Source: types.Typ[types.Int64], Target: types.Typ[types.Uint8]},
			"bridge.TryInto[uint8, int64](ctx, in.F)",
		},
		{
			"into as element",
			&plan.Conversion{
				Strategy: plan.StrategySlice,
				Elem:     &plan.Conversion{Strategy: plan.StrategyInto, Source: types.Typ[types.Int8], Target: types.Typ[types.Int]},
			},
			"bridge.MapSlice(ctx, in.F, bridge.Into[int, int8])",
		},
		{
			"override selector",
			&plan.Conversion{Strategy: plan.StrategyOverride, Expr: "geom.Parse"},
			"geom.Parse(ctx, in.F)",
		},
		{
			"override literal",
			&plan.Conversion{Strategy: plan.StrategyOverride, Expr: "func(*bridge.Context, int) (int, error) { return 0, nil }"},
			"(func(*bridge.Context, int) (int, error) { return 0, nil })(ctx, in.F)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.call(tt.conv, "in.F"))
		})
	}
}

func TestRenderer_FieldLine(t *testing.T) {
	f := newFixture(t)
	r := f.renderer(t)

	line := r.fieldLine(plan.FieldConversion{
		Field: "Size",
		Conv:  &plan.Conversion{Strategy: plan.StrategyTryInto, Source: types.Typ[types.Int64], Target: types.Typ[types.Uint32]},
	}, "Shape{}")

	assert.Equal(t, "if out.Size, err = bridge.TryInto[uint32, int64](ctx, in.Size); err != nil {\n"+
		"\treturn Shape{}, bridge.FieldError(\"Size\", err)\n}", line)

	assert.Equal(t, "out.Name = in.Name", r.fieldLine(plan.FieldConversion{
		Field: "Name", Conv: &plan.Conversion{Strategy: plan.StrategyAssign},
	}, "Shape{}"))
}

func TestCallable(t *testing.T) {
	assert.Equal(t, "parse", callable("parse"))
	assert.Equal(t, "pkg.Parse", callable("pkg.Parse"))
	assert.Equal(t, "conv[int]", callable("conv[int]"))
	assert.Equal(t, "conv[int, string]", callable("conv[int, string]"))
	assert.Equal(t, "newConv(3)", callable("newConv(3)"))
	assert.Equal(t, "(*T).Method", callable("(*T).Method"))
	assert.Equal(t, "(func() {})", callable("func() {}"))
	assert.Equal(t, "(a + )", callable("a + "))
}

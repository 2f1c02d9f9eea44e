package invalid

import (
	"bridge-generator/bridge"
	"bridge-generator/internal/plan/testdata/invalid/pyinvalid"
)

//bridge:map PyEmpty
type Empty struct{}

type PyEmpty struct{ X int }

//bridge:map PyMisspelled
type Misspelled struct {
	Sise int
}

type PyMisspelled struct {
	Size int
}

var notAFunc = 3

func wrongShape(_ *bridge.Context, v string) (int, error) { return len(v), nil }

//bridge:map PyOverride
type Override struct {
	A int `bridge:"into=notAFunc"`
	B int `bridge:"from=wrongShape"`
	C int `bridge:"into=missing"`
}

type PyOverride struct {
	A, B, C int
}

//bridge:map PyNoConv
type NoConv struct {
	X chan int
}

type PyNoConv struct {
	X string
}

//bridge:map PyWrapped
type Wrapped int

type PyWrapped struct{ V int }

//bridge:map PyMissin
type Missing struct{ X int }

type PyMissing struct{ X int }

//bridge:map PyTaken
type Taken struct{ X int }

type PyTaken struct{ X int }

func TakenToBridge() {}

//bridge:map PyCount
type Count int64

type PyCount int8

//bridge:map PyRatio
type Ratio float64

type PyRatio int32

//bridge:map pyinvalid.PyHidden
type Hidden struct {
	X      int
	secret int
}

//bridge:map Self
type Self struct{ X int }

var _ = notAFunc

var _ = Hidden{}.secret

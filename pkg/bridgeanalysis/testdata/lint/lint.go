package lint

// Point is valid and reports nothing.
//
//bridge:map PyPoint
type Point struct {
	X, Y int64
}

type PyPoint struct {
	X, Y int64
}

//bridge:map PyMissin
type Missing struct { // want `\[pair-not-found\] .*\(did you mean PyMissing`
	A int
}

type PyMissing struct {
	A int
}

//bridge:map PyShape
type Shape struct {
	Size uint32 `bridge:"from=nope"` // want `\[bad-override\]`
	Name string
}

type PyShape struct {
	Size int64
	Name string
}

//bridge:map PyBox
type Box struct {
	Items chan int // want `\[no-conversion\]`
}

type PyBox struct {
	Items []int
}

//bridge:map PyPair
type Pair struct { // want `\[unmatched-field\] Pair has no field Extra`
	A int
}

type PyPair struct {
	A     int
	Extra int
}

type Loose struct { // want `\[missing-pair\]`
	A int `bridge:"from=conv"`
}

//bridge:map PyEmpty
type Empty struct{} // want `\[unsupported-shape\]`

type PyEmpty struct{}

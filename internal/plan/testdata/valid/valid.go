package valid

import (
	"errors"

	"bridge-generator/bridge"
)

// Point is converted field by field with no overrides.
//
//bridge:map PyPoint
type Point struct {
	X, Y int64
}

type PyPoint struct {
	X, Y int64
}

type Color int32

const (
	Red Color = iota
	Green
)

func (c Color) IsValid() bool { return c == Red || c == Green }

type Label string

//bridge:map PyTag
type Tag struct {
	Name  Label
	Color Color
}

type PyTag struct {
	Name  string
	Color int64
}

type Meta struct{ Note string }

type PyMeta struct{ Note string }

func MetaToBridge(_ *bridge.Context, m Meta) (PyMeta, error) { return PyMeta(m), nil }

func MetaFromBridge(_ *bridge.Context, m PyMeta) (Meta, error) { return Meta(m), nil }

type Owner struct{ Name string }

//bridge:map PyShape
type Shape struct {
	Name   Label
	Size   uint32 `bridge:"from=sizeFromBridge"`
	Scale  float32
	Tags   *[]Tag
	Origin Point
	Meta   map[string]Meta
	Owner  Owner
	Parent bridge.Handle[Owner]
	Hidden []byte
}

type PyShape struct {
	Name   string
	Size   int64
	Scale  float64
	Tags   *[]PyTag
	Origin PyPoint
	Meta   map[string]PyMeta
	Owner  bridge.Handle[Owner]
	Parent Owner
	Hidden []byte
}

func sizeFromBridge(_ *bridge.Context, v int64) (uint32, error) {
	if v < 0 {
		return 0, errors.New("size must not be negative")
	}

	return bridge.TryInto[uint32](nil, v)
}

//bridge:map PyID
type ID int64

type PyID int64

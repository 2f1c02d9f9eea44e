package pyinvalid

type PyHidden struct {
	X      int
	secret int
}

var _ = PyHidden{}.secret

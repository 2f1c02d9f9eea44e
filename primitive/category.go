package primitive

// CategoryEnum groups number to number conversions by whether they can lose
// information.
type CategoryEnum int

const (
	CategoryNone         CategoryEnum = iota // not a number to number conversion
	CategorySafeNumber                       // every source value is exactly representable
	CategoryUnsafeNumber                     // range, sign or precision may be lost
)

// mantissa bits of the float kinds, including the implicit leading bit.
const (
	float32Mantissa = 24
	float64Mantissa = 53
)

// Classify returns the category a from -> to conversion belongs to.
// Platform sized kinds (int, uint) are treated as anything from 32 to 64 bits,
// so a conversion is only safe when it holds on every platform.
func Classify(from, to KindEnum) CategoryEnum {
	if !from.IsNumber() || !to.IsNumber() {
		return CategoryNone
	}

	if lossless(from, to) {
		return CategorySafeNumber
	}

	return CategoryUnsafeNumber
}

// IsLossless reports whether every value of from is exactly representable in to.
func IsLossless(from, to KindEnum) bool {
	return Classify(from, to) == CategorySafeNumber
}

func lossless(from, to KindEnum) bool {
	switch {
	case from == to:
		return true
	case from == KindUintptr || to == KindUintptr:
		return false
	case from.IsFloat():
		return to.IsFloat() && to.Bits() >= from.Bits()
	case to.IsFloat():
		return maxBits(from) <= mantissa(to)
	case from.IsSigned() && to.IsUnsigned():
		return false
	case from.IsUnsigned() && to.IsSigned():
		return maxBits(from) < minBits(to)
	default:
		return maxBits(from) <= minBits(to)
	}
}

func minBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 32
	}

	return k.Bits()
}

func maxBits(k KindEnum) int {
	if k == KindInt || k == KindUint {
		return 64
	}

	return k.Bits()
}

func mantissa(k KindEnum) int {
	if k == KindFloat32 {
		return float32Mantissa
	}

	return float64Mantissa
}

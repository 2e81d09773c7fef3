package formula

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// Complex128Ops is the arithmetic for complex128, the engine's reference
// numeric type. The projection functions keep the engine's conventions
// rather than the plain mathematical ones: abs is the magnitude as a
// real-valued complex, pos folds both components through their absolute
// values, ang is the phase, and re and im are the absolute values of the
// respective components.
func Complex128Ops() Ops[complex128] {
	return Ops[complex128]{
		FromComplex: func(v complex128) complex128 { return v },
		Add:         func(l, r complex128) complex128 { return l + r },
		Sub:         func(l, r complex128) complex128 { return l - r },
		Mul:         func(l, r complex128) complex128 { return l * r },
		Div:         func(l, r complex128) complex128 { return l / r },
		Pow:         cmplx.Pow,
		Sin:         cmplx.Sin,
		Cos:         cmplx.Cos,
		Tan:         cmplx.Tan,
		Sinh:        cmplx.Sinh,
		Cosh:        cmplx.Cosh,
		Tanh:        cmplx.Tanh,
		Exp:         cmplx.Exp,
		Log:         cmplx.Log,
		Abs:         func(v complex128) complex128 { return complex(cmplx.Abs(v), 0) },
		Pos:         func(v complex128) complex128 { return complex(math.Abs(real(v)), math.Abs(imag(v))) },
		Ang:         func(v complex128) complex128 { return complex(math.Atan2(imag(v), real(v)), 0) },
		Re:          func(v complex128) complex128 { return complex(math.Abs(real(v)), 0) },
		Im:          func(v complex128) complex128 { return complex(math.Abs(imag(v)), 0) },
	}
}

// Complex64Ops is Complex128Ops narrowed to complex64, for callers that key
// storage off the Single precision capability. Intermediate computation
// happens in complex128.
func Complex64Ops() Ops[complex64] {
	wide := Complex128Ops()
	u := func(f func(complex128) complex128) func(complex64) complex64 {
		return func(v complex64) complex64 { return complex64(f(complex128(v))) }
	}
	b := func(f func(complex128, complex128) complex128) func(complex64, complex64) complex64 {
		return func(l, r complex64) complex64 { return complex64(f(complex128(l), complex128(r))) }
	}
	return Ops[complex64]{
		FromComplex: func(v complex128) complex64 { return complex64(v) },
		Add:         b(wide.Add),
		Sub:         b(wide.Sub),
		Mul:         b(wide.Mul),
		Div:         b(wide.Div),
		Pow:         b(wide.Pow),
		Sin:         u(wide.Sin),
		Cos:         u(wide.Cos),
		Tan:         u(wide.Tan),
		Sinh:        u(wide.Sinh),
		Cosh:        u(wide.Cosh),
		Tanh:        u(wide.Tanh),
		Exp:         u(wide.Exp),
		Log:         u(wide.Log),
		Abs:         u(wide.Abs),
		Pos:         u(wide.Pos),
		Ang:         u(wide.Ang),
		Re:          u(wide.Re),
		Im:          u(wide.Im),
	}
}

// Float64Ops is the arithmetic for real-valued evaluation. Literals narrow
// to their real part, so the imaginary unit becomes 0. Following the real
// overloads of the projection functions, pos is the absolute value, ang and
// im are identically 0, and re is the identity.
func Float64Ops() Ops[float64] {
	return Ops[float64]{
		FromComplex: func(v complex128) float64 { return real(v) },
		Add:         func(l, r float64) float64 { return l + r },
		Sub:         func(l, r float64) float64 { return l - r },
		Mul:         func(l, r float64) float64 { return l * r },
		Div:         func(l, r float64) float64 { return l / r },
		Pow:         math.Pow,
		Sin:         math.Sin,
		Cos:         math.Cos,
		Tan:         math.Tan,
		Sinh:        math.Sinh,
		Cosh:        math.Cosh,
		Tanh:        math.Tanh,
		Exp:         math.Exp,
		Log:         math.Log,
		Abs:         math.Abs,
		Pos:         math.Abs,
		Ang:         func(float64) float64 { return 0 },
		Re:          func(v float64) float64 { return v },
		Im:          func(float64) float64 { return 0 },
	}
}

// BigFloatOps is the arithmetic for arbitrary-precision real evaluation at
// the given precision in bits. pow, exp, and log come from
// github.com/zephyrtronium/bigfloat and panic with big.ErrNaN on arguments
// outside their domain, as that package documents. No arbitrary-precision
// implementation of the trigonometric functions is available, so those six
// round-trip through float64 and carry only its accuracy.
func BigFloatOps(prec uint) Ops[*big.Float] {
	mk := func() *big.Float { return new(big.Float).SetPrec(prec) }
	f64 := func(f func(float64) float64) func(*big.Float) *big.Float {
		return func(v *big.Float) *big.Float {
			x, _ := v.Float64()
			return mk().SetFloat64(f(x))
		}
	}
	return Ops[*big.Float]{
		FromComplex: func(v complex128) *big.Float { return mk().SetFloat64(real(v)) },
		Add:         func(l, r *big.Float) *big.Float { return mk().Add(l, r) },
		Sub:         func(l, r *big.Float) *big.Float { return mk().Sub(l, r) },
		Mul:         func(l, r *big.Float) *big.Float { return mk().Mul(l, r) },
		Div:         func(l, r *big.Float) *big.Float { return mk().Quo(l, r) },
		Pow:         func(l, r *big.Float) *big.Float { return bigfloat.Pow(mk(), l, r) },
		Sin:         f64(math.Sin),
		Cos:         f64(math.Cos),
		Tan:         f64(math.Tan),
		Sinh:        f64(math.Sinh),
		Cosh:        f64(math.Cosh),
		Tanh:        f64(math.Tanh),
		Exp:         func(v *big.Float) *big.Float { return bigfloat.Exp(mk(), v) },
		Log:         func(v *big.Float) *big.Float { return bigfloat.Log(mk(), v) },
		Abs:         func(v *big.Float) *big.Float { return mk().Abs(v) },
		Pos:         func(v *big.Float) *big.Float { return mk().Abs(v) },
		Ang:         func(*big.Float) *big.Float { return mk() },
		Re:          func(v *big.Float) *big.Float { return mk().Set(v) },
		Im:          func(*big.Float) *big.Float { return mk() },
	}
}

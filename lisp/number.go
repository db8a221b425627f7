// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"strconv"
	"strings"
)

// numKind tags which field of Number holds the value, mirroring the
// original C++ number's atype/union split (see
// _examples/original_source/src/number.hpp).
type numKind int

const (
	numLong numKind = iota
	numDouble
	numFraction
)

// Number is the tagged numeric value of section 4.1: an exact int64
// ("Long"), a binary64 float ("Double"), or a reduced exact fraction.
// Exactly one of the three fields is meaningful, selected by kind.
type Number struct {
	kind numKind
	long int64
	dbl  float64
	z, n int64 // fraction numerator/denominator; n > 0, gcd(|z|, n) == 1
}

// NewLong constructs an exact integer Number.
func NewLong(v int64) Number { return Number{kind: numLong, long: v} }

// NewDouble constructs a floating-point Number.
func NewDouble(v float64) Number { return Number{kind: numDouble, dbl: v} }

// NewFraction constructs a reduced Number out of numerator z and
// denominator n. Panics with arith_error if n == 0.
func NewFraction(z, n int64) Number {
	if n == 0 {
		raise(ErrArith, "division by zero")
	}
	return reduceFraction(z, n)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// reduceFraction normalizes sign into the numerator and divides both
// components by their gcd, per spec.md's "Fraction reduction" rule.
func reduceFraction(z, n int64) Number {
	if n < 0 {
		z, n = -z, -n
	}
	if z == 0 {
		return Number{kind: numFraction, z: 0, n: 1}
	}
	if d := gcd(z, n); d > 1 {
		z, n = z/d, n/d
	}
	return Number{kind: numFraction, z: z, n: n}
}

// IsLong, IsDouble and IsFraction report the active variant.
func (a Number) IsLong() bool     { return a.kind == numLong }
func (a Number) IsDouble() bool   { return a.kind == numDouble }
func (a Number) IsFraction() bool { return a.kind == numFraction }

func (a Number) asDouble() float64 {
	switch a.kind {
	case numLong:
		return float64(a.long)
	case numDouble:
		return a.dbl
	default:
		return float64(a.z) / float64(a.n)
	}
}

func (a Number) asFraction() (z, n int64) {
	if a.kind == numFraction {
		return a.z, a.n
	}
	return a.long, 1
}

// rank orders the promotion lattice: Long < Fraction < Double.
func rank(k numKind) int {
	switch k {
	case numLong:
		return 0
	case numFraction:
		return 1
	default:
		return 2
	}
}

func commonKind(a, b Number) numKind {
	if rank(a.kind) >= rank(b.kind) {
		return a.kind
	}
	return b.kind
}

// Add, Sub, Mul and Div implement the cross-variant promotion lattice
// of spec.md section 4.1. Integer / that does not divide evenly
// promotes both operands to an exact Fraction rather than truncating.
func (a Number) Add(b Number) Number {
	switch commonKind(a, b) {
	case numLong:
		return NewLong(a.long + b.long)
	case numDouble:
		return NewDouble(a.asDouble() + b.asDouble())
	default:
		az, an := a.asFraction()
		bz, bn := b.asFraction()
		return NewFraction(az*bn+bz*an, an*bn)
	}
}

func (a Number) Sub(b Number) Number {
	switch commonKind(a, b) {
	case numLong:
		return NewLong(a.long - b.long)
	case numDouble:
		return NewDouble(a.asDouble() - b.asDouble())
	default:
		az, an := a.asFraction()
		bz, bn := b.asFraction()
		return NewFraction(az*bn-bz*an, an*bn)
	}
}

func (a Number) Mul(b Number) Number {
	switch commonKind(a, b) {
	case numLong:
		return NewLong(a.long * b.long)
	case numDouble:
		return NewDouble(a.asDouble() * b.asDouble())
	default:
		az, an := a.asFraction()
		bz, bn := b.asFraction()
		return NewFraction(az*bz, an*bn)
	}
}

// Div implements "/": Long / Long promotes to Fraction when the
// quotient is not exact; Double is absorbing; Fraction / Fraction
// cross-multiplies.
func (a Number) Div(b Number) Number {
	switch commonKind(a, b) {
	case numLong:
		if b.long == 0 {
			raise(ErrArith, "division by zero")
		}
		if a.long%b.long == 0 {
			return NewLong(a.long / b.long)
		}
		return NewFraction(a.long, b.long)
	case numDouble:
		bd := b.asDouble()
		if bd == 0 {
			raise(ErrArith, "division by zero")
		}
		return NewDouble(a.asDouble() / bd)
	default:
		az, an := a.asFraction()
		bz, bn := b.asFraction()
		if bz == 0 {
			raise(ErrArith, "division by zero")
		}
		return NewFraction(az*bn, an*bz)
	}
}

// Neg negates a Number, preserving its variant.
func (a Number) Neg() Number {
	switch a.kind {
	case numLong:
		return NewLong(-a.long)
	case numDouble:
		return NewDouble(-a.dbl)
	default:
		return NewFraction(-a.z, a.n)
	}
}

// Cmp compares a to b under the same promotion lattice used for
// arithmetic, returning -1, 0 or 1.
func (a Number) Cmp(b Number) int {
	switch commonKind(a, b) {
	case numLong:
		switch {
		case a.long < b.long:
			return -1
		case a.long > b.long:
			return 1
		default:
			return 0
		}
	case numDouble:
		ad, bd := a.asDouble(), b.asDouble()
		switch {
		case ad < bd:
			return -1
		case ad > bd:
			return 1
		default:
			return 0
		}
	default:
		az, an := a.asFraction()
		bz, bn := b.asFraction()
		// an, bn > 0 by construction, so cross-multiplication preserves order.
		lhs, rhs := az*bn, bz*an
		switch {
		case lhs < rhs:
			return -1
		case lhs > rhs:
			return 1
		default:
			return 0
		}
	}
}

func (a Number) Equal(b Number) bool { return a.Cmp(b) == 0 }

// String prints a Number per spec.md section 4.1: decimal integer,
// shortest round-trip decimal, or "z/n".
func (a Number) String() string {
	switch a.kind {
	case numLong:
		return strconv.FormatInt(a.long, 10)
	case numDouble:
		return strconv.FormatFloat(a.dbl, 'g', -1, 64)
	default:
		var b strings.Builder
		b.WriteString(strconv.FormatInt(a.z, 10))
		b.WriteByte('/')
		b.WriteString(strconv.FormatInt(a.n, 10))
		return b.String()
	}
}

// ParseNumber parses a numeric literal per the tokenizer's contract
// (section 4.1): optional leading '-', digits, with a single '.' for a
// Double or a single '/' for a Fraction.
func ParseNumber(lexeme string) Number {
	if i := strings.IndexByte(lexeme, '/'); i >= 0 {
		z, err1 := strconv.ParseInt(lexeme[:i], 10, 64)
		n, err2 := strconv.ParseInt(lexeme[i+1:], 10, 64)
		if err1 != nil || err2 != nil {
			raise(ErrParse, "malformed fraction literal %q", lexeme)
		}
		return NewFraction(z, n)
	}
	if strings.IndexByte(lexeme, '.') >= 0 {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			raise(ErrParse, "malformed double literal %q", lexeme)
		}
		return NewDouble(v)
	}
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		raise(ErrParse, "malformed integer literal %q", lexeme)
	}
	return NewLong(v)
}

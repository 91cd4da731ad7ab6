// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import (
	"math"
	"testing"
)

// While the functions below are not complicated, they are foundational such
// that it is better to test each one of them than have the bugs discovered
// later from other code. Where applicable, check that the output vector can
// also be used as one or both of the input vectors.

func TestSetV2(t *testing.T) {
	v, a := &V2{}, &V2{1, 2}
	if !v.Set(a).Eq(a) {
		t.Errorf("%s is not the same as %s", v.Dump(), a.Dump())
	}
}

func TestAddV2(t *testing.T) {
	v, a, b := &V2{}, &V2{1, 2}, &V2{3, 4}
	if got := v.Add(a, b); !got.Eq(&V2{4, 6}) {
		t.Errorf("%s", got.Dump())
	}
	if got := v.Add(v, b); !got.Eq(&V2{7, 10}) { // v used as input.
		t.Errorf("%s", got.Dump())
	}
}

func TestSubV2(t *testing.T) {
	v, a, b := &V2{}, &V2{3, 4}, &V2{1, 1}
	if got := v.Sub(a, b); !got.Eq(&V2{2, 3}) {
		t.Errorf("%s", got.Dump())
	}
}

func TestScaleV2(t *testing.T) {
	v, a := &V2{}, &V2{1, 2}
	if got := v.Scale(a, 2); !got.Eq(&V2{2, 4}) {
		t.Errorf("%s", got.Dump())
	}
}

func TestDivV2(t *testing.T) {
	v := &V2{4, 6}
	if got := v.Div(2); !got.Eq(&V2{2, 3}) {
		t.Errorf("%s", got.Dump())
	}
	v.SetS(4, 6)
	if got := v.Div(0); !got.Eq(&V2{4, 6}) { // divide by zero is a no-op.
		t.Errorf("%s", got.Dump())
	}
}

func TestDotV2(t *testing.T) {
	a, b := &V2{1, 2}, &V2{3, 4}
	if got := a.Dot(b); got != 11 {
		t.Errorf("want 11 got %f", got)
	}
}

func TestLenV2(t *testing.T) {
	v := &V2{3, 4}
	if got := v.Len(); !Aeq(got, 5) {
		t.Errorf("want 5 got %f", got)
	}
	if got := v.LenSqr(); got != 25 {
		t.Errorf("want 25 got %f", got)
	}
}

func TestUnitV2(t *testing.T) {
	v := &V2{3, 4}
	if got := v.Unit(); !Aeq(got.Len(), 1) {
		t.Errorf("unit vector should have length 1, got %f", got.Len())
	}
	zero := &V2{}
	if got := zero.Unit(); !got.Eq(&V2{}) {
		t.Errorf("zero vector should remain zero, got %s", got.Dump())
	}
}

func TestCrossV2(t *testing.T) {
	x, y := &V2{1, 0}, &V2{0, 1}
	if got := x.Cross(y); !Aeq(got, 1) {
		t.Errorf("want 1 got %f", got)
	}
	if got := y.Cross(x); !Aeq(got, -1) {
		t.Errorf("want -1 got %f", got)
	}
}

func TestPerpV2(t *testing.T) {
	v, a := &V2{}, &V2{1, 0}
	if got := v.Perp(a); !got.Eq(&V2{0, 1}) {
		t.Errorf("%s", got.Dump())
	}
}

func TestRotV2(t *testing.T) {
	v, a := &V2{}, &V2{1, 0}
	got := v.Rot(a, math.Pi/2)
	if !Aeq(got.X, 0) || !Aeq(got.Y, 1) {
		t.Errorf("want {0 1} got %s", got.Dump())
	}
}

func TestLerpV2(t *testing.T) {
	v, a, b := &V2{}, &V2{0, 0}, &V2{10, 20}
	if got := v.Lerp(a, b, 0.5); !got.Eq(&V2{5, 10}) {
		t.Errorf("%s", got.Dump())
	}
}

func TestDistV2(t *testing.T) {
	a, b := &V2{0, 0}, &V2{3, 4}
	if got := a.Dist(b); !Aeq(got, 5) {
		t.Errorf("want 5 got %f", got)
	}
}

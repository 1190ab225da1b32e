// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the small float32 vector types used
// for window coordinates, mouse positions and image placement.
package geom

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Vec2 is a 2D vector or point with float32 components.
type Vec2 struct {
	X float32
	Y float32
}

// V2 returns a new [Vec2] from the given components.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// FromPoint returns a new [Vec2] from the given [image.Point].
func FromPoint(pt image.Point) Vec2 {
	return Vec2{float32(pt.X), float32(pt.Y)}
}

func (a Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product of a and b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Div returns the component-wise quotient of a and b.
func (a Vec2) Div(b Vec2) Vec2 {
	return Vec2{a.X / b.X, a.Y / b.Y}
}

// MulScalar returns a multiplied by s.
func (a Vec2) MulScalar(s float32) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Length returns the euclidean length of a.
func (a Vec2) Length() float32 {
	return math32.Hypot(a.X, a.Y)
}

// IsZero returns whether both components are zero.
func (a Vec2) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// Sign returns the per-component sign of a: -1, 0 or 1.
// A component that is exactly zero stays zero.
func (a Vec2) Sign() Vec2 {
	return Vec2{sign(a.X), sign(a.Y)}
}

func sign(v float32) float32 {
	if v == 0 || math32.IsNaN(v) {
		return 0
	}
	return math32.Copysign(1, v)
}

// ToPoint rounds a to the nearest [image.Point], rounding halves up.
func (a Vec2) ToPoint() image.Point {
	return image.Pt(int(math32.Floor(a.X+0.5)), int(math32.Floor(a.Y+0.5)))
}

// Package geometry implements the perspective transform and grid sampler
// used to map an image-space quadrilateral back onto a square module grid.
package geometry

// Transform holds the eight coefficients of a projective transform mapping
// the unit square [0,1]x[0,1] to an arbitrary image-space quadrilateral (or
// the composition of two such mappings).
type Transform struct {
	a, b, c, d, e, f, g, h float64
}

// Point is a subpixel image-space location.
type Point struct {
	X, Y float64
}

// QuadrilateralToSquare builds the transform mapping the quadrilateral
// (x0,y0)..(x3,y3) (given in top-left, top-right, bottom-right, bottom-left
// order) to the unit square -- the inverse sense of SquareToQuadrilateral.
func QuadrilateralToSquare(x0, y0, x1, y1, x2, y2, x3, y3 float64) *Transform {
	sq := SquareToQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3)
	return sq.buildAdjoint()
}

// SquareToQuadrilateral builds the transform mapping the unit square's
// corners (0,0),(1,0),(1,1),(0,1) to (x0,y0),(x1,y1),(x2,y2),(x3,y3).
func SquareToQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3 float64) *Transform {
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		return &Transform{
			a: x1 - x0, b: x2 - x1, c: x0,
			d: y1 - y0, e: y2 - y1, f: y0,
			g: 0, h: 0,
		}
	}
	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denominator := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denominator
	a23 := (dx1*dy3 - dx3*dy1) / denominator
	return &Transform{
		a: x1 - x0 + a13*x1, b: x3 - x0 + a23*x3, c: x0,
		d: y1 - y0 + a13*y1, e: y3 - y0 + a23*y3, f: y0,
		g: a13, h: a23,
	}
}

// buildAdjoint returns the inverse transform: the adjoint of the 3x3
// matrix, scaled so that its (3,3) entry is 1 like every Transform's.
func (t *Transform) buildAdjoint() *Transform {
	i := t.a*t.e - t.b*t.d
	return &Transform{
		a: (t.e - t.f*t.h) / i,
		b: (t.c*t.h - t.b) / i,
		c: (t.b*t.f - t.c*t.e) / i,
		d: (t.f*t.g - t.d) / i,
		e: (t.a - t.c*t.g) / i,
		f: (t.c*t.d - t.a*t.f) / i,
		g: (t.d*t.h - t.e*t.g) / i,
		h: (t.b*t.g - t.a*t.h) / i,
	}
}

// Times composes t applied after other: result maps a point the way other
// maps it, then the way t maps that.
func (t *Transform) Times(other *Transform) *Transform {
	o := other
	i := o.c*t.g + o.f*t.h + 1
	return &Transform{
		a: (o.a*t.a + o.d*t.b + o.g*t.c) / i,
		b: (o.b*t.a + o.e*t.b + o.h*t.c) / i,
		c: (o.c*t.a + o.f*t.b + t.c) / i,
		d: (o.a*t.d + o.d*t.e + o.g*t.f) / i,
		e: (o.b*t.d + o.e*t.e + o.h*t.f) / i,
		f: (o.c*t.d + o.f*t.e + t.f) / i,
		g: (o.a*t.g + o.d*t.h + o.g) / i,
		h: (o.b*t.g + o.e*t.h + o.h) / i,
	}
}

// TransformPoints maps each (x,y) pair in points in place.
func (t *Transform) TransformPoints(points []Point) {
	for i := range points {
		x, y := points[i].X, points[i].Y
		denominator := t.g*x + t.h*y + 1
		points[i].X = (t.a*x + t.b*y + t.c) / denominator
		points[i].Y = (t.d*x + t.e*y + t.f) / denominator
	}
}

// Apply maps a single point.
func (t *Transform) Apply(x, y float64) (float64, float64) {
	denominator := t.g*x + t.h*y + 1
	return (t.a*x + t.b*y + t.c) / denominator, (t.d*x + t.e*y + t.f) / denominator
}

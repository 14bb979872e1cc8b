// Package geom holds the plane geometry behind the free-form selection:
// polygon paths collected from clicks, their bounding boxes and the
// proximity test used to close a path.
package geom

import (
	"image"
	"math"
)

// MinPolygonPoints is the smallest number of vertices that encloses an area.
const MinPolygonPoints = 3

// Polygon is an ordered list of vertices in canvas pixel coordinates. The
// path is implicitly closed from the last vertex back to the first.
type Polygon []image.Point

// Valid reports whether p has enough vertices to enclose an area.
func (p Polygon) Valid() bool { return len(p) >= MinPolygonPoints }

// First returns the first vertex. ok is false for an empty path.
func (p Polygon) First() (image.Point, bool) {
	if len(p) == 0 {
		return image.Point{}, false
	}
	return p[0], true
}

// Last returns the most recently added vertex.
func (p Polygon) Last() (image.Point, bool) {
	if len(p) == 0 {
		return image.Point{}, false
	}
	return p[len(p)-1], true
}

// Bounds returns the smallest rectangle whose Min and Max are the minimum and
// maximum vertex coordinates. The size is max minus min, which makes a
// polygon touching columns 10 and 60 fifty pixels wide.
func (p Polygon) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p[0], Max: p[0]}
	for _, pt := range p[1:] {
		if pt.X < r.Min.X {
			r.Min.X = pt.X
		}
		if pt.Y < r.Min.Y {
			r.Min.Y = pt.Y
		}
		if pt.X > r.Max.X {
			r.Max.X = pt.X
		}
		if pt.Y > r.Max.Y {
			r.Max.Y = pt.Y
		}
	}
	return r
}

// Translate returns a copy of p shifted by -origin, mapping the vertices into
// the coordinate space of a rectangle whose top-left corner is origin.
func (p Polygon) Translate(origin image.Point) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Sub(origin)
	}
	return out
}

// Closes reports whether pt lands within radius of the first vertex of a
// path that already has more than two vertices. The distance test is strict.
func (p Polygon) Closes(pt image.Point, radius float64) bool {
	if len(p) < MinPolygonPoints {
		return false
	}
	return Distance(p[0], pt) < radius
}

// Contains reports whether the point (x, y) lies inside the polygon using the
// even-odd crossing rule.
func (p Polygon) Contains(x, y float64) bool {
	if len(p) < MinPolygonPoints {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := range p {
		xi, yi := float64(p[i].X), float64(p[i].Y)
		xj, yj := float64(p[j].X), float64(p[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Area returns the absolute area enclosed by the polygon (shoelace formula).
func (p Polygon) Area() float64 {
	if len(p) < MinPolygonPoints {
		return 0
	}
	var sum float64
	j := len(p) - 1
	for i := range p {
		sum += float64(p[j].X*p[i].Y - p[i].X*p[j].Y)
		j = i
	}
	return math.Abs(sum) / 2
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

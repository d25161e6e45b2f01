// Package geom provides the small 2D/3D vector toolkit used by the
// dimensioning engine.
//
// All types are plain value types with chainable methods. Coordinates are
// expressed in the document's length unit (feet in the sample documents);
// the package itself is unit-agnostic. Points and vectors are kept as
// separate types even though they share a representation, because the
// engine converts between them deliberately (projection produces points,
// subtraction of points produces vectors).
package geom

import "math"

// Epsilon is the default tolerance for treating a length as zero.
const Epsilon = 1e-9

// =============================================================================
// 2D
// =============================================================================

// Point2 is a point on a view's 2D surface.
type Point2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Vec2 is a 2D direction or displacement.
type Vec2 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p translated by v.
func (p Point2) Add(v Vec2) Point2 { return Point2{p.X + v.X, p.Y + v.Y} }

// Sub returns the vector from q to p.
func (p Point2) Sub(q Point2) Vec2 { return Vec2{p.X - q.X, p.Y - q.Y} }

// Vec reinterprets the point as a vector from the origin.
func (p Point2) Vec() Vec2 { return Vec2(p) }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point2) DistanceTo(q Point2) float64 { return p.Sub(q).Length() }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Add returns the component-wise sum of v and w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the scalar cross product (z component) of v and w.
// Its magnitude is |v||w|sin(θ), zero for parallel vectors.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector in the direction of v and true,
// or the zero vector and false if v is shorter than Epsilon.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Length()
	if l < Epsilon {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Perp returns v rotated 90° counter-clockwise: (x, y) -> (-y, x).
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Midpoint2 returns the midpoint of p and q.
func Midpoint2(p, q Point2) Point2 {
	return Point2{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// =============================================================================
// 3D
// =============================================================================

// Point3 is a point in model space.
type Point3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Vec3 is a 3D direction or displacement.
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Add returns p translated by v.
func (p Point3) Add(v Vec3) Point3 { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vec3 { return Vec3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3) DistanceTo(q Point3) float64 { return p.Sub(q).Length() }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Add returns the component-wise sum of v and w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector in the direction of v and true,
// or the zero vector and false if v is shorter than Epsilon.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}, false
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, true
}

// Midpoint3 returns the midpoint of p and q.
func Midpoint3(p, q Point3) Point3 {
	return Point3{(p.X + q.X) / 2, (p.Y + q.Y) / 2, (p.Z + q.Z) / 2}
}

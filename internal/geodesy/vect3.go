package geodesy

import "math"

// Vect3 is a vector in a local Euclidean frame with X=east, Y=north, Z=up
// (meters, or meters per second when used as a velocity).
type Vect3 struct{ X, Y, Z float64 }

// Velocity is a Vect3 in m/s.
type Velocity = Vect3

// NewVect3 returns the vector (x, y, z).
func NewVect3(x, y, z float64) Vect3 {
	return Vect3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vect3) Add(o Vect3) Vect3 { return Vect3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors.
func (v Vect3) Sub(o Vect3) Vect3 { return Vect3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies a vector by k.
func (v Vect3) Scale(k float64) Vect3 { return Vect3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors.
func (v Vect3) Dot(o Vect3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// DotH returns the dot product of the horizontal components.
func (v Vect3) DotH(o Vect3) float64 { return v.X*o.X + v.Y*o.Y }

// Norm returns the vector's magnitude.
func (v Vect3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// NormH returns the magnitude of the horizontal (X, Y) components.
func (v Vect3) NormH() float64 { return math.Hypot(v.X, v.Y) }

package geometry

// A point in 3D space. The reference system is given by the context
// where the coordinate is used.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

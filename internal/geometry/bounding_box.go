package geometry

import "math"

// Axis aligned bounding box. Mid values are cached to avoid
// recomputing them during repeated spatial lookups.
type BoundingBox struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
	Zmin float64
	Zmax float64
	Xmid float64
	Ymid float64
	Zmid float64
}

// Instantiates a new BoundingBox from the given extents
func NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax float64) *BoundingBox {
	return &BoundingBox{
		Xmin: xmin,
		Xmax: xmax,
		Ymin: ymin,
		Ymax: ymax,
		Zmin: zmin,
		Zmax: zmax,
		Xmid: (xmin + xmax) / 2,
		Ymid: (ymin + ymax) / 2,
		Zmid: (zmin + zmax) / 2,
	}
}

// Computes the tight BoundingBox of the given flat coordinate slice,
// laid out as [x0,y0,z0, x1,y1,z1, ...]. Returns a zero-volume box at
// the origin for an empty input.
func NewBoundingBoxFromCoords(coords []float64) *BoundingBox {
	if len(coords) < 3 {
		return NewBoundingBox(0, 0, 0, 0, 0, 0)
	}

	xmin, xmax := coords[0], coords[0]
	ymin, ymax := coords[1], coords[1]
	zmin, zmax := coords[2], coords[2]

	for i := 3; i < len(coords); i += 3 {
		xmin = math.Min(xmin, coords[i])
		xmax = math.Max(xmax, coords[i])
		ymin = math.Min(ymin, coords[i+1])
		ymax = math.Max(ymax, coords[i+1])
		zmin = math.Min(zmin, coords[i+2])
		zmax = math.Max(zmax, coords[i+2])
	}

	return NewBoundingBox(xmin, xmax, ymin, ymax, zmin, zmax)
}

// Returns the smallest BoundingBox containing all the given boxes.
// Nil boxes are ignored, an all-nil input yields a zero-volume box.
func MergeBoundingBoxes(boxes []*BoundingBox) *BoundingBox {
	var out *BoundingBox
	for _, box := range boxes {
		if box == nil {
			continue
		}
		if out == nil {
			b := *box
			out = &b
			continue
		}
		out = NewBoundingBox(
			math.Min(out.Xmin, box.Xmin),
			math.Max(out.Xmax, box.Xmax),
			math.Min(out.Ymin, box.Ymin),
			math.Max(out.Ymax, box.Ymax),
			math.Min(out.Zmin, box.Zmin),
			math.Max(out.Zmax, box.Zmax),
		)
	}
	if out == nil {
		return NewBoundingBox(0, 0, 0, 0, 0, 0)
	}
	return out
}

// Length of the box diagonal
func (b *BoundingBox) Diagonal() float64 {
	w := b.Xmax - b.Xmin
	l := b.Ymax - b.Ymin
	h := b.Zmax - b.Zmin
	return math.Sqrt(w*w + l*l + h*h)
}

func (b *BoundingBox) IsZeroVolume() bool {
	return b.Xmax == b.Xmin && b.Ymax == b.Ymin && b.Zmax == b.Zmin
}

// Serializes the box as the 12-element column-major array used by the
// 3d tiles "box" bounding volume: center followed by the three half axes.
func (b *BoundingBox) GetAsBoxArray() [12]float64 {
	return [12]float64{
		b.Xmid, b.Ymid, b.Zmid,
		(b.Xmax - b.Xmin) / 2, 0, 0,
		0, (b.Ymax - b.Ymin) / 2, 0,
		0, 0, (b.Zmax - b.Zmin) / 2,
	}
}

// Serializes the box as the 6-element array used by the 3d tiles
// "region" bounding volume: west, south, east, north, min height, max height.
func (b *BoundingBox) GetAsRegionArray() [6]float64 {
	return [6]float64{b.Xmin, b.Ymin, b.Xmax, b.Ymax, b.Zmin, b.Zmax}
}

// Package volume defines the multidimensional sample array shared by all
// processing stages.
//
// Axis 0 is time; the remaining axes are spatial. Samples are stored with
// axis 0 varying fastest (column-major), so every trace is a contiguous run
// of Shape[0] samples and the first spatial axis is the next fastest. All
// packages in this module rely on that order.
package volume

import (
	"math"

	"github.com/cwbudde/algo-drr/drr/core"
)

// MaxDims is the largest supported number of axes (time plus four spatial).
const MaxDims = 5

// Volume is a dense real array.
type Volume struct {
	Shape []int
	Data  []float64
}

// New allocates a zero-filled volume.
func New(shape ...int) (*Volume, error) {
	if err := validateShape("volume.New", shape); err != nil {
		return nil, err
	}
	return &Volume{Shape: append([]int(nil), shape...), Data: make([]float64, product(shape))}, nil
}

// FromData wraps data without copying. len(data) must equal the product of shape.
func FromData(data []float64, shape ...int) (*Volume, error) {
	if err := validateShape("volume.FromData", shape); err != nil {
		return nil, err
	}
	if n := product(shape); n != len(data) {
		return nil, core.Shapef("volume.FromData", "data length %d does not match shape %v (%d samples)", len(data), shape, n)
	}
	return &Volume{Shape: append([]int(nil), shape...), Data: data}, nil
}

func validateShape(op string, shape []int) error {
	if len(shape) == 0 || len(shape) > MaxDims {
		return core.Configf(op, "volume must have 1..%d axes, got %d", MaxDims, len(shape))
	}
	for axis, n := range shape {
		if n <= 0 {
			return core.Configf(op, "axis %d has non-positive extent %d", axis, n)
		}
	}
	return nil
}

func product(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// Len returns the number of samples.
func (v *Volume) Len() int { return len(v.Data) }

// Dims returns the number of axes.
func (v *Volume) Dims() int { return len(v.Shape) }

// Samples returns the trace length (extent of axis 0).
func (v *Volume) Samples() int { return v.Shape[0] }

// Traces returns the number of traces, the product of the spatial extents.
func (v *Volume) Traces() int { return len(v.Data) / v.Shape[0] }

// SpatialShape returns the spatial extents. A single trace reports [1].
func (v *Volume) SpatialShape() []int {
	if len(v.Shape) == 1 {
		return []int{1}
	}
	return append([]int(nil), v.Shape[1:]...)
}

// Trace returns trace j as a sub-slice of Data.
func (v *Volume) Trace(j int) []float64 {
	nt := v.Shape[0]
	return v.Data[j*nt : (j+1)*nt]
}

// Strides returns the linear step of each axis.
func (v *Volume) Strides() []int {
	return Strides(v.Shape)
}

// Strides returns column-major strides for shape.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for axis, n := range shape {
		strides[axis] = s
		s *= n
	}
	return strides
}

// Index returns the linear offset of a multi-index. Missing trailing indices are 0.
func (v *Volume) Index(idx ...int) int {
	off, s := 0, 1
	for axis, n := range v.Shape {
		if axis < len(idx) {
			off += idx[axis] * s
		}
		s *= n
	}
	return off
}

// At returns the sample at idx.
func (v *Volume) At(idx ...int) float64 { return v.Data[v.Index(idx...)] }

// Set stores x at idx.
func (v *Volume) Set(x float64, idx ...int) { v.Data[v.Index(idx...)] = x }

// Clone returns a deep copy.
func (v *Volume) Clone() *Volume {
	return &Volume{Shape: append([]int(nil), v.Shape...), Data: append([]float64(nil), v.Data...)}
}

// ZerosLike allocates a zero volume with v's shape.
func ZerosLike(v *Volume) *Volume {
	return &Volume{Shape: append([]int(nil), v.Shape...), Data: make([]float64, len(v.Data))}
}

// SameShape reports whether v and o have identical shapes.
func (v *Volume) SameShape(o *Volume) bool {
	if len(v.Shape) != len(o.Shape) {
		return false
	}
	for i := range v.Shape {
		if v.Shape[i] != o.Shape[i] {
			return false
		}
	}
	return true
}

// CheckSameShape returns a [core.KindShape] error when the volumes disagree.
func CheckSameShape(op string, a, b *Volume) error {
	if a == nil || b == nil {
		return core.Shapef(op, "nil volume")
	}
	if !a.SameShape(b) {
		return core.Shapef(op, "shape %v does not match %v", a.Shape, b.Shape)
	}
	return nil
}

// Sub returns a - b. Shapes must match.
func Sub(a, b *Volume) (*Volume, error) {
	if err := CheckSameShape("volume.Sub", a, b); err != nil {
		return nil, err
	}
	out := ZerosLike(a)
	for i := range out.Data {
		out.Data[i] = a.Data[i] - b.Data[i]
	}
	return out, nil
}

// MaxAbs returns the largest absolute sample value.
func (v *Volume) MaxAbs() float64 {
	m := 0.0
	for _, x := range v.Data {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// Normalize scales v in place so its peak absolute value is 1. Zero volumes are unchanged.
func (v *Volume) Normalize() {
	peak := v.MaxAbs()
	if peak == 0 {
		return
	}
	inv := 1 / peak
	for i := range v.Data {
		v.Data[i] *= inv
	}
}

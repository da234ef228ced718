package volume

import "github.com/cwbudde/algo-drr/drr/core"

// Box is a rectangular region of a volume: one start and size per axis.
type Box struct {
	Start []int
	Size  []int
}

// Len returns the number of samples inside the box.
func (b Box) Len() int { return product(b.Size) }

// Contains reports whether the box lies within shape.
func (b Box) Contains(shape []int) bool {
	if len(b.Start) != len(shape) || len(b.Size) != len(shape) {
		return false
	}
	for axis, n := range shape {
		if b.Start[axis] < 0 || b.Size[axis] <= 0 || b.Start[axis]+b.Size[axis] > n {
			return false
		}
	}
	return true
}

// ForEachRun calls fn for every contiguous axis-0 run of the box, with the
// offset of the run inside the box buffer and inside a volume of shape.
// Runs are visited in storage order.
func (b Box) ForEachRun(shape []int, fn func(boxOff, volOff int)) {
	dims := len(shape)
	strides := Strides(shape)
	runs := 1
	for axis := 1; axis < dims; axis++ {
		runs *= b.Size[axis]
	}
	idx := make([]int, dims)
	for r := 0; r < runs; r++ {
		volOff := b.Start[0]
		for axis := 1; axis < dims; axis++ {
			volOff += (b.Start[axis] + idx[axis]) * strides[axis]
		}
		fn(r*b.Size[0], volOff)
		for axis := 1; axis < dims; axis++ {
			idx[axis]++
			if idx[axis] < b.Size[axis] {
				break
			}
			idx[axis] = 0
		}
	}
}

// Extract copies the box out of v.
func (v *Volume) Extract(b Box) (*Volume, error) {
	if !b.Contains(v.Shape) {
		return nil, core.Configf("volume.Extract", "box start=%v size=%v outside shape %v", b.Start, b.Size, v.Shape)
	}
	out := &Volume{Shape: append([]int(nil), b.Size...), Data: make([]float64, b.Len())}
	n := b.Size[0]
	b.ForEachRun(v.Shape, func(boxOff, volOff int) {
		copy(out.Data[boxOff:boxOff+n], v.Data[volOff:volOff+n])
	})
	return out, nil
}

package synth

import "github.com/cwbudde/algo-drr/drr/volume"

// Benchmark scenario parameters: 4 ms sampling, 30 Hz Ricker of 56 samples
// generated on a 2 ms grid.
const (
	BenchmarkDt      = 0.004
	BenchmarkPeakHz  = 30
	benchmarkWaveDt  = 0.002
	benchmarkWaveLen = 56
)

// Benchmark2D returns the clean 300x20 section with one flat and two
// dipping events, normalized to unit peak.
func Benchmark2D() (*volume.Volume, error) {
	w, err := Ricker(BenchmarkPeakHz, benchmarkWaveDt, benchmarkWaveLen)
	if err != nil {
		return nil, err
	}
	v, err := Volume([]int{300, 20}, w,
		Event{Time: 168},
		Event{Time: 208, Slopes: []float64{-6}},
		Event{Time: 38, Slopes: []float64{6}},
	)
	if err != nil {
		return nil, err
	}
	v.Normalize()
	return v, nil
}

// BenchmarkCurved2D returns a clean 300x20 section with one dipping linear
// event and one hyperbolic event whose apex sits on trace 10, normalized to
// unit peak.
func BenchmarkCurved2D() (*volume.Volume, error) {
	w, err := Ricker(BenchmarkPeakHz, benchmarkWaveDt, benchmarkWaveLen)
	if err != nil {
		return nil, err
	}
	v, err := Volume([]int{300, 20}, w,
		Event{Time: 80, Slopes: []float64{3}},
		Event{Time: 150, Slopes: []float64{4}, Apex: []float64{10}},
	)
	if err != nil {
		return nil, err
	}
	v.Normalize()
	return v, nil
}

// Benchmark3D returns the clean 300x20x20 volume built from the 2-D section
// shot by shot: the flat event moves up 2 samples per shot, the event
// dipping at -6 is the same in every shot and the event dipping at +6 moves
// down 3 samples per shot. The result is normalized to unit peak.
func Benchmark3D() (*volume.Volume, error) {
	w, err := Ricker(BenchmarkPeakHz, benchmarkWaveDt, benchmarkWaveLen)
	if err != nil {
		return nil, err
	}
	v, err := Volume([]int{300, 20, 20}, w,
		Event{Time: 168, Slopes: []float64{0, -2}},
		Event{Time: 208, Slopes: []float64{-6, 0}},
		Event{Time: 38, Slopes: []float64{6, 3}},
	)
	if err != nil {
		return nil, err
	}
	v.Normalize()
	return v, nil
}

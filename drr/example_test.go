package drr_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-drr/drr"
	"github.com/cwbudde/algo-drr/drr/rank"
	"github.com/cwbudde/algo-drr/drr/synth"
	"github.com/cwbudde/algo-drr/measure/snr"
)

func ExampleRankReduce() {
	clean, _ := synth.Benchmark2D()
	noisy, _ := synth.NewGenerator().AddNoise(clean, 0.1)

	out, err := drr.RankReduce(context.Background(), noisy,
		drr.WithBand(0, 120),
		drr.WithSampleInterval(synth.BenchmarkDt),
		drr.WithRank(rank.Fixed(3)),
		drr.WithDamping(3),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	before, _ := snr.Volume(clean, noisy)
	after, _ := snr.Volume(clean, out)
	fmt.Println("improved:", after > before)
	// Output:
	// improved: true
}

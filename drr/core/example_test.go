package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-drr/drr/core"
)

func ExampleApplyOptions() {
	report := &core.Report{}
	cfg := core.ApplyOptions(
		core.WithWorkers(4),
		core.WithReport(report),
	)

	cfg.Report.AddWindow()
	fmt.Printf("workers=%d windows=%d\n", cfg.Workers, report.Snapshot().Windows)

	// Output:
	// workers=4 windows=1
}

func ExampleKindOf() {
	err := core.Configf("window", "overlap %.1f outside [0,1)", 1.5)
	fmt.Println(core.KindOf(err), core.IsConfig(err))

	// Output:
	// config true
}

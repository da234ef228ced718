package core

import "sync/atomic"

// Report counts events of one processing run. All methods are safe for
// concurrent use and tolerate a nil receiver.
type Report struct {
	windows     atomic.Int64
	slices      atomic.Int64
	rankClamps  atomic.Int64
	svdFailures atomic.Int64
	unconverged atomic.Int64
}

// Snapshot is a copy of the counters of a [Report].
type Snapshot struct {
	Windows     int64
	Slices      int64
	RankClamps  int64
	SVDFailures int64
	Unconverged int64
}

// AddWindow counts one processed window.
func (r *Report) AddWindow() {
	if r != nil {
		r.windows.Add(1)
	}
}

// AddSlice counts one filtered frequency slice.
func (r *Report) AddSlice() {
	if r != nil {
		r.slices.Add(1)
	}
}

// AddRankClamp counts a requested rank reduced to the available rank.
func (r *Report) AddRankClamp() {
	if r != nil {
		r.rankClamps.Add(1)
	}
}

// AddSVDFailure counts a slice left unfiltered because its decomposition failed.
func (r *Report) AddSVDFailure() {
	if r != nil {
		r.svdFailures.Add(1)
	}
}

// AddUnconverged counts an iterative solve that used its whole budget.
func (r *Report) AddUnconverged() {
	if r != nil {
		r.unconverged.Add(1)
	}
}

// Snapshot returns the current counter values.
func (r *Report) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		Windows:     r.windows.Load(),
		Slices:      r.slices.Load(),
		RankClamps:  r.rankClamps.Load(),
		SVDFailures: r.svdFailures.Load(),
		Unconverged: r.unconverged.Load(),
	}
}

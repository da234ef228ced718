// Package drr implements damped rank-reduction (DRR) denoising and
// reconstruction of seismic volumes, and its localized windowed variant (LDRR).
//
// A volume is transformed trace by trace into the frequency domain. Every
// frequency slice inside the configured band is embedded into a block Hankel
// matrix, reduced to a low damped rank, and averaged back into a slice. Linear
// events in a slice produce a rank-one matrix each, so coherent signal
// survives the reduction while random noise, which spreads over all singular
// values, is attenuated.
//
// Four entry points cover the common workflows:
//
//   - [RankReduce] filters the whole volume at once.
//   - [RankReduceWindowed] filters overlapping windows independently and
//     blends them, so that events only need to be locally linear.
//   - [RankReduceWindowedAuto] is the windowed filter with a per-slice rank
//     chosen from the singular value spectrum.
//   - [RankReduceReconstruct] interpolates missing traces by alternating
//     filtering with re-insertion of the observed samples.
//
// All parameters are passed as [Option] values; see [DefaultConfig] for the
// defaults.
package drr

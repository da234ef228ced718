// Package core holds the runtime configuration, error taxonomy and small numeric
// helpers shared by the rank-reduction packages.
//
// Every long-running entry point takes its reporting sink explicitly through a
// [Config] built from [Option] values. There is no package-level logger: callers
// pass a [zerolog.Logger] with [WithLogger], and numerical edge cases that do not
// abort a batch (rank clamps, failed decompositions, non-converged solvers) are
// logged there and counted in an optional [Report].
//
// Errors returned to callers are [*Error] values tagged with a [Kind]:
//
//   - [KindConfig]: invalid parameters, detected before any filtering starts.
//   - [KindShape]: inputs whose dimensions do not agree.
//   - [KindNumerical]: a recoverable numerical condition. These are reported,
//     never returned from a batch entry point.
package core

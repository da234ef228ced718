// Package rank computes damped low-rank approximations of complex embedding
// matrices and selects the retained rank per frequency slice.
//
// The decomposition runs on the real block form [[Re, -Im], [Im, Re]] of the
// complex matrix with gonum's SVD. Every complex singular value appears twice
// in that spectrum, and truncating the real form at 2K reconstructs exactly
// the real form of the complex rank-K approximation.
//
// Damping follows the damped rank-reduction operator: for i <= K
//
//	s'_i = s_i * (1 - (s_{K+1}/s_i)^N)
//
// and s'_i = 0 beyond K. N = +Inf is plain truncated SVD. A matrix of exact
// rank <= K has s_{K+1} = 0 and is reproduced for every N.
package rank

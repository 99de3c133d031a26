// Package analytics implements the pure aggregation and insight pipeline
// over the marketing dataset: filtering, grouped KPI computation, and
// month-over-month / year-over-year insight derivation. Everything in this
// package is a total, side-effect-free function of its inputs.
package analytics

// ratio divides num by den with the uniform zero-denominator convention:
// a zero denominator yields zero, never NaN or Inf. Every derived metric in
// this package (AOV, CVR, ROAS, CPC, CTR) goes through this helper.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// pctChange computes the relative change from prev to curr: the normal
// (curr-prev)/prev when prev is nonzero, +1 when something appeared from
// zero, and 0 when both are zero.
func pctChange(curr, prev float64) float64 {
	if prev != 0 {
		return (curr - prev) / prev
	}
	if curr != 0 {
		return 1
	}
	return 0
}

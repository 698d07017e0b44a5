package sumstats

import "gonum.org/v1/gonum/stat/distuv"

// ChiSquareISF1 returns the chi-square value c, at one degree of freedom,
// satisfying P(X > c) = p for p in (0, 1]. A chi-square variable with one
// degree of freedom is the square of a standard normal, so c is the squared
// normal quantile of p/2. Going through the normal quantile keeps the tail
// accurate for P values far below 1e-16, where inverting the chi-square CDF
// complement head-on would round to +Inf.
func ChiSquareISF1(p float64) float64 {
	q := distuv.UnitNormal.Quantile(p / 2)
	return q * q
}

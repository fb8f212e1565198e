package normalize

// UsagePercent computes used/total as a percentage, returning 0 when the
// denominator is missing or zero so a partial metrics payload never
// produces NaN or Inf.
func UsagePercent(used, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

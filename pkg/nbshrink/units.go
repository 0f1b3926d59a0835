package nbshrink

// BytesPerMB is the number of bytes in one megabyte as used for the budget.
const BytesPerMB = 1024 * 1024

// BytesToMB converts a byte count to megabytes.
func BytesToMB(n int64) float64 {
	return float64(n) / BytesPerMB
}

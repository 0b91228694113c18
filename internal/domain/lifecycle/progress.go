package lifecycle

import "math"

// ComputeProgress returns round(hired / max(workersNeeded, 1) * 100).
// The result is not clamped: 3 hired of 0 needed reports 300.
func ComputeProgress(hiredCount, workersNeeded int) int {
	if workersNeeded < 1 {
		workersNeeded = 1
	}
	return int(math.Round(float64(hiredCount) / float64(workersNeeded) * 100))
}

// ClampProgress bounds a progress value to [0, 100] for display.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

package config

import "runtime"

// Parallel threshold resolution chain (highest priority first):
//  1. CLI flag (--parallel-threshold)
//  2. Environment variable (MPCALC_PARALLEL_THRESHOLD)
//  3. Adaptive hardware estimation (this file)
//  4. Static default in the mp package

// ApplyAdaptiveThresholds fills in the parallel threshold from hardware
// characteristics when it is still at its zero default, preserving any
// user-specified override from flags or the environment.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// mantissa bit size above which spawning goroutines for the partial
// products of a complex multiplication pays off, without running
// benchmarks. Fewer cores push the threshold up, since the goroutine
// overhead is amortized over less parallel work.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 << 30 // effectively disables parallelism
	case numCPU <= 2:
		return 16384
	case numCPU <= 4:
		return 8192
	case numCPU <= 8:
		return 4096
	default:
		return 2048
	}
}

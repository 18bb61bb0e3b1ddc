package matbench

import (
	"time"

	"golang.org/x/perf/benchmath"
)

// doBench times fn under the sweep's protocol: warmup executions are
// run and discarded to absorb cold-start effects, then reps executions
// are timed individually. The per-call time in milliseconds is the
// median of the timed sample, which is robust to the odd
// scheduler-induced outlier.
func doBench(fn func(), warmup, reps int) float64 {
	for i := 0; i < warmup; i++ {
		fn()
	}

	samples := make([]float64, 0, reps)
	for i := 0; i < reps; i++ {
		start := time.Now()
		fn()
		samples = append(samples, float64(time.Since(start).Nanoseconds())/1e6)
	}

	return summarizeMs(samples)
}

// summarizeMs reduces a sample of per-call times to a single statistic.
func summarizeMs(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sample := benchmath.NewSample(samples, &benchmath.DefaultThresholds)
	summary := benchmath.AssumeNothing.Summary(sample, 0.95)
	return summary.Center
}

// throughputTFLOPS converts a per-call time at a configuration into
// TFLOPS: 2*M*N*K floating-point operations per call.
func throughputTFLOPS(cfg Config, timeMs float64) float64 {
	return float64(cfg.FLOPs()) / timeMs * 1e-9
}

package matbench

// Provider identifies one of the execution backends under measurement.
// The set is closed: adding a backend means adding a variant here and a
// case in Measure, never touching the sweep generation.
type Provider int

const (
	// Reference is the generic tensor-math library backend (gonum
	// blas32)
	Reference Provider = iota
	// Kernel is matbench's own tuned blocked kernel
	Kernel
	// Cutlass is the external profiling executable named by
	// CUTLASS_PROFILER
	Cutlass
)

// String returns the provider's sweep-facing name
func (p Provider) String() string {
	switch p {
	case Reference:
		return "reference"
	case Kernel:
		return "kernel"
	case Cutlass:
		return "cutlass"
	default:
		return "unknown"
	}
}

// ParseProvider maps a provider name to its variant. The second return
// is false for any name outside the recognized set; an unrecognized
// provider yields absence of result, not an error.
func ParseProvider(name string) (Provider, bool) {
	switch name {
	case "reference":
		return Reference, true
	case "kernel":
		return Kernel, true
	case "cutlass":
		return Cutlass, true
	}
	return 0, false
}

// Result is one throughput measurement.
type Result struct {
	TFLOPS float64
	// TimeMs is the measured per-call time for locally executed
	// backends; zero for the external profiler, which reports
	// throughput directly.
	TimeMs float64
}

// Measure runs one backend at one configuration and returns its
// throughput. ok is false when the backend is unavailable for this run
// (the external profiler without CUTLASS_PROFILER set); err is non-nil
// only for genuine failures, which abort the whole sweep.
func (p Provider) Measure(cfg Config, opts MeasureOptions) (res Result, ok bool, err error) {
	switch p {
	case Reference:
		return measureReference(cfg, opts)
	case Kernel:
		return measureKernel(cfg, opts)
	case Cutlass:
		return measureCutlass(cfg, opts)
	}
	return Result{}, false, nil
}

// MeasureOptions carries the timing protocol knobs shared by all
// backends.
type MeasureOptions struct {
	Warmup int // discarded executions
	Reps   int // measured executions
	Verify bool
}

// DefaultMeasureOptions returns the protocol used by the square sweep.
func DefaultMeasureOptions() MeasureOptions {
	return MeasureOptions{
		Warmup: DefaultWarmup,
		Reps:   DefaultReps,
	}
}

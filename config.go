// Package matbench configuration constants
package matbench

// Sweep parameters
const (
	// BaseSize is the smallest square problem size; the sweep covers
	// multiples of it
	BaseSize = 512

	// SweepSteps is the number of multiples of BaseSize in the sweep
	// (512..7680)
	SweepSteps = 15
)

// Timing protocol
const (
	// DefaultWarmup is the number of discarded warm-up executions
	// before timing begins
	DefaultWarmup = 5

	// DefaultReps is the number of measured executions per
	// configuration
	DefaultReps = 20
)

// Cache sizes for different levels (in bytes)
const (
	// L1 cache size per core (typical for modern CPUs)
	L1CacheSize = 32 * 1024 // 32KB

	// L2 cache size per core (typical for modern CPUs)
	L2CacheSize = 256 * 1024 // 256KB
)

// Memory parameters
const (
	// Memory alignment for operand allocations (cache line)
	MemoryAlignment = 64
)

// Kernel tuning parameters
const (
	// Block size for the tuned kernel when AVX-512 is available
	BlockSizeAVX512 = 128

	// Block size for the tuned kernel on AVX2 hardware
	BlockSizeAVX2 = 64

	// Fallback block size for scalar execution
	BlockSizeScalar = 32
)

// External profiler parameters
const (
	// ProfilerEnvVar names the environment variable holding the path
	// to the external GEMM profiling executable
	ProfilerEnvVar = "CUTLASS_PROFILER"

	// ProfilerReportSuffix is appended by the external tool to the
	// output path it is given
	ProfilerReportSuffix = ".gemm.csv"
)

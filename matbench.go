package matbench

import (
	"fmt"
	"io"
)

// Benchmark describes one registered report set: a named sweep of
// square GEMM configurations at a fixed transpose combination, measured
// across every provider.
type Benchmark struct {
	Name      string   // plot/report name, e.g. "matmul-square-nt"
	Sizes     []int    // swept values of M=N=K
	Providers []string // provider names, one result column each
	YLabel    string   // metric label
	TransA    bool
	TransB    bool
	DType     DType
}

// Config returns the measurement configuration at one swept size.
func (b Benchmark) Config(size int) Config {
	return Config{
		M:      size,
		N:      size,
		K:      size,
		TransA: b.TransA,
		TransB: b.TransB,
		DType:  b.DType,
	}
}

// SquareSweep builds the four square benchmarks, one per transpose
// combination, sweeping multiples of BaseSize from 1x to SweepSteps x.
func SquareSweep() []Benchmark {
	nt := map[bool]string{false: "n", true: "t"}

	sizes := make([]int, SweepSteps)
	for i := range sizes {
		sizes[i] = BaseSize * (i + 1)
	}

	var benches []Benchmark
	for _, at := range []bool{false, true} {
		for _, bt := range []bool{false, true} {
			benches = append(benches, Benchmark{
				Name:      fmt.Sprintf("matmul-square-%s%s", nt[at], nt[bt]),
				Sizes:     sizes,
				Providers: []string{"reference", "kernel", "cutlass"},
				YLabel:    "TFLOPS",
				TransA:    at,
				TransB:    bt,
				DType:     Float16,
			})
		}
	}
	return benches
}

// Report holds the measured results of one benchmark. Cells[i][j] is
// the throughput of provider i at size j; nil marks absence (backend
// unavailable or unrecognized).
type Report struct {
	Benchmark Benchmark
	Cells     [][]*float64
}

// Harness collects benchmarks and runs them strictly one measurement
// at a time: providers in registration order, sizes innermost, each
// measurement completing before the next begins.
type Harness struct {
	benchmarks []Benchmark
	opts       MeasureOptions
	out        io.Writer
}

// NewHarness creates a harness with the given timing protocol. out, if
// non-nil, receives a result table after each benchmark finishes.
func NewHarness(opts MeasureOptions, out io.Writer) *Harness {
	return &Harness{opts: opts, out: out}
}

// Register adds a benchmark to the run list.
func (h *Harness) Register(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// Benchmarks returns the registered benchmarks in run order.
func (h *Harness) Benchmarks() []Benchmark {
	return h.benchmarks
}

// RunAll executes every registered benchmark and returns one report
// per benchmark. The first hard failure (device allocation, subprocess,
// malformed profiler report) aborts the run; absences do not.
func (h *Harness) RunAll() ([]Report, error) {
	reports := make([]Report, 0, len(h.benchmarks))
	for _, b := range h.benchmarks {
		rep, err := h.run(b)
		if err != nil {
			return reports, err
		}
		if h.out != nil {
			fmt.Fprint(h.out, FormatReport(rep))
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (h *Harness) run(b Benchmark) (Report, error) {
	cells := make([][]*float64, len(b.Providers))
	for i := range cells {
		cells[i] = make([]*float64, len(b.Sizes))
	}

	for pi, name := range b.Providers {
		provider, known := ParseProvider(name)

		for si, size := range b.Sizes {
			cfg := b.Config(size)

			if !known {
				// Graceful degradation, but observable: the skip
				// lands in the session log
				LogMeasurementSkip(b.Name, name, cfg)
				continue
			}

			res, ok, err := provider.Measure(cfg, h.opts)
			if err != nil {
				LogMeasurementFail(b.Name, name, cfg, err)
				return Report{}, err
			}
			if !ok {
				LogMeasurementSkip(b.Name, name, cfg)
				continue
			}

			v := res.TFLOPS
			cells[pi][si] = &v
			LogMeasurementPass(b.Name, name, cfg, res)
		}
	}

	return Report{Benchmark: b, Cells: cells}, nil
}

package matbench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// measureCutlass drives the external GEMM profiling executable named by
// the CUTLASS_PROFILER environment variable. When the variable is unset
// the backend is unavailable: it returns absence without touching the
// file system or spawning anything. When set, the tool is invoked once
// per configuration and its CSV report is read back; any subprocess or
// report failure is a hard error that aborts the sweep.
func measureCutlass(cfg Config, opts MeasureOptions) (Result, bool, error) {
	exe := os.Getenv(ProfilerEnvVar)
	if exe == "" {
		return Result{}, false, nil
	}

	tmp, err := os.CreateTemp("", "matbench-*")
	if err != nil {
		return Result{}, false, NewProfilerError("Cutlass", "create output file", err)
	}
	output := tmp.Name()
	tmp.Close()
	defer os.Remove(output)

	report := output + ProfilerReportSuffix
	defer os.Remove(report)

	cmd := exec.Command(exe, profilerArgs(cfg, opts, output)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return Result{}, false, NewProfilerError("Cutlass",
			fmt.Sprintf("profiler run failed for %dx%dx%d", cfg.M, cfg.N, cfg.K), err)
	}

	tflops, err := readProfilerReport(report)
	if err != nil {
		return Result{}, false, err
	}

	return Result{TFLOPS: tflops}, true, nil
}

// profilerArgs builds the external tool's command line for one
// configuration. A transposed operand is handed to the tool as
// column-major; the output operand and accumulation type are fixed.
func profilerArgs(cfg Config, opts MeasureOptions, output string) []string {
	layoutA := "row"
	if cfg.TransA {
		layoutA = "column"
	}
	layoutB := "row"
	if cfg.TransB {
		layoutB = "column"
	}

	return []string{
		fmt.Sprintf("--m=%d", cfg.M),
		fmt.Sprintf("--n=%d", cfg.N),
		fmt.Sprintf("--k=%d", cfg.K),
		fmt.Sprintf("--A=%s:%s", cfg.DType, layoutA),
		fmt.Sprintf("--B=%s:%s", cfg.DType, layoutB),
		"--C=f16:column",
		"--accum=f32",
		"--operation=gemm",
		"--verification-enabled=false",
		fmt.Sprintf("--warmup-iterations=%d", opts.Warmup),
		fmt.Sprintf("--profiling-iterations=%d", opts.Reps),
		"--output=" + output,
		"--verbose=false",
	}
}

// readProfilerReport parses the tool's CSV report and returns the best
// throughput it achieved, converted from GFLOPs to TFLOPS. The tool may
// emit several result rows per run (one per kernel it profiled); the
// maximum is what the sweep records.
func readProfilerReport(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, NewProfilerError("Cutlass", "open report", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // the tool pads some rows

	header, err := r.Read()
	if err != nil {
		return 0, NewProfilerError("Cutlass", "read report header", err)
	}

	col := -1
	for i, name := range header {
		if name == "GFLOPs" {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, NewProfilerError("Cutlass", "report has no GFLOPs column", nil)
	}

	best := 0.0
	rows := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, NewProfilerError("Cutlass", "read report row", err)
		}
		if col >= len(rec) {
			continue
		}
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			return 0, NewProfilerError("Cutlass",
				fmt.Sprintf("bad GFLOPs value %q", rec[col]), err)
		}
		rows++
		if v > best {
			best = v
		}
	}
	if rows == 0 {
		return 0, NewProfilerError("Cutlass", "report has no result rows", nil)
	}

	return best / 1000, nil
}

// Copyright ©2024 The MatBench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command matbench runs the square GEMM throughput sweep across all
// providers and prints one result table per transpose combination.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/LynnColeArt/matbench"
)

func main() {
	var (
		warmup  = flag.Int("warmup", matbench.DefaultWarmup, "Discarded warm-up iterations per measurement")
		reps    = flag.Int("reps", matbench.DefaultReps, "Measured iterations per measurement")
		verify  = flag.Bool("verify", false, "Check the tuned kernel against the reference before timing")
		csvDir  = flag.String("csv", "", "Also write one CSV file per benchmark into this directory")
		logDir  = flag.String("logdir", "matbench_logs", "Directory for JSON session logs")
		summary = flag.Bool("summary", false, "Print the latest session summary and exit")
		verbose = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *summary {
		if err := matbench.PrintSessionSummary(); err != nil {
			log.Fatalf("Failed to print summary: %v", err)
		}
		return
	}

	printBanner(*verbose)

	matbench.SetLogDir(*logDir)
	if err := matbench.InitSessionLogger("matmul-square"); err != nil {
		log.Fatalf("Failed to initialize session log: %v", err)
	}

	opts := matbench.MeasureOptions{
		Warmup: *warmup,
		Reps:   *reps,
		Verify: *verify,
	}

	harness := matbench.NewHarness(opts, os.Stdout)
	for _, b := range matbench.SquareSweep() {
		harness.Register(b)
	}

	reports, err := harness.RunAll()
	if err != nil {
		log.Fatalf("Sweep aborted: %v", err)
	}

	if *csvDir != "" {
		if err := writeCSVs(*csvDir, reports); err != nil {
			log.Fatalf("Failed to write CSV output: %v", err)
		}
	}
}

func printBanner(verbose bool) {
	fmt.Println("=== MatBench GEMM Sweep ===")
	fmt.Printf("Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	if v, _ := matbench.Version(); v != "" {
		fmt.Printf("MatBench Version: %s\n", v)
	}

	device := matbench.GetDevice()
	fmt.Printf("Device: %s (%d cores)\n", device.Name, device.NumCores)
	fmt.Printf("CPU Features: %s\n", matbench.GetCPUInfo())

	if profiler := os.Getenv(matbench.ProfilerEnvVar); profiler != "" {
		fmt.Printf("External profiler: %s\n", profiler)
	} else {
		fmt.Printf("External profiler: disabled (%s not set)\n", matbench.ProfilerEnvVar)
	}

	if verbose {
		fmt.Printf("Kernel block size: %d\n", matbench.KernelBlockSize())
	}
	fmt.Println()
}

func writeCSVs(dir string, reports []matbench.Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, rep := range reports {
		path := fmt.Sprintf("%s/%s.csv", dir, rep.Benchmark.Name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := matbench.WriteReportCSV(f, rep); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

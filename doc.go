// Copyright ©2024 The MatBench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matbench measures matrix-multiplication throughput across
// execution backends.
//
// A Harness runs a grid of GEMM configurations (dimensions, transpose
// layouts, half-precision operands) against three providers:
//
//   - reference: gonum's blas32 Gemm
//   - kernel: matbench's own blocked, parallel f32 kernel
//   - cutlass: an external profiling executable named by the
//     CUTLASS_PROFILER environment variable
//
// Each measurement allocates fresh random operands, discards a fixed
// number of warm-up runs, times repeated invocations, and reports
// throughput in TFLOPS. Results are printed as per-benchmark tables and
// appended to a JSON session log.
package matbench

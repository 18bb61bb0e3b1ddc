package matbench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// verifyKernel checks the tuned kernel against the reference backend on
// the given operands before any timing happens. Both compute in f32, so
// disagreement beyond an accumulation-scaled bound means a kernel bug,
// not rounding.
func verifyKernel(cfg Config, a, b Operand, af32, bf32 DevicePtr) error {
	c, err := Malloc(cfg.M * cfg.N * 4)
	if err != nil {
		return err
	}
	defer Free(c)
	cRef, err := Malloc(cfg.M * cfg.N * 4)
	if err != nil {
		return err
	}
	defer Free(cRef)

	kern := NewBlockedGEMM()
	kern.Compute(a.Trans, b.Trans, cfg.M, cfg.N, cfg.K,
		1, af32.Float32(), a.StorageCols(),
		bf32.Float32(), b.StorageCols(),
		0, c.Float32(), cfg.N)

	gc := blas32.General{Rows: cfg.M, Cols: cfg.N, Stride: cfg.N, Data: cRef.Float32()}
	blas32.Gemm(transposeFor(a), transposeFor(b), 1,
		generalFor(a, af32), generalFor(b, bf32), 0, gc)

	maxDiff := maxAbsDiff(c.Float32(), cRef.Float32())
	tolerance := float32(1e-5) * float32(cfg.K)
	if maxDiff > tolerance {
		return NewExecutionError("Verify",
			fmt.Sprintf("kernel differs from reference: max diff %e > tolerance %e at %dx%dx%d",
				maxDiff, tolerance, cfg.M, cfg.N, cfg.K), nil)
	}
	return nil
}

func maxAbsDiff(got, want []float32) float32 {
	var maxDiff float32
	for i := range got {
		diff := float32(math.Abs(float64(got[i] - want[i])))
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	return maxDiff
}

package matbench

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// measureReference times gonum's native matrix multiply. Operands are
// allocated fresh with random values, widened to f32 once (the same
// widen-then-multiply protocol half-precision GEMM uses everywhere in
// this harness), and only the multiply itself is timed.
func measureReference(cfg Config, opts MeasureOptions) (Result, bool, error) {
	a, b, af32, bf32, c, cleanup, err := stageOperands(cfg)
	if err != nil {
		return Result{}, false, err
	}
	defer cleanup()

	ga := generalFor(a, af32)
	gb := generalFor(b, bf32)
	gc := blas32.General{
		Rows:   cfg.M,
		Cols:   cfg.N,
		Stride: cfg.N,
		Data:   c.Float32(),
	}

	tA := transposeFor(a)
	tB := transposeFor(b)

	ms := doBench(func() {
		blas32.Gemm(tA, tB, 1, ga, gb, 0, gc)
	}, opts.Warmup, opts.Reps)

	return Result{
		TFLOPS: throughputTFLOPS(cfg, ms),
		TimeMs: ms,
	}, true, nil
}

// stageOperands performs the per-measurement setup shared by the local
// backends: fresh random A and B, their f32 copies, and an f32 result
// buffer. The returned cleanup frees everything.
func stageOperands(cfg Config) (a, b Operand, af32, bf32, c DevicePtr, cleanup func(), err error) {
	a, err = NewOperandA(cfg)
	if err != nil {
		return
	}
	b, err = NewOperandB(cfg)
	if err != nil {
		a.Free()
		return
	}
	af32, err = a.ToFloat32()
	if err != nil {
		a.Free()
		b.Free()
		return
	}
	bf32, err = b.ToFloat32()
	if err != nil {
		a.Free()
		b.Free()
		Free(af32)
		return
	}
	c, err = Malloc(cfg.M * cfg.N * 4)
	if err != nil {
		a.Free()
		b.Free()
		Free(af32)
		Free(bf32)
		return
	}

	cleanup = func() {
		a.Free()
		b.Free()
		Free(af32)
		Free(bf32)
		Free(c)
	}
	return
}

// generalFor wraps an operand's f32 copy as a row-major blas32 matrix
// in storage order.
func generalFor(o Operand, data DevicePtr) blas32.General {
	return blas32.General{
		Rows:   o.StorageRows(),
		Cols:   o.StorageCols(),
		Stride: o.StorageCols(),
		Data:   data.Float32(),
	}
}

// transposeFor maps an operand's logical-transpose flag to the BLAS
// transpose code.
func transposeFor(o Operand) blas.Transpose {
	if o.Trans {
		return blas.Trans
	}
	return blas.NoTrans
}
